package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// priceNumber matches an integer written with "." thousands separators and an
// optional ",xx" decimal tail, e.g. "50.000" or "150.000,00".
var priceNumber = regexp.MustCompile(`(\d+(?:\.\d+)*)(?:,\d+)?`)

// zeroRupiah matches "Rp 0" or "Rp. 0,-" but not "Rp 0.500".
var zeroRupiah = regexp.MustCompile(`rp\.?\s*0(?:$|[^\d.])`)

// PriceRange is a parsed price in rupiah. A single price has Min == Max.
type PriceRange struct {
	Min int64
	Max int64
}

// IsFree reports whether the range is exactly zero on both ends.
func (r PriceRange) IsFree() bool {
	return r.Min == 0 && r.Max == 0
}

// ParsePrice extracts a price range from free text. Text mentioning "gratis"
// (free) or a zero rupiah amount anywhere is 0..0, so "Rp 0 - Rp 50.000"
// counts as free. Otherwise the first one or two numbers found form the
// range. Text without numbers reports ok == false.
func ParsePrice(text string) (PriceRange, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return PriceRange{}, false
	}
	if strings.Contains(t, "gratis") || zeroRupiah.MatchString(t) {
		return PriceRange{}, true
	}

	var amounts []int64
	for _, m := range priceNumber.FindAllStringSubmatch(t, -1) {
		clean := strings.ReplaceAll(m[1], ".", "")
		v, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v)
		if len(amounts) == 2 {
			break
		}
	}

	switch len(amounts) {
	case 0:
		return PriceRange{}, false
	case 1:
		return PriceRange{Min: amounts[0], Max: amounts[0]}, true
	default:
		lo, hi := amounts[0], amounts[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return PriceRange{Min: lo, Max: hi}, true
	}
}

// PriceBracket is a selectable price filter. Bounds are inclusive.
type PriceBracket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Min   int64  `json:"-"`
	Max   int64  `json:"-"`
	Free  bool   `json:"-"`
}

// PriceBrackets lists the filter options in display order.
var PriceBrackets = []PriceBracket{
	{Key: "gratis", Label: "Gratis", Free: true},
	{Key: "1-50000", Label: "Rp 1 - Rp 50.000", Min: 1, Max: 50000},
	{Key: "50001-100000", Label: "Rp 50.001 - Rp 100.000", Min: 50001, Max: 100000},
	{Key: "100001-200000", Label: "Rp 100.001 - Rp 200.000", Min: 100001, Max: 200000},
	{Key: ">200000", Label: "> Rp 200.000", Min: 200001, Max: math.MaxInt64},
}

// LookupPriceBracket finds a bracket by key.
func LookupPriceBracket(key string) (PriceBracket, bool) {
	key = strings.TrimSpace(key)
	for _, b := range PriceBrackets {
		if b.Key == key {
			return b, true
		}
	}
	return PriceBracket{}, false
}

// Contains reports whether r falls in the bracket. Ranges are included when
// they overlap the bracket; the free bracket requires an exact zero price.
func (b PriceBracket) Contains(r PriceRange) bool {
	if b.Free {
		return r.IsFree()
	}
	return r.Min <= b.Max && r.Max >= b.Min
}

// PriceInBracket parses text and checks it against the bracket named key.
// Unparseable prices and unknown keys never match.
func PriceInBracket(text, key string) bool {
	b, ok := LookupPriceBracket(key)
	if !ok {
		return false
	}
	r, ok := ParsePrice(text)
	if !ok {
		return false
	}
	return b.Contains(r)
}
