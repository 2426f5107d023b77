package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeParticipant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"duplicate keywords collapse", "Mahasiswa D3/D4 seluruh Indonesia", []string{ParticipantUniversity}},
		{"multi label", "Mahasiswa dan Umum", []string{ParticipantUniversity, ParticipantPublic}},
		{"senior secondary", "Siswa SMA/SMK sederajat", []string{ParticipantSenior}},
		{"junior secondary", "Pelajar SMP / MTs", []string{ParticipantJunior}},
		{"gap year spaced", "Gap Year 2025", []string{ParticipantGapYear}},
		{"unknown family", "Guru dan dosen", []string{ParticipantOther}},
		{"empty", "", []string{ParticipantOther}},
		{"whitespace", "   ", []string{ParticipantOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeParticipant(tt.text))
		})
	}
}

func TestHasParticipantCategory(t *testing.T) {
	assert.True(t, HasParticipantCategory("Mahasiswa S1", "Mahasiswa"))
	assert.True(t, HasParticipantCategory("Mahasiswa S1", "mahasiswa"))
	assert.True(t, HasParticipantCategory("Guru", ParticipantOther))
	assert.False(t, HasParticipantCategory("Mahasiswa S1", ParticipantOther))
	assert.False(t, HasParticipantCategory("", ParticipantOther))
	assert.False(t, HasParticipantCategory("Mahasiswa", ""))
}

func TestParticipantLabels(t *testing.T) {
	got := ParticipantLabels([]string{"Umum", "Mahasiswa D3", "", "Guru", "umum"})
	assert.Equal(t, []string{"Lainnya", "Mahasiswa", "Umum"}, got)
	assert.Equal(t, []string{}, ParticipantLabels(nil))
}

func TestSplitAndClean(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"S1/S2, d4 dan umum", []string{"S1", "S2", "D4", "Umum"}},
		{"luar negeri; dalam negeri", []string{"Luar Negeri", "Dalam Negeri"}},
		{"DKI Jakarta atau Jawa Barat", []string{"DKI Jakarta", "Jawa Barat"}},
		{"Design & IT | Marketing or Sales", []string{"Design", "IT", "Marketing", "Sales"}},
		{" , ;", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAndClean(tt.text))
		})
	}
}

func TestMatchesCategory(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		target string
		want   bool
	}{
		{"token contains target", "Jakarta Selatan, Bandung", "jakarta", true},
		{"target contains token", "S1", "S1 / Sarjana", true},
		{"no overlap", "Surabaya", "Bandung", false},
		{"empty field", "", "Bandung", false},
		{"empty target", "Bandung", "", false},
		{"connective word split", "Online dan Luar Negeri", "luar negeri", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesCategory(tt.field, tt.target))
		})
	}
}

func TestCategoryTokens(t *testing.T) {
	got := CategoryTokens([]string{"S1, S2", "s1 / D4", ""})
	assert.Equal(t, []string{"D4", "S1", "S2"}, got)
}

func TestMatchingProvinces(t *testing.T) {
	got := MatchingProvinces([]string{"Jawa Barat", "Kota Bandung, Jawa Barat", "Bali", "Remote"})
	assert.Equal(t, []string{"BALI", "JAWA BARAT"}, got)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text   string
		want   PriceRange
		wantOK bool
	}{
		{"Rp 50.000", PriceRange{50000, 50000}, true},
		{"Rp 75.000 - Rp 25.000", PriceRange{25000, 75000}, true},
		{"Rp 10.000 / Rp 20.000 / Rp 30.000", PriceRange{10000, 20000}, true},
		{"Rp 150.000,00", PriceRange{150000, 150000}, true},
		{"GRATIS", PriceRange{0, 0}, true},
		{"Rp 0", PriceRange{0, 0}, true},
		{"Rp 0 - Rp 50.000", PriceRange{0, 0}, true},
		{"Rp. 0,-", PriceRange{0, 0}, true},
		{"Rp 0.500", PriceRange{500, 500}, true},
		{"Hubungi panitia", PriceRange{}, false},
		{"", PriceRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParsePrice(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceInBracket(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want bool
	}{
		{"upper bound is closed", "Rp 50.000", "1-50000", true},
		{"next bracket lower bound is closed", "Rp 50.000", "50001-100000", false},
		{"range overlaps two brackets low", "Rp 25.000 - Rp 75.000", "1-50000", true},
		{"range overlaps two brackets high", "Rp 25.000 - Rp 75.000", "50001-100000", true},
		{"free is exact zero", "Gratis", "gratis", true},
		{"zero is not in paid bracket", "Rp 0", "1-50000", false},
		{"range from zero rupiah is free", "Rp 0 - Rp 50.000", "gratis", true},
		{"range from zero rupiah is not paid", "Rp 0 - Rp 50.000", "1-50000", false},
		{"open ended top bracket", "Rp 250.000", ">200000", true},
		{"top bracket excludes boundary", "Rp 200.000", ">200000", false},
		{"unparseable never matches", "TBA", "1-50000", false},
		{"unknown key never matches", "Rp 10.000", "cheap", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceInBracket(tt.text, tt.key))
		})
	}
}
