package classify

// Provinces of Indonesia as spelled by the national area registry.
var Provinces = []string{
	"ACEH",
	"SUMATERA UTARA",
	"SUMATERA BARAT",
	"RIAU",
	"JAMBI",
	"SUMATERA SELATAN",
	"BENGKULU",
	"LAMPUNG",
	"KEPULAUAN BANGKA BELITUNG",
	"KEPULAUAN RIAU",
	"DKI JAKARTA",
	"JAWA BARAT",
	"JAWA TENGAH",
	"DAERAH ISTIMEWA YOGYAKARTA",
	"JAWA TIMUR",
	"BANTEN",
	"BALI",
	"NUSA TENGGARA BARAT",
	"NUSA TENGGARA TIMUR",
	"KALIMANTAN BARAT",
	"KALIMANTAN TENGAH",
	"KALIMANTAN SELATAN",
	"KALIMANTAN TIMUR",
	"KALIMANTAN UTARA",
	"SULAWESI UTARA",
	"SULAWESI TENGAH",
	"SULAWESI SELATAN",
	"SULAWESI TENGGARA",
	"GORONTALO",
	"SULAWESI BARAT",
	"MALUKU",
	"MALUKU UTARA",
	"PAPUA",
	"PAPUA BARAT",
	"PAPUA SELATAN",
	"PAPUA TENGAH",
	"PAPUA PEGUNUNGAN",
	"PAPUA BARAT DAYA",
}
