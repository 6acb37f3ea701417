package aggregate

import "strings"

// countryAliases maps common names and spellings to ISO country codes.
var countryAliases = map[string]string{
	"in": "in", "india": "in", "ind": "in",
	"us": "us", "usa": "us", "united states": "us", "america": "us",
	"gb": "gb", "uk": "gb", "united kingdom": "gb", "britain": "gb",
	"ca": "ca", "canada": "ca",
	"au": "au", "australia": "au",
	"ae": "ae", "uae": "ae", "united arab emirates": "ae",
	"sg": "sg", "singapore": "sg",
	"de": "de", "germany": "de",
	"fr": "fr", "france": "fr",
	"jp": "jp", "japan": "jp",
	"cn": "cn", "china": "cn",
	"br": "br", "brazil": "br",
	"mx": "mx", "mexico": "mx",
	"it": "it", "italy": "it",
	"es": "es", "spain": "es",
	"ru": "ru", "russia": "ru",
	"kr": "kr", "south korea": "kr",
	"za": "za", "south africa": "za",
	"ng": "ng", "nigeria": "ng",
	"eg": "eg", "egypt": "eg",
	"ar": "ar", "argentina": "ar",
	"th": "th", "thailand": "th",
	"id": "id", "indonesia": "id",
	"my": "my", "malaysia": "my",
	"ph": "ph", "philippines": "ph",
	"vn": "vn", "vietnam": "vn",
	"bd": "bd", "bangladesh": "bd",
	"pk": "pk", "pakistan": "pk",
	"lk": "lk", "sri lanka": "lk",
	"np": "np", "nepal": "np",
}

// NormalizeCountry resolves a country name or code to its ISO code.
func NormalizeCountry(input string) (string, bool) {
	code, ok := countryAliases[strings.ToLower(strings.TrimSpace(input))]
	return code, ok
}
