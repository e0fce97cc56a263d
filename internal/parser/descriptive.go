package parser

import (
	"github.com/mensa-darmstadt/openmensa-parser/internal/mensa"
	"github.com/mensa-darmstadt/openmensa-parser/pkg/logger"
	"github.com/mensa-darmstadt/openmensa-parser/pkg/metrics"
)

// Fixed German descriptive tables for the codes the backend attaches to a
// dish. The base allergen categories follow EU regulation 1169/2011; the
// sub-codes (A1.., H1..) name specific allergens within a category.

var allergenDescriptions = map[string]string{
	"A":  "Glutenhaltiges Getreide",
	"A1": "Weizen",
	"A2": "Dinkel",
	"A3": "Roggen",
	"A4": "Gerste",
	"A5": "Hafer",

	"B": "Krebstiere und Krebstiererzeugnisse",
	"C": "Eier und Eiererzeugnisse",
	"D": "Fisch und Fischerzeugnisse",
	"E": "Erdnüsse und Erdnusserzeugnisse",
	"F": "Soja und Sojaerzeugnisse",
	"G": "Milch und Milcherzeugnisse",

	"H":  "Schalenfrüchte",
	"H1": "Mandeln",
	"H2": "Haselnüsse",
	"H3": "Walnüsse",
	"H4": "Cashewnüsse",
	"H5": "Pekannüsse",
	"H6": "Paranüsse",
	"H7": "Pistazien",
	"H8": "Macadamianüsse",

	"I": "Sellerie und Sellerieerzeugnisse",
	"J": "Senf und Senferzeugnisse",
	"K": "Sesamsamen und Sesamsamenerzeugnisse",
	"L": "Schwefeloxid und Sulfite",
	"M": "Lupine und Lupinenerzeugnisse",
	"N": "Weichtiere (Mollusken)",
}

var additiveDescriptions = map[string]string{
	"1":  "Lebensmittelfarbe",
	"2":  "Konservierungsstoffe",
	"3":  "Antioxidationsmittel",
	"4":  "Geschmacksverstärker",
	"5":  "Geschwefelt",
	"6":  "Geschwärzt",
	"7":  "Gewachst",
	"8":  "Phosphat",
	"9":  "Süßungsmittel",
	"10": "Phenylalaninquelle",
}

var dishTypeDescriptions = map[mensa.DishType]string{
	mensa.DishVegan:    "Vegan",
	mensa.DishMeatless: "Vegetarisch",
	mensa.DishPork:     "Schweinefleisch",
	mensa.DishPoultry:  "Geflügel",
	mensa.DishFish:     "Fisch",
	mensa.DishBeef:     "Rind",
}

// allergenDescription resolves an allergen code. Unknown codes are logged
// and degrade to an empty string; they never abort a translation.
func allergenDescription(code string) string {
	d, ok := allergenDescriptions[code]
	if !ok {
		logger.Warnf("encountered unknown allergen code: %q", code)
		metrics.UnknownCodes.WithLabelValues("allergen").Inc()
		return ""
	}
	return d
}

// additiveDescription resolves an additive code, with the same unknown-code
// policy as allergenDescription.
func additiveDescription(code string) string {
	d, ok := additiveDescriptions[code]
	if !ok {
		logger.Warnf("encountered unknown additive code: %q", code)
		metrics.UnknownCodes.WithLabelValues("additive").Inc()
		return ""
	}
	return d
}

// dishTypeDescription maps a dish type to its label. Types outside the six
// labelled ones carry no note, which is not an error.
func dishTypeDescription(t mensa.DishType) (string, bool) {
	d, ok := dishTypeDescriptions[t]
	return d, ok
}
