package usecase

import "github.com/shopspring/decimal"

// The lookup tables below are data, not logic: they are matched against
// already-normalized tokens, so every entry is lowercase and accent-free.

// numberWords maps spoken Spanish quantities to their values, including the
// fractional words used at the counter ("media libra", "un cuarto").
var numberWords = func() map[string]decimal.Decimal {
	values := map[string]string{
		"un": "1", "una": "1", "uno": "1",
		"dos": "2", "tres": "3", "cuatro": "4", "cinco": "5",
		"seis": "6", "siete": "7", "ocho": "8", "nueve": "9", "diez": "10",
		"once": "11", "doce": "12", "trece": "13", "catorce": "14", "quince": "15",
		"veinte": "20", "treinta": "30", "cuarenta": "40", "cincuenta": "50",
		"sesenta": "60", "setenta": "70", "ochenta": "80", "noventa": "90",
		"media": "0.5", "medio": "0.5", "cuarto": "0.25",
	}
	table := make(map[string]decimal.Decimal, len(values))
	for word, value := range values {
		table[word] = decimal.RequireFromString(value)
	}
	return table
}()

// connectorWords are low-value filler tokens dropped while a candidate has
// no content word yet; after the first content word they are kept so phrases
// like "bolsa de 2 libras" survive intact.
var connectorWords = map[string]bool{
	"de": true, "el": true, "la": true, "los": true, "las": true,
	"y": true, "con": true,
}

// numericGuards demote the token that follows them from quantity to plain
// text: in "bolsa de 2 libras" the 2 describes the product, it does not
// start a new line item.
var numericGuards = map[string]bool{
	"de": true, "#": true, "numero": true, "no": true,
}

// misspellings maps frequent transcription and typing errors to their
// canonical spelling. Pure table lookup, no edit-distance guessing.
var misspellings = map[string]string{
	"arros":      "arroz",
	"aross":      "arroz",
	"frijol":     "frijoles",
	"frigoles":   "frijoles",
	"friholes":   "frijoles",
	"asucar":     "azucar",
	"asuca":      "azucar",
	"azuca":      "azucar",
	"aseite":     "aceite",
	"asiete":     "aceite",
	"azeite":     "aceite",
	"sebolla":    "cebolla",
	"seboya":     "cebolla",
	"cevolla":    "cebolla",
	"wevo":       "huevo",
	"wevos":      "huevos",
	"guevo":      "huevo",
	"guevos":     "huevos",
	"keso":       "queso",
	"qeso":       "queso",
	"mantequia":  "mantequilla",
	"mantekilla": "mantequilla",
	"iogur":      "yogur",
	"llogur":     "yogur",
	"galetas":    "galletas",
	"gayetas":    "galletas",
	"serveza":    "cerveza",
	"cerbeza":    "cerveza",
}

// priceQueryPhrases mark an utterance as a price lookup instead of an order.
var priceQueryPhrases = []string{
	"cuanto cuesta", "cuanto vale", "precio", "vale",
}

const (
	fallbackMessage = "No pude identificar productos ni precios en tu mensaje. " +
		"Intenta decir algo como '2 chulas', 'ciruela', o '$2 de pan'."

	priceNotFoundMessage = "Lo siento, no encontré ese producto en la lista de precios. " +
		"Intenta usar el nombre exacto o una palabra clave."
)
