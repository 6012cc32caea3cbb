package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// noisePhrases are removed before tokenizing. Folded form.
var noisePhrases = []string{
	"att steka i",
	"att fritera i",
	"till servering",
	"till garnering",
	"efter smak",
	"i bitar",
	"i skivor",
	"i strimlor",
	"i tarningar",
}

// noiseWords carry no identity: preparation descriptors, packaging and sizes.
var noiseWords = toSet(
	// preparation
	"finhackad", "finhackade", "hackad", "hackade", "grovhackad", "grovhackade",
	"skivad", "skivade", "strimlad", "strimlade", "tarnad", "tarnade",
	"riven", "rivet", "rivna", "finriven", "finrivet", "pressad", "pressade",
	"plockad", "plockade", "nymalen", "nymald", "saft", "skal",
	"farsk", "farska", "fryst", "frysta", "valfritt", "garna", "ev", "och",
	"kvist", "kvistar", "klyfta", "klyftor", "lite", "ca", "cirka",
	// packaging
	"forp", "forpackning", "paket", "port", "portion", "portioner",
	"burk", "burkar", "pase", "pasar", "tarning", "tarningar", "st",
	// size
	"stor", "stora", "liten", "litet", "sma", "medelstor", "medelstora",
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	numericTokenRe  = regexp.MustCompile(`^[\d.,/½⅓⅔¼¾⅛]+$`)
)

// NameTokens reduces an ingredient name to the folded token string used as
// catalog key: "Vitlök, finhackad (ca 2)" -> "vitlok".
func NameTokens(name string) string {
	s := Fold(name)
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == ',' || r == '/' {
			return r
		}
		if isVulgarFraction(r) {
			return r
		}
		return ' '
	}, s)
	// commas and periods only survive inside numbers
	s = strings.NewReplacer(", ", " ", ". ", " ").Replace(s + " ")

	padded := " " + squeeze(s) + " "
	for _, phrase := range noisePhrases {
		padded = strings.ReplaceAll(padded, " "+phrase+" ", " ")
	}

	fields := strings.Fields(padded)
	kept := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,/")
		if f == "" || noiseWords[f] || numericTokenRe.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
