package textnorm

import (
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"
)

var vulgarFractions = map[rune]*big.Rat{
	'½': big.NewRat(1, 2),
	'⅓': big.NewRat(1, 3),
	'⅔': big.NewRat(2, 3),
	'¼': big.NewRat(1, 4),
	'¾': big.NewRat(3, 4),
	'⅕': big.NewRat(1, 5),
	'⅖': big.NewRat(2, 5),
	'⅗': big.NewRat(3, 5),
	'⅘': big.NewRat(4, 5),
	'⅙': big.NewRat(1, 6),
	'⅚': big.NewRat(5, 6),
	'⅛': big.NewRat(1, 8),
	'⅜': big.NewRat(3, 8),
	'⅝': big.NewRat(5, 8),
	'⅞': big.NewRat(7, 8),
}

const fractionChars = `½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞`

// Alternatives are tried left to right, so the mixed forms must come first.
var amountRe = regexp.MustCompile(`^(` +
	`\d+\s+\d+/\d+` + // 1 1/2
	`|\d+\s*[` + fractionChars + `]` + // 1½, 1 ½
	`|\d+/\d+` + // 1/2
	`|\d+(?:[.,]\d+)?` + // 2, 0.5, 0,5
	`|[` + fractionChars + `]` + // ½
	`)\s*`)

func isVulgarFraction(r rune) bool {
	_, ok := vulgarFractions[r]
	return ok
}

// SplitAmount parses a single leading amount from a cleaned line and returns
// it together with the remainder of the line. ok is false when the line does
// not start with an amount.
func SplitAmount(line string) (amount *big.Rat, rest string, ok bool) {
	m := amountRe.FindStringSubmatch(line)
	if m == nil {
		return nil, line, false
	}
	amount, ok = ParseAmount(m[1])
	if !ok {
		return nil, line, false
	}
	return amount, strings.TrimSpace(line[len(m[0]):]), true
}

// ParseAmount parses a single amount token such as "2", "0,5", "1/2", "½",
// "1½" or "1 1/2" into an exact rational.
func ParseAmount(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	total := new(big.Rat)
	whole := s
	if i := strings.IndexFunc(s, isVulgarFraction); i >= 0 {
		frac, _ := utf8.DecodeRuneInString(s[i:])
		total.Add(total, vulgarFractions[frac])
		whole = strings.TrimSpace(s[:i])
	} else if fields := strings.Fields(s); len(fields) == 2 {
		frac, ok := new(big.Rat).SetString(fields[1])
		if !ok {
			return nil, false
		}
		total.Add(total, frac)
		whole = fields[0]
	}
	if whole == "" {
		return total, true
	}

	w, ok := new(big.Rat).SetString(strings.Replace(whole, ",", ".", 1))
	if !ok {
		return nil, false
	}
	return total.Add(total, w), true
}
