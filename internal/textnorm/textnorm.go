// Package textnorm cleans free-text ingredient lines scraped from recipe sites.
//
// CleanLine repairs a whole line so it can be segmented into amount, unit and
// name. NameTokens turns the name part into the folded token string used for
// catalog lookup. SplitAmount parses the leading amount.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UTF-8 text that was decoded as Latin-1 somewhere upstream.
var mojibake = strings.NewReplacer(
	"Ã¥", "å",
	"Ã¤", "ä",
	"Ã¶", "ö",
	"Ã…", "Å",
	"Ã„", "Ä",
	"Ã–", "Ö",
	"Ã©", "é",
	"Ã¨", "è",
	"Ã¼", "ü",
	"â€“", "–",
	"â€”", "—",
	"â€™", "'",
	"Â½", "½",
	"Â¼", "¼",
	"Â¾", "¾",
	"Â ", " ",
	" ", " ",
)

var dashes = strings.NewReplacer("–", "-", "—", "-", "‒", "-", "−", "-", "―", "-")

var (
	aboutRe         = regexp.MustCompile(`(?i)^(ca\.?|cirka|ungefär|ungefar|ungef\.|ung\.)\s+`)
	leadingDashRe   = regexp.MustCompile(`^\s*-\s*`)
	trailingQtyRe   = regexp.MustCompile(`(?i)\s*-\s*(\d+(?:[.,]\d+)?|\d+/\d+|[½⅓⅔¼¾⅛])\s*(st|g|kg|hg|ml|cl|dl|l|msk|tsk|krm)\.?\s*$`)
	amountDashRe    = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*-\s*([^\d\s].*)$`)
	startsWithQtyRe = regexp.MustCompile(`^(\d|[½⅓⅔¼¾⅛])`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

// CleanLine normalizes a raw ingredient line. It returns "" when nothing
// usable remains; callers must treat that as unparseable.
//
// A quantity trailing the name ("Dill plockad - 50 ml") is moved to the
// front ("50 ml Dill plockad") unless the line already starts with one.
func CleanLine(raw string) string {
	line := strings.TrimSpace(mojibake.Replace(raw))
	if line == "" {
		return ""
	}
	line = aboutRe.ReplaceAllString(line, "")
	line = dashes.Replace(line)
	line = leadingDashRe.ReplaceAllString(line, "")

	if m := trailingQtyRe.FindStringSubmatchIndex(line); m != nil {
		amount := line[m[2]:m[3]]
		unit := line[m[4]:m[5]]
		line = strings.TrimSpace(line[:m[0]])
		if line != "" && !startsWithQtyRe.MatchString(line) {
			line = amount + " " + unit + " " + line
		}
	}

	line = amountDashRe.ReplaceAllString(line, "$1 $2")
	return squeeze(line)
}

// Fold lowercases s and strips diacritics (vitlök -> vitlok). A Transformer
// chain keeps internal buffers, so each call builds its own.
func Fold(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

func squeeze(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
