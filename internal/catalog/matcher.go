package catalog

import (
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/ajitpratap0/middagsvalet/internal/models"
)

const (
	// DefaultFuzzyThreshold is the minimum similarity for a fuzzy match.
	DefaultFuzzyThreshold = 0.74
	// DefaultFallbackConfidence is assigned to names the catalog does not know.
	DefaultFallbackConfidence = 0.45

	// UnknownCanonical and UnknownDisplay name an ingredient line that had no
	// usable name at all.
	UnknownCanonical = "okand ingrediens"
	UnknownDisplay   = "Okänd ingrediens"
)

// Options tunes the matcher.
type Options struct {
	FuzzyThreshold     float64 `json:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
	FallbackConfidence float64 `json:"fallback_confidence" mapstructure:"fallback_confidence"`
}

// DefaultOptions returns the standard matcher thresholds.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:     DefaultFuzzyThreshold,
		FallbackConfidence: DefaultFallbackConfidence,
	}
}

// Match is the result of resolving a token string against the catalog.
type Match struct {
	CanonicalName string
	DisplayName   string
	Category      models.Category
	Confidence    float64
	Mode          models.MatchMode
	// Entry is nil for fallback matches.
	Entry *Entry
}

// Matcher resolves normalized names to catalog entries.
type Matcher struct {
	catalog *Catalog
	hints   CategoryClassifier
	opts    Options
	logger  *slog.Logger
}

// NewMatcher creates a matcher over cat. Category hints for unknown names
// come from a HintClassifier.
func NewMatcher(cat *Catalog, opts Options, logger *slog.Logger) *Matcher {
	return &Matcher{
		catalog: cat,
		hints:   NewHintClassifier(logger),
		opts:    opts,
		logger:  logger,
	}
}

// Catalog returns the catalog the matcher searches.
func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

// Match resolves tokens (output of textnorm.NameTokens). It tries an exact
// alias lookup, then the best fuzzy candidate, then falls back to the tokens
// themselves.
func (m *Matcher) Match(tokens string) Match {
	if tokens == "" {
		return Match{
			CanonicalName: UnknownCanonical,
			DisplayName:   UnknownDisplay,
			Category:      models.CategoryPantry,
			Mode:          models.MatchFallback,
		}
	}

	if idx, ok := m.catalog.byAlias[tokens]; ok {
		return entryMatch(&m.catalog.entries[idx], 1, models.MatchExact)
	}

	if e, score := m.bestFuzzy(tokens); e != nil && score >= m.opts.FuzzyThreshold {
		m.logger.Debug("fuzzy catalog match", "tokens", tokens, "canonical", e.CanonicalName, "score", score)
		return entryMatch(e, score, models.MatchFuzzy)
	}

	return Match{
		CanonicalName: tokens,
		DisplayName:   capitalize(tokens),
		Category:      m.hints.Classify(tokens),
		Confidence:    m.opts.FallbackConfidence,
		Mode:          models.MatchFallback,
	}
}

// bestFuzzy returns the entry with the highest similarity over its aliases.
// Ties keep the earlier entry so results do not depend on map order.
func (m *Matcher) bestFuzzy(tokens string) (*Entry, float64) {
	var (
		best      *Entry
		bestScore float64
	)
	for i := range m.catalog.entries {
		e := &m.catalog.entries[i]
		for _, alias := range e.Aliases {
			if s := Similarity(tokens, alias); s > bestScore {
				best, bestScore = e, s
			}
		}
	}
	return best, bestScore
}

func entryMatch(e *Entry, confidence float64, mode models.MatchMode) Match {
	return Match{
		CanonicalName: e.CanonicalName,
		DisplayName:   e.DisplayName,
		Category:      e.Category,
		Confidence:    confidence,
		Mode:          mode,
		Entry:         e,
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
