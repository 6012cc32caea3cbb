// Package ingredient turns raw recipe ingredient lines into normalized
// ingredient records.
package ingredient

import (
	"log/slog"
	"math/big"
	"strings"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/textnorm"
	"github.com/ajitpratap0/middagsvalet/internal/units"
)

// DefaultReviewThreshold is the confidence below which a record is queued
// for manual review.
const DefaultReviewThreshold = 0.78

// Options tunes the service.
type Options struct {
	ReviewThreshold float64 `json:"review_threshold" mapstructure:"review_threshold"`
}

// DefaultOptions returns the standard options.
func DefaultOptions() Options {
	return Options{ReviewThreshold: DefaultReviewThreshold}
}

// Service normalizes ingredient lines against a catalog.
type Service struct {
	matcher *catalog.Matcher
	opts    Options
	logger  *slog.Logger
}

// NewService creates a normalization service.
func NewService(matcher *catalog.Matcher, opts Options, logger *slog.Logger) *Service {
	return &Service{
		matcher: matcher,
		opts:    opts,
		logger:  logger,
	}
}

// Normalize parses one raw ingredient line. It never fails: a line with no
// usable name yields an "unknown ingredient" record with zero confidence.
func (s *Service) Normalize(raw string) models.NormalizedIngredient {
	cleaned := textnorm.CleanLine(raw)
	if cleaned == "" {
		s.logger.Debug("unparseable ingredient line", "raw", raw)
		return unknown(cleaned)
	}

	amount, name, ok := textnorm.SplitAmount(cleaned)
	if !ok {
		amount = big.NewRat(1, 1)
	}

	unit := units.Piece
	if ok {
		if u, rest, found := splitUnit(name); found {
			unit, name = u, rest
		}
	}

	match := s.matcher.Match(textnorm.NameTokens(name))
	q := units.ToBase(amount, unit)

	return models.NormalizedIngredient{
		CanonicalName: match.CanonicalName,
		DisplayName:   match.DisplayName,
		Category:      match.Category,
		Amount:        q.Amount,
		Unit:          q.Unit,
		Confidence:    match.Confidence,
		MatchMode:     match.Mode,
		CleanedLine:   cleaned,
		RawName:       name,
	}
}

// NormalizeAll normalizes a batch of lines. Bad lines produce low-confidence
// records rather than stopping the batch.
func (s *Service) NormalizeAll(lines []string) []models.NormalizedIngredient {
	out := make([]models.NormalizedIngredient, 0, len(lines))
	for _, l := range lines {
		out = append(out, s.Normalize(l))
	}
	return out
}

// Renormalize re-matches an already normalized record against the current
// catalog and converts its amount to the base unit.
func (s *Service) Renormalize(ing models.NormalizedIngredient) models.NormalizedIngredient {
	name := ing.RawName
	if strings.TrimSpace(name) == "" {
		name = ing.DisplayName
	}
	if strings.TrimSpace(name) == "" {
		name = ing.CanonicalName
	}
	if name == catalog.UnknownDisplay || name == catalog.UnknownCanonical {
		return unknown(ing.CleanedLine)
	}

	match := s.matcher.Match(textnorm.NameTokens(name))

	amount := new(big.Rat)
	if amount.SetFloat64(ing.Amount) == nil || ing.Amount < 0 {
		amount.SetInt64(0)
	}
	q := units.ToBase(amount, ing.Unit)

	out := ing
	out.CanonicalName = match.CanonicalName
	out.DisplayName = match.DisplayName
	out.Category = match.Category
	out.Confidence = match.Confidence
	out.MatchMode = match.Mode
	out.Amount = q.Amount
	out.Unit = q.Unit
	return out
}

// NeedsReview reports whether a record should go to the review queue.
func (s *Service) NeedsReview(ing models.NormalizedIngredient) bool {
	return ing.NeedsReview(s.opts.ReviewThreshold)
}

// IsUnknown reports whether ing is the placeholder for an unparseable line.
func IsUnknown(ing models.NormalizedIngredient) bool {
	return ing.CanonicalName == catalog.UnknownCanonical && ing.Confidence == 0
}

func unknown(cleaned string) models.NormalizedIngredient {
	return models.NormalizedIngredient{
		CanonicalName: catalog.UnknownCanonical,
		DisplayName:   catalog.UnknownDisplay,
		Category:      models.CategoryPantry,
		Unit:          units.Piece,
		MatchMode:     models.MatchFallback,
		CleanedLine:   cleaned,
	}
}

// splitUnit recognizes a unit as the first word of s.
func splitUnit(s string) (units.Unit, string, bool) {
	first, rest, _ := strings.Cut(s, " ")
	u, ok := units.Parse(strings.TrimSuffix(textnorm.Fold(first), "."))
	if !ok {
		return "", s, false
	}
	return u, strings.TrimSpace(rest), true
}
