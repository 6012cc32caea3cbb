// Package units converts ingredient amounts between kitchen units.
//
// Every unit belongs to one dimension with a single base unit: mass is kept in
// grams, volume in milliliters and countable things in pieces ("st"). Forward
// conversion uses exact rational arithmetic and rounds to two decimals only at
// the boundary.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// ErrIncompatible is returned when converting between units of different dimensions.
var ErrIncompatible = errors.New("incompatible units")

// Unit is a kitchen unit abbreviation as written in Swedish recipes.
type Unit string

const (
	Gram       Unit = "g"
	Hectogram  Unit = "hg"
	Kilogram   Unit = "kg"
	Milliliter Unit = "ml"
	Centiliter Unit = "cl"
	Deciliter  Unit = "dl"
	Liter      Unit = "l"
	Tablespoon Unit = "msk"
	Teaspoon   Unit = "tsk"
	Pinch      Unit = "krm"
	Piece      Unit = "st"
)

// Dimension groups units that can be converted into each other.
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

type unitInfo struct {
	dim Dimension
	// factor is the number of base units in one of this unit.
	factor *big.Rat
}

var table = map[Unit]unitInfo{
	Gram:       {Mass, big.NewRat(1, 1)},
	Hectogram:  {Mass, big.NewRat(100, 1)},
	Kilogram:   {Mass, big.NewRat(1000, 1)},
	Milliliter: {Volume, big.NewRat(1, 1)},
	Centiliter: {Volume, big.NewRat(10, 1)},
	Deciliter:  {Volume, big.NewRat(100, 1)},
	Liter:      {Volume, big.NewRat(1000, 1)},
	Tablespoon: {Volume, big.NewRat(15, 1)},
	Teaspoon:   {Volume, big.NewRat(5, 1)},
	Pinch:      {Volume, big.NewRat(1, 1)},
	Piece:      {Count, big.NewRat(1, 1)},
}

// aliases maps folded (lowercase, no diacritics) tokens to units.
var aliases = map[string]Unit{
	"g": Gram, "gr": Gram, "gram": Gram,
	"hg": Hectogram, "hekto": Hectogram,
	"kg": Kilogram, "kilo": Kilogram,
	"ml": Milliliter, "milliliter": Milliliter,
	"cl": Centiliter, "centiliter": Centiliter,
	"dl": Deciliter, "deciliter": Deciliter,
	"l": Liter, "liter": Liter,
	"msk": Tablespoon, "matsked": Tablespoon, "matskedar": Tablespoon,
	"tsk": Teaspoon, "tesked": Teaspoon, "teskedar": Teaspoon,
	"krm": Pinch, "kryddmatt": Pinch,
	"st": Piece, "styck": Piece, "stycken": Piece,
	"klyfta": Piece, "klyftor": Piece,
	"burk": Piece, "burkar": Piece,
	"paket": Piece, "forp": Piece, "forpackning": Piece,
	"pase": Piece, "pasar": Piece,
	"tarning": Piece, "tarningar": Piece,
	"knippe": Piece, "kruka": Piece,
	"skiva": Piece, "skivor": Piece,
}

// Parse resolves a folded token to a unit. The token must already be lowercase
// with diacritics removed.
func Parse(token string) (Unit, bool) {
	u, ok := aliases[token]
	return u, ok
}

// Known reports whether u is a unit this package can convert.
func (u Unit) Known() bool {
	_, ok := table[u]
	return ok
}

// Dimension returns the dimension of u. Unknown units count as pieces.
func (u Unit) Dimension() Dimension {
	if info, ok := table[u]; ok {
		return info.dim
	}
	return Count
}

// Base returns the base unit of u's dimension.
func (u Unit) Base() Unit {
	switch u.Dimension() {
	case Mass:
		return Gram
	case Volume:
		return Milliliter
	default:
		return Piece
	}
}

// IsBase reports whether u is one of g, ml or st.
func (u Unit) IsBase() bool {
	return u == Gram || u == Milliliter || u == Piece
}

// Quantity is an amount in a unit, rounded for presentation.
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   Unit    `json:"unit"`
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Amount, 'f', -1, 64) + " " + string(q.Unit)
}

// ToBaseRat converts amount in unit u to the base unit without rounding.
// Unknown units are treated as pieces.
func ToBaseRat(amount *big.Rat, u Unit) (*big.Rat, Unit) {
	info, ok := table[u]
	if !ok {
		return new(big.Rat).Set(amount), Piece
	}
	return new(big.Rat).Mul(amount, info.factor), u.Base()
}

// ToBase converts amount in unit u to the base unit, rounded to two decimals.
func ToBase(amount *big.Rat, u Unit) Quantity {
	r, base := ToBaseRat(amount, u)
	return Quantity{Amount: Round(r), Unit: base}
}

// Convert converts amount between two units of the same dimension.
func Convert(amount float64, from, to Unit) (float64, error) {
	fi, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrIncompatible, from)
	}
	ti, ok := table[to]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrIncompatible, to)
	}
	if fi.dim != ti.dim {
		return 0, fmt.Errorf("%w: %s (%s) to %s (%s)", ErrIncompatible, from, fi.dim, to, ti.dim)
	}
	r := new(big.Rat)
	if r.SetFloat64(amount) == nil {
		return 0, fmt.Errorf("converting %v %s: not a finite number", amount, from)
	}
	r.Mul(r, fi.factor)
	r.Quo(r, ti.factor)
	return Round(r), nil
}

// Round rounds r to two decimals, halves away from zero.
func Round(r *big.Rat) float64 {
	f, _ := strconv.ParseFloat(r.FloatString(2), 64)
	return f
}
