package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bad rat " + s)
	}
	return r
}

func TestToBase(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		unit   Unit
		want   Quantity
	}{
		{"half deciliter", "0.5", Deciliter, Quantity{50, Milliliter}},
		{"two liters", "2", Liter, Quantity{2000, Milliliter}},
		{"centiliter", "3", Centiliter, Quantity{30, Milliliter}},
		{"tablespoon", "2", Tablespoon, Quantity{30, Milliliter}},
		{"teaspoon fraction", "1/2", Teaspoon, Quantity{2.5, Milliliter}},
		{"pinch", "1", Pinch, Quantity{1, Milliliter}},
		{"kilogram", "1.25", Kilogram, Quantity{1250, Gram}},
		{"hectogram", "2", Hectogram, Quantity{200, Gram}},
		{"third of a deciliter rounds", "1/3", Deciliter, Quantity{33.33, Milliliter}},
		{"piece", "3", Piece, Quantity{3, Piece}},
		{"unknown unit counts as piece", "2", Unit("nypa"), Quantity{2, Piece}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToBase(rat(tc.amount), tc.unit))
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	base := ToBase(rat("0.5"), Deciliter)
	assert.Equal(t, Quantity{50, Milliliter}, base)

	back, err := Convert(base.Amount, base.Unit, Deciliter)
	require.NoError(t, err)
	assert.Equal(t, 0.5, back)

	for _, u := range []Unit{Liter, Deciliter, Centiliter, Tablespoon, Teaspoon} {
		ml := ToBase(rat("3"), u)
		got, err := Convert(ml.Amount, Milliliter, u)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, got, 0.01, "unit %s", u)
	}
}

func TestConvertIncompatible(t *testing.T) {
	_, err := Convert(1, Gram, Milliliter)
	require.ErrorIs(t, err, ErrIncompatible)

	_, err = Convert(1, Unit("nypa"), Gram)
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestPrettify(t *testing.T) {
	tests := []struct {
		name string
		in   Quantity
		want Quantity
	}{
		{"liters", Quantity{2000, Milliliter}, Quantity{2, Liter}},
		{"deciliters", Quantity{150, Milliliter}, Quantity{1.5, Deciliter}},
		{"exactly one deciliter", Quantity{100, Milliliter}, Quantity{1, Deciliter}},
		{"mid volume stays ml", Quantity{75, Milliliter}, Quantity{75, Milliliter}},
		{"two teaspoons", Quantity{10, Milliliter}, Quantity{2, Teaspoon}},
		{"one centiliter", Quantity{1, Centiliter}, Quantity{2, Teaspoon}},
		{"one teaspoon", Quantity{5, Milliliter}, Quantity{1, Teaspoon}},
		{"pinch stays krm", Quantity{1, Pinch}, Quantity{1, Pinch}},
		{"below a teaspoon", Quantity{3, Milliliter}, Quantity{3, Pinch}},
		{"three teaspoons become a tablespoon", Quantity{3, Teaspoon}, Quantity{1, Tablespoon}},
		{"tablespoons", Quantity{45, Milliliter}, Quantity{3, Tablespoon}},
		{"kilograms", Quantity{1500, Gram}, Quantity{1.5, Kilogram}},
		{"grams", Quantity{400, Gram}, Quantity{400, Gram}},
		{"pieces untouched", Quantity{4, Piece}, Quantity{4, Piece}},
		{"zero volume", Quantity{0, Milliliter}, Quantity{0, Milliliter}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Prettify(tc.in))
		})
	}
}

func TestPrettifyInverseOfToBase(t *testing.T) {
	for _, in := range []Quantity{{2, Liter}, {1.5, Deciliter}, {1.5, Kilogram}, {2, Tablespoon}, {2, Pinch}} {
		r := new(big.Rat)
		r.SetFloat64(in.Amount)
		base := ToBase(r, in.Unit)
		assert.Equal(t, in, Prettify(base), "round trip of %s", in)
	}
}

func TestParse(t *testing.T) {
	u, ok := Parse("klyftor")
	require.True(t, ok)
	assert.Equal(t, Piece, u)

	u, ok = Parse("matsked")
	require.True(t, ok)
	assert.Equal(t, Tablespoon, u)

	_, ok = Parse("vitlok")
	assert.False(t, ok)
}

func TestUnitDimension(t *testing.T) {
	assert.Equal(t, Volume, Tablespoon.Dimension())
	assert.Equal(t, Milliliter, Deciliter.Base())
	assert.Equal(t, Gram, Hectogram.Base())
	assert.Equal(t, Piece, Unit("nypa").Base())
	assert.True(t, Piece.IsBase())
	assert.False(t, Liter.IsBase())
}
