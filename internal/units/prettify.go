package units

import "math/big"

// Display thresholds, in base units.
var (
	literFrom     = big.NewRat(1000, 1)
	deciliterFrom = big.NewRat(100, 1)
	spoonsBelow   = big.NewRat(50, 1)
	kilogramFrom  = big.NewRat(1000, 1)
	// three teaspoons or more read better as tablespoons
	tablespoonFrom = big.NewRat(3, 1)
)

// Prettify picks a human-friendly display unit for q.
func Prettify(q Quantity) Quantity {
	r := new(big.Rat)
	if r.SetFloat64(q.Amount) == nil {
		return q
	}
	return PrettifyRat(r, q.Unit)
}

// PrettifyRat is Prettify for an exact amount.
//
// Volumes of at least 1000 ml are shown in liters and from 100 ml in
// deciliters. Volumes below one teaspoon are shown as krm. Other volumes
// below 50 ml are shown as teaspoons, promoted to tablespoons once there are
// three or more teaspoons. Masses of at least
// 1000 g are shown in kilograms. Pieces are left alone.
func PrettifyRat(amount *big.Rat, u Unit) Quantity {
	base, bu := ToBaseRat(amount, u)

	switch bu {
	case Milliliter:
		switch {
		case base.Cmp(literFrom) >= 0:
			return inUnit(base, Liter)
		case base.Cmp(deciliterFrom) >= 0:
			return inUnit(base, Deciliter)
		case base.Sign() > 0 && base.Cmp(table[Teaspoon].factor) < 0:
			return inUnit(base, Pinch)
		case base.Sign() > 0 && base.Cmp(spoonsBelow) < 0:
			tsp := new(big.Rat).Quo(base, table[Teaspoon].factor)
			if tsp.Cmp(tablespoonFrom) >= 0 {
				return inUnit(base, Tablespoon)
			}
			return Quantity{Amount: Round(tsp), Unit: Teaspoon}
		}
	case Gram:
		if base.Cmp(kilogramFrom) >= 0 {
			return inUnit(base, Kilogram)
		}
	}
	return Quantity{Amount: Round(base), Unit: bu}
}

func inUnit(base *big.Rat, u Unit) Quantity {
	return Quantity{Amount: Round(new(big.Rat).Quo(base, table[u].factor)), Unit: u}
}
