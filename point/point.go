// Package point converts a scored hand (fu, han, or a yakuman multiplier)
// into the concrete payment amounts the table resolves at the end of a
// hand (spec §4.6).
package point

// BasePoints computes the base score used to derive every payment. Below 5
// han it is the fu*2^(2+han) formula value with no cap (4 han 40 fu gives
// 2560). From 5 han it is a fixed value: 2000 at 5 han, 3000 at 6-7, 4000
// at 8-10 and 6000 from 11. When kiriageMangan is set, the two shapes 4 han
// 40 fu and 3 han 70 fu return the mangan base 2000 instead of their
// formula values (2560 and 2240).
func BasePoints(fu, han int, kiriageMangan bool) int {
	if kiriageMangan && ((han == 4 && fu == 40) || (han == 3 && fu == 70)) {
		return 2000
	}
	switch {
	case han >= 11:
		return 6000
	case han >= 8:
		return 4000
	case han == 6 || han == 7:
		return 3000
	case han >= 5:
		return 2000
	default:
		return fu * (1 << uint(2+han))
	}
}

// YakumanBase computes the base score for a yakuman-class result: 8000 per
// multiplier (double yakuman counts as 2, and so on).
func YakumanBase(multiplier int) int {
	return 8000 * multiplier
}

// roundUp100 rounds n up to the nearest multiple of 100.
func roundUp100(n int) int {
	if n%100 == 0 {
		return n
	}
	return n + (100 - n%100)
}

// Payments is the resolved (ron, tsumo_oya, tsumo_ko) triple: the amount a
// single discarder pays on ron, the amount the dealer pays on a
// non-dealer's tsumo, and the amount a non-dealer pays on a non-dealer's
// tsumo. When the winner is the dealer, TsumoOya and TsumoKo are equal
// (every other seat pays the same "dealer tsumo" rate).
type Payments struct {
	Ron      int
	TsumoOya int
	TsumoKo  int
}

// FromBase derives the three payments from a base score and whether the
// winner is the dealer, per spec §4.6. Honba and kyotaku are added by the
// caller, not here.
func FromBase(base int, isDealer bool) Payments {
	if isDealer {
		return Payments{
			Ron:      roundUp100(base * 6),
			TsumoOya: roundUp100(base * 2),
			TsumoKo:  roundUp100(base * 2),
		}
	}
	return Payments{
		Ron:      roundUp100(base * 4),
		TsumoOya: roundUp100(base * 2),
		TsumoKo:  roundUp100(base * 1),
	}
}

// Normal resolves the payments for a standard (non-yakuman) win.
func Normal(fu, han int, isDealer, kiriageMangan bool) Payments {
	return FromBase(BasePoints(fu, han, kiriageMangan), isDealer)
}

// Yakuman resolves the payments for a yakuman-class win.
func Yakuman(multiplier int, isDealer bool) Payments {
	return FromBase(YakumanBase(multiplier), isDealer)
}

// AddHonba folds honba sticks into an already-resolved payment triple: 300
// per stick on a ron (paid once, by the discarder), 100 per stick per
// payer on a tsumo.
func AddHonba(p Payments, honba int, isRon bool) Payments {
	if honba == 0 {
		return p
	}
	if isRon {
		p.Ron += 300 * honba
		return p
	}
	p.TsumoOya += 100 * honba
	p.TsumoKo += 100 * honba
	return p
}
