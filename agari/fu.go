package agari

import "github.com/lamyinia/riichicore/tile"

// WaitShape classifies how the winning tile completed its group (spec
// §4.3d/§4.7b glossary): Tanki (pair), Shanpon (triplet completed from a
// pre-existing pair, with the decomp's pair being the other pair),
// Kanchan/Penchan/Ryanmen for the three run-completion shapes.
type WaitShape int

const (
	WaitNone WaitShape = iota
	WaitTanki
	WaitShanpon
	WaitKanchan
	WaitPenchan
	WaitRyanmen
)

func numInSuit(t tile.Tile) int { return int(t.Deaka().AsIndex())%9 + 1 }

// classifyWait determines the wait shape of winning tile w against decomp
// d, given w is not being treated as a minkou-absorbed triplet tile.
func classifyWait(d Decomp, w tile.Tile) WaitShape {
	w = w.Deaka()
	if w == d.PairTile {
		return WaitTanki
	}
	for _, k := range d.Kotsu {
		if k == w {
			return WaitShanpon
		}
	}
	for _, s := range d.Shuntsu {
		switch w {
		case s + 1:
			return WaitKanchan
		case s + 2:
			if numInSuit(s) == 1 {
				return WaitPenchan
			}
			return WaitRyanmen
		case s:
			if numInSuit(s+2) == 9 {
				return WaitPenchan
			}
			return WaitRyanmen
		}
	}
	return WaitNone
}

func roundUp10(n int) int {
	if n%10 == 0 {
		return n
	}
	return n + (10 - n%10)
}

// IsPinfu reports whether decomp d, scored under ctx, qualifies for pinfu:
// closed hand, all four groups are runs, a non-yakuhai pair, and a ryanmen
// wait.
func IsPinfu(ctx Context, d Decomp) bool {
	if !ctx.IsMenzen || len(ctx.OpenMelds) > 0 {
		return false
	}
	if len(d.Kotsu) != 0 || len(d.Shuntsu) != 4 {
		return false
	}
	if isYakuhaiTile(d.PairTile, ctx.Bakaze, ctx.Jikaze) {
		return false
	}
	return classifyWait(d, ctx.WinningTile) == WaitRyanmen
}

func isYakuhaiTile(t, bakaze, jikaze tile.Tile) bool {
	if t >= tile.Haku && t <= tile.Chun {
		return true
	}
	return t == bakaze || t == jikaze
}

// ComputeFu computes the §4.3d fu total for decomp d under ctx. Chiitoitsu
// is handled by the caller (flat 25), this function assumes a regular
// 4-meld+pair decomp.
func ComputeFu(ctx Context, d Decomp) int {
	minkouSelected := winningTileMakesMinkou(ctx, d)
	pinfu := IsPinfu(ctx, d)
	if pinfu {
		if ctx.IsRon {
			return 30
		}
		return 20
	}

	fu := 20
	for _, k := range d.Kotsu {
		terminal := k.IsYaokyuu()
		isOpen := k == ctx.WinningTile.Deaka() && minkouSelected
		switch {
		case isOpen && terminal:
			fu += 4
		case isOpen:
			fu += 2
		case terminal:
			fu += 8
		default:
			fu += 4
		}
	}
	for _, m := range ctx.OpenMelds {
		switch m.Kind {
		case Kotsu:
			if m.Tile.IsYaokyuu() {
				fu += 4
			} else {
				fu += 2
			}
		case Kantsu:
			base := 16
			if m.IsAnkan {
				base = 32
			}
			if !m.Tile.IsYaokyuu() {
				base /= 2
			}
			fu += base
		}
	}

	if d.PairTile >= tile.Haku && d.PairTile <= tile.Chun {
		fu += 2
	}
	if d.PairTile == ctx.Bakaze {
		fu += 2
	}
	if d.PairTile == ctx.Jikaze {
		fu += 2
	}

	// The fu==20 fixed totals below (open kuipinfu 30, closed ron 40,
	// closed/open tsumo 30) already fold in the non-ryanmen wait fu, so the
	// wait-fu addition further down only applies to the additive case.
	fixedTotal := fu == 20
	if fixedTotal {
		switch {
		case len(ctx.OpenMelds) > 0:
			fu = 30
		case ctx.IsRon:
			fu = 40
		default:
			fu = 30
		}
	} else {
		if !ctx.IsRon {
			fu += 2
		}
		if ctx.IsMenzen && ctx.IsRon {
			fu += 10
		}
		if !minkouSelected {
			switch classifyWait(d, ctx.WinningTile) {
			case WaitTanki, WaitKanchan, WaitPenchan:
				fu += 2
			}
		}
	}

	return roundUp10(fu)
}
