package agari

import "github.com/lamyinia/riichicore/tile"

// Context carries everything about a winning hand that is not encoded in
// a Decomp: the open-meld context, the winning tile and how it was
// obtained, and the external flags the yaku table (§4.3e) needs.
type Context struct {
	OpenMelds   []Meld
	WinningTile tile.Tile
	IsRon       bool

	Bakaze tile.Tile
	Jikaze tile.Tile

	IsMenzen bool // no open (non-ankan) calls

	Riichi       bool
	DoubleRiichi bool
	Ippatsu      bool
	Haitei       bool
	Houtei       bool
	Rinshan      bool
	Chankan      bool
	Tenhou       bool
	Chiihou      bool
}

// allMelds returns the concealed melds of decomp plus ctx's open melds, as
// a unified []Meld view for yaku/fu logic that doesn't care about
// concealment.
func allMelds(ctx Context, d Decomp) []Meld {
	out := make([]Meld, 0, 4)
	for _, t := range d.Kotsu {
		out = append(out, Meld{Tile: t, Kind: Kotsu})
	}
	for _, t := range d.Shuntsu {
		out = append(out, Meld{Tile: t, Kind: Shuntsu})
	}
	out = append(out, ctx.OpenMelds...)
	return out
}

// winningTileMakesMinkou implements spec §4.3c: when the win is by ron and
// the winning tile's value appears in the concealed-kotsu list, check
// whether a concealed run could instead have absorbed it; if none could,
// this triplet must be treated as an open triplet (minkou) for fu/sanankou
// purposes (preserving a run interpretation over a concealed-triplet one).
func winningTileMakesMinkou(ctx Context, d Decomp) bool {
	if !ctx.IsRon {
		return false
	}
	w := ctx.WinningTile.Deaka()
	isKotsuOfWinning := false
	for _, k := range d.Kotsu {
		if k == w {
			isKotsuOfWinning = true
			break
		}
	}
	if !isKotsuOfWinning {
		return false
	}
	if w.IsHonor() {
		return true
	}
	for _, s := range d.Shuntsu {
		if w >= s && w <= s+2 {
			return false
		}
	}
	return true
}
