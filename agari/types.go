// Package agari implements winning-hand recognition, decomposition into
// pair+melds, and full yaku/fu/score calculation (spec §4.3).
package agari

import "github.com/lamyinia/riichicore/tile"

// MeldKind distinguishes the three meld shapes a group can take.
type MeldKind int

const (
	Shuntsu MeldKind = iota // run of 3 consecutive tiles in one suit
	Kotsu                   // triplet
	Kantsu                  // quad
)

// Meld is one exposed or concealed group. Tile is the group's base/lowest
// tile (for a run, its first tile; for a triplet/quad, the repeated tile).
type Meld struct {
	Tile    tile.Tile
	Kind    MeldKind
	Open    bool // called (pon/chi/daiminkan/kakan) vs concealed (ankan or hand-internal)
	IsAnkan bool
}

// Decomp is one legal pair+melds resolution of a concealed hand shape
// (spec §3.5, expanded to tile-domain fields rather than the bit-packed
// wire form — see Div/PackDiv for the wire encoding used by §6.2).
type Decomp struct {
	PairTile tile.Tile
	Kotsu    []tile.Tile // base tile of each concealed triplet
	Shuntsu  []tile.Tile // lowest tile of each concealed run

	HasChuuren    bool
	HasIttsuu     bool
	HasRyanpeikou bool
	HasIipeikou   bool
	HasChiitoitsu bool
}

// Agari is the scored result of a winning hand (spec §3.6): either a
// standard fu/han pair or a yakuman multiplier. Zero value is the "no
// result" sentinel; use Ok() to test.
type Agari struct {
	valid    bool
	yakuman  bool
	Fu       int
	Han      int
	Yakuman  int
	YakuList []YakuHan
}

// YakuHan names one contributing yaku and its han value (0 for a yakuman
// contribution, where the Agari's Yakuman field carries the count instead).
type YakuHan struct {
	Name string
	Han  int
}

// Ok reports whether this is a genuine result (as opposed to the
// soft "no result" returned when no yaku/external-han combination applies).
func (a Agari) Ok() bool { return a.valid }

// IsYakuman reports whether this result is a yakuman-class score.
func (a Agari) IsYakuman() bool { return a.valid && a.yakuman }

// Less orders Agari per spec §3.6: all Yakuman > all Normal; within
// Normal, order by han then fu.
func (a Agari) Less(b Agari) bool {
	if !a.valid {
		return b.valid
	}
	if !b.valid {
		return false
	}
	if a.yakuman != b.yakuman {
		return b.yakuman
	}
	if a.yakuman {
		return a.Yakuman < b.Yakuman
	}
	if a.Han != b.Han {
		return a.Han < b.Han
	}
	return a.Fu < b.Fu
}

func normal(fu, han int, yaku []YakuHan) Agari {
	return Agari{valid: true, Fu: fu, Han: han, YakuList: yaku}
}

func yakumanResult(mult int, yaku []YakuHan) Agari {
	return Agari{valid: true, yakuman: true, Yakuman: mult, YakuList: yaku}
}

// None is the soft "no result" value (spec §7 category 3).
var None = Agari{}
