// Package danger implements the wall- and suji-based danger heuristics
// used to help a caller understand why the engine favors one discard over
// another (spec §4.7), ported from killerducky's dealin-rate chance
// strategies and EndlessCheng's no-chance/one-chance classification.
package danger

import (
	"sort"
	"sync"

	"github.com/lamyinia/riichicore/state"
	"github.com/lamyinia/riichicore/tile"
)

// WallDangerKind classifies how likely a ryanmen-style wait is to still be
// live given what has already been discarded/called.
type WallDangerKind int

const (
	// WallDangerNone carries no guarantee about the tile's danger.
	WallDangerNone WallDangerKind = iota
	// WallDangerDoubleNoChance: tanki/shanpon wait, both forming tiles dead.
	WallDangerDoubleNoChance
	// WallDangerNoChance: tanki/penchan/kanchan wait, the single forming tile is dead.
	WallDangerNoChance
	// WallDangerDoubleOneChance: ryanmen wait where both forming sides have
	// exactly one tile left unseen.
	WallDangerDoubleOneChance
	// WallDangerMixedOneChance: ryanmen wait where one side is fully seen
	// and the other has exactly one tile left.
	WallDangerMixedOneChance
	// WallDangerOneChance: ryanmen wait where one forming tile has exactly
	// one copy left unseen.
	WallDangerOneChance
)

// Acronym returns the short label used in analysis output ("NC", "OC", ...).
func (k WallDangerKind) Acronym() string {
	switch k {
	case WallDangerDoubleNoChance:
		return "DNC"
	case WallDangerNoChance:
		return "NC"
	case WallDangerDoubleOneChance:
		return "DOC"
	case WallDangerMixedOneChance:
		return "MOC"
	case WallDangerOneChance:
		return "OC"
	default:
		return ""
	}
}

// WaitKind is the shape classification used for danger weighting.
type WaitKind int

const (
	Ryanmen WaitKind = iota
	Kanchan
	Penchan
	Tanki
	Shanpon
)

// GeneralWait is a boardstate-agnostic description of one possible wait
// shape: the tiles held that form it, and the tile(s) it waits on.
type GeneralWait struct {
	Tiles []tile.Tile
	Waits []tile.Tile
	Kind  WaitKind
}

// Wait is a specific GeneralWait annotated with everything known about the
// current board: whether it is genbutsu (provably safe), how many
// combinations remain unseen, and the suji/dora flags that adjust its
// danger weight.
type Wait struct {
	Shape            GeneralWait
	Genbutsu         bool
	Combinations     int
	UraSuji          bool
	MatagiSujiEarly  bool
	MatagiSujiRiichi bool
	RiichiSujiTrap   bool
	DoraInvolved     bool
	Weight           float64
}

// IndividualWeight doubles a shanpon wait's weight, matching the
// convention that a shanpon wins off either of two distinct tiles.
func (w Wait) IndividualWeight() float64 {
	if w.Shape.Kind == Shanpon {
		return w.Weight * 2
	}
	return w.Weight
}

// PlayerDanger holds the per-tile danger weights and the individual waits
// that contributed to them, for a single opponent.
type PlayerDanger struct {
	TileWeights [tile.NumKinds]float64
	Waits       []Wait
}

// TileWeight pairs a tile with its aggregate danger weight.
type TileWeight struct {
	Tile   tile.Tile
	Weight float64
}

// SortedTileWeights returns every tile's weight, most dangerous first.
func (d PlayerDanger) SortedTileWeights() []TileWeight {
	out := make([]TileWeight, tile.NumKinds)
	for i := 0; i < tile.NumKinds; i++ {
		out[i] = TileWeight{Tile: tile.Tile(i), Weight: d.TileWeights[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// TileWaits returns every Wait that would be satisfied by t.
func (d PlayerDanger) TileWaits(t tile.Tile) []Wait {
	var out []Wait
	for _, w := range d.Waits {
		for _, waitTile := range w.Shape.Waits {
			if waitTile == t {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

var (
	possibleWaitsOnce sync.Once
	possibleWaits     []GeneralWait
)

// PossibleWaits enumerates every context-free wait shape (all ryanmen,
// kanchan, penchan, tanki, shanpon positions across all four suits),
// computed once and cached.
func PossibleWaits() []GeneralWait {
	possibleWaitsOnce.Do(func() {
		possibleWaits = buildPossibleWaits()
	})
	return possibleWaits
}

func buildPossibleWaits() []GeneralWait {
	var out []GeneralWait

	for suit := 0; suit < 3; suit++ {
		base := suit * 9
		for number := 1; number <= 6; number++ {
			out = append(out, GeneralWait{
				Tiles: []tile.Tile{tile.Tile(base + number), tile.Tile(base + number + 1)},
				Waits: []tile.Tile{tile.Tile(base + number - 1), tile.Tile(base + number + 2)},
				Kind:  Ryanmen,
			})
		}
	}
	for suit := 0; suit < 3; suit++ {
		base := suit * 9
		for number := 1; number <= 7; number++ {
			out = append(out, GeneralWait{
				Tiles: []tile.Tile{tile.Tile(base + number - 1), tile.Tile(base + number + 1)},
				Waits: []tile.Tile{tile.Tile(base + number)},
				Kind:  Kanchan,
			})
		}
	}
	for suit := 0; suit < 3; suit++ {
		base := suit * 9
		out = append(out, GeneralWait{
			Tiles: []tile.Tile{tile.Tile(base), tile.Tile(base + 1)},
			Waits: []tile.Tile{tile.Tile(base + 2)},
			Kind:  Penchan,
		})
		out = append(out, GeneralWait{
			Tiles: []tile.Tile{tile.Tile(base + 7), tile.Tile(base + 8)},
			Waits: []tile.Tile{tile.Tile(base + 6)},
			Kind:  Penchan,
		})
	}
	for kind := 0; kind < tile.NumKinds; kind++ {
		out = append(out, GeneralWait{
			Tiles: []tile.Tile{tile.Tile(kind)},
			Waits: []tile.Tile{tile.Tile(kind)},
			Kind:  Shanpon,
		})
		out = append(out, GeneralWait{
			Tiles: []tile.Tile{tile.Tile(kind)},
			Waits: []tile.Tile{tile.Tile(kind)},
			Kind:  Tanki,
		})
	}
	return out
}

func isSuji3to5(n int) bool { return n >= 3 && n <= 5 }

func containsTile(ts []tile.Tile, t tile.Tile) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

func absDiff(a, b tile.Tile) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// CalculatePlayerDanger scores every possible wait shape against one
// opponent's known-safe tiles, unseen-tile counts, pre-riichi discards,
// riichi declaration tile, and the table's dora indicators, and
// accumulates the per-tile danger weights those waits imply.
func CalculatePlayerDanger(
	safeTiles [tile.NumKinds]bool,
	discardsBeforeRiichi []tile.Tile,
	riichiTile *tile.Tile,
	unseenTiles [tile.NumKinds]uint8,
	doras []tile.Tile,
) PlayerDanger {
	var waits []Wait
	var tileWeights [tile.NumKinds]float64

	for _, shape := range PossibleWaits() {
		genbutsu := false
		for _, w := range shape.Waits {
			if safeTiles[w] {
				genbutsu = true
				break
			}
		}

		var combinations int
		if shape.Kind == Shanpon {
			n := int(unseenTiles[shape.Tiles[0]])
			combinations = n * (n - 1) / 2
			if combinations < 0 {
				combinations = 0
			}
		} else {
			combinations = 1
			for _, t := range shape.Tiles {
				combinations *= int(unseenTiles[t])
			}
		}

		var uraSuji, matagiSujiEarly, matagiSujiRiichi bool
		if shape.Kind == Ryanmen {
			for _, discarded := range discardsBeforeRiichi {
				n := int(discarded) % 9
				if !isSuji3to5(n) {
					continue
				}
				if containsTile(shape.Tiles, discarded) {
					continue
				}
				for _, w := range shape.Waits {
					if absDiff(discarded, w) == 2 {
						uraSuji = true
						break
					}
				}
			}
			for _, discarded := range discardsBeforeRiichi {
				if containsTile(shape.Tiles, discarded) {
					matagiSujiEarly = true
					break
				}
			}
			if riichiTile != nil && containsTile(shape.Tiles, *riichiTile) {
				matagiSujiRiichi = true
			}
		}

		riichiSujiTrap := shape.Kind == Kanchan && riichiTile != nil &&
			isSuji3to5(int(*riichiTile)%9) &&
			anyAbsDiff3(shape.Waits, *riichiTile)

		doraInvolved := false
		for _, t := range append(append([]tile.Tile{}, shape.Tiles...), shape.Waits...) {
			if containsTile(doras, t) {
				doraInvolved = true
				break
			}
		}

		var weight float64
		if genbutsu {
			weight = 0
		} else {
			weight = float64(combinations)
			switch {
			case shape.Kind == Ryanmen:
				weight *= 3.5
			case (shape.Kind == Tanki || shape.Kind == Shanpon) && shape.Tiles[0] >= tile.East:
				weight *= 1.7
			case shape.Kind == Tanki || shape.Kind == Shanpon:
				weight *= 1.0
			case shape.Kind == Kanchan && riichiSujiTrap:
				weight *= 2.6
			case shape.Kind == Kanchan:
				weight *= 0.21
			case shape.Kind == Penchan:
				weight *= 1.0
			}
			if uraSuji {
				weight *= 1.3
			}
			if matagiSujiEarly {
				weight *= 0.6
			}
			if matagiSujiRiichi {
				weight *= 1.2
			}
			if doraInvolved {
				weight *= 1.2
			}
		}

		for _, w := range shape.Waits {
			tileWeights[w] += weight
		}

		waits = append(waits, Wait{
			Shape:            shape,
			Genbutsu:         genbutsu,
			Combinations:     combinations,
			UraSuji:          uraSuji,
			MatagiSujiEarly:  matagiSujiEarly,
			MatagiSujiRiichi: matagiSujiRiichi,
			RiichiSujiTrap:   riichiSujiTrap,
			DoraInvolved:     doraInvolved,
			Weight:           weight,
		})
	}

	return PlayerDanger{TileWeights: tileWeights, Waits: waits}
}

func anyAbsDiff3(waits []tile.Tile, t tile.Tile) bool {
	for _, w := range waits {
		if absDiff(t, w) == 3 {
			return true
		}
	}
	return false
}

// CalculateWallDanger classifies every number tile's ryanmen-style danger
// (no-chance / one-chance / double-no-chance / ...) purely from how many
// copies of its neighboring tiles remain unseen. Honor tiles are always
// WallDangerNone: a shanpon/tanki wait on an honor has no "neighboring
// tile" structure to exploit.
func CalculateWallDanger(unseenTiles [tile.NumKinds]uint8) [tile.NumKinds]WallDangerKind {
	var result [tile.NumKinds]WallDangerKind

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			idx := 9*i + j
			if unseenTiles[idx+1] == 1 && unseenTiles[idx+2] == 1 {
				result[idx] = WallDangerDoubleOneChance
			} else if unseenTiles[idx+1] == 1 || unseenTiles[idx+2] == 1 {
				result[idx] = WallDangerOneChance
			}
		}
		for j := 3; j < 6; j++ {
			idx := 9*i + j
			if (unseenTiles[idx-2] == 1 || unseenTiles[idx-1] == 1) &&
				(unseenTiles[idx+1] == 1 || unseenTiles[idx+2] == 1) {
				switch {
				case unseenTiles[idx-2] == 1 && unseenTiles[idx-1] == 1 && unseenTiles[idx+1] == 1 && unseenTiles[idx+2] == 1:
					result[idx] = WallDangerDoubleOneChance
				case (unseenTiles[idx-2] == 1 && unseenTiles[idx-1] == 1) || (unseenTiles[idx+1] == 1 && unseenTiles[idx+2] == 1):
					result[idx] = WallDangerMixedOneChance
				default:
					result[idx] = WallDangerOneChance
				}
			}
		}
		for j := 6; j < 9; j++ {
			idx := 9*i + j
			if unseenTiles[idx-2] == 1 && unseenTiles[idx-1] == 1 {
				result[idx] = WallDangerDoubleOneChance
			} else if unseenTiles[idx-2] == 1 || unseenTiles[idx-1] == 1 {
				result[idx] = WallDangerOneChance
			}
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			idx := 9*i + j
			if unseenTiles[idx+1] == 0 || unseenTiles[idx+2] == 0 {
				result[idx] = WallDangerNoChance
			}
		}
		for j := 3; j < 6; j++ {
			idx := 9*i + j
			if (unseenTiles[idx-2] == 0 || unseenTiles[idx-1] == 0) &&
				(unseenTiles[idx+1] == 0 || unseenTiles[idx+2] == 0) {
				result[idx] = WallDangerNoChance
			}
		}
		for j := 6; j < 9; j++ {
			idx := 9*i + j
			if unseenTiles[idx-2] == 0 || unseenTiles[idx-1] == 0 {
				result[idx] = WallDangerNoChance
			}
		}
	}

	for i := 0; i < 3; i++ {
		if unseenTiles[9*i+1] == 0 || unseenTiles[9*i+2] == 0 {
			result[9*i] = WallDangerDoubleNoChance
		}
		if unseenTiles[9*i+2] == 0 || (unseenTiles[9*i] == 0 && unseenTiles[9*i+3] == 0) {
			result[9*i+1] = WallDangerDoubleNoChance
		}
		for j := 2; j <= 6; j++ {
			idx := 9*i + j
			if (unseenTiles[idx-2] == 0 && unseenTiles[idx+1] == 0) ||
				(unseenTiles[idx-1] == 0 && unseenTiles[idx+1] == 0) ||
				(unseenTiles[idx-1] == 0 && unseenTiles[idx+2] == 0) {
				result[idx] = WallDangerDoubleNoChance
			}
		}
		if unseenTiles[9*i+6] == 0 || (unseenTiles[9*i+5] == 0 && unseenTiles[9*i+8] == 0) {
			result[9*i+7] = WallDangerDoubleNoChance
		}
		if unseenTiles[9*i+6] == 0 || unseenTiles[9*i+7] == 0 {
			result[9*i+8] = WallDangerDoubleNoChance
		}
	}

	return result
}

// DetermineSafeTiles derives, for each of the three opponents (relative
// seats 1, 2, 3 from the caller), one merged set of safe tiles: genbutsu
// (discarded by that opponent) plus the temporarily safe tiles (discarded
// by anyone since that opponent's last tedashi, cleared the moment that
// opponent makes a hand-changing discard of their own). Riichi
// declarations are not taken into account.
func DetermineSafeTiles(kawa [4][]state.KawaItem) [3][tile.NumKinds]bool {
	var safe, tempSafe [3][tile.NumKinds]bool

	maxLen := 0
	for _, k := range kawa {
		if len(k) > maxLen {
			maxLen = len(k)
		}
	}

	for turn := 0; turn < maxLen; turn++ {
		for actor := 0; actor < 4; actor++ {
			if turn >= len(kawa[actor]) {
				continue
			}
			item := kawa[actor][turn]
			t := item.Tile.Deaka()
			for player := 0; player < 3; player++ {
				tempSafe[player][t] = true
			}
			if actor != 0 {
				opp := actor - 1
				safe[opp][t] = true
				if !item.Tsumogiri {
					tempSafe[opp] = [tile.NumKinds]bool{}
				}
			}
		}
	}

	for player := 0; player < 3; player++ {
		for t := 0; t < tile.NumKinds; t++ {
			if tempSafe[player][t] {
				safe[player][t] = true
			}
		}
	}

	return safe
}

// CalculateBoardDanger runs CalculatePlayerDanger for each of the three
// opponents visible from s's own seat, deriving unseen-tile counts,
// pre-riichi discards, and riichi tiles directly from s's tracked state.
func CalculateBoardDanger(s *state.PlayerState) [3]PlayerDanger {
	var unseen [tile.NumKinds]uint8
	for i, seen := range s.TilesSeen {
		unseen[i] = 4 - seen
	}

	safeTiles := DetermineSafeTiles(s.Kawa)

	var doras []tile.Tile
	for _, indicator := range s.DoraIndicators {
		doras = append(doras, indicator.Next())
	}

	var out [3]PlayerDanger
	for player := 0; player < 3; player++ {
		actor := player + 1
		var discardsBeforeRiichi []tile.Tile
		var riichiTile *tile.Tile
		for _, item := range s.Kawa[actor] {
			if item.RiichiDeclare {
				t := item.Tile.Deaka()
				riichiTile = &t
				break
			}
			discardsBeforeRiichi = append(discardsBeforeRiichi, item.Tile.Deaka())
		}
		out[player] = CalculatePlayerDanger(safeTiles[player], discardsBeforeRiichi, riichiTile, unseen, doras)
	}
	return out
}
