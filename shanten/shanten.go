// Package shanten implements the minimum-tile-distance-to-tenpai kernel
// described in spec §4.2: the regular (melds + pair), chiitoitsu, and
// kokushi shapes, evaluated in parallel and reduced to their minimum.
//
// Grounded on framework/game/engines/mahjong/searcher.go's dfsNormalShanten,
// generalized from a hardcoded 4-meld target to the spec's k (division-count)
// parameter.
package shanten

import "github.com/lamyinia/riichicore/tile"

// Complete is the sentinel shanten value meaning the hand is already a
// winning shape.
const Complete = -1

// Of returns the minimum shanten of hand across the regular, chiitoitsu, and
// kokushi shapes. k is the number of non-kan melds still to be completed in
// the concealed portion of the hand (4 for a standard 13-tile hand with no
// locked melds, less if melds are already locked via calls). Chiitoitsu and
// kokushi are only considered when k == 4, per spec.
func Of(hand tile.Hand, k int) int {
	best := Regular(hand, k)
	if k == 4 {
		if v := Chiitoitsu(hand); v < best {
			best = v
		}
		if v := Kokushi(hand); v < best {
			best = v
		}
	}
	return best
}

// Regular computes the minimum shanten for the "k melds + 1 pair" shape.
func Regular(hand tile.Hand, k int) int {
	best := 2*k + 1 // unreachable upper bound, tightened by the DFS below
	work := hand
	dfsRegular(&work, k, 0, 0, 0, &best)
	return best
}

// dfsRegular performs the classical per-suit partition search: at each step
// it looks at the lowest nonzero bucket and tries, in turn, consuming it as
// part of a triplet, a run, a pair, a ryanmen/kanchan/penchan partial run, or
// skipping it as a dead tile. best is updated at every node (not just
// leaves), which is valid because peeling off more structure can never raise
// shanten, so the running partial assignment already bounds the optimum.
//
//	k:    melds still needed (the standard-hand target)
//	m:    melds already committed during this search
//	p:    1 once a pair has been committed, else 0
//	t:    partial-run/pair-candidate ("taatsu") count committed so far
func dfsRegular(h *tile.Hand, k, m, p, t int, best *int) {
	if m > k {
		return
	}

	t2 := t
	if limit := k - m; t2 > limit {
		t2 = limit
	}

	sh := 2*k - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := -1
	for idx := 0; idx < tile.NumKinds; idx++ {
		if h[idx] > 0 {
			i = idx
			break
		}
	}
	if i == -1 {
		return
	}
	it := tile.Tile(i)

	if it.IsHonor() {
		if h[i] >= 3 {
			h[i] -= 3
			dfsRegular(h, k, m+1, p, t, best)
			h[i] += 3
		}
		if p == 0 && h[i] >= 2 {
			h[i] -= 2
			dfsRegular(h, k, m, 1, t, best)
			h[i] += 2
		}
		// Toitsu-as-taatsu: a pair not used as the hand's pair is still a
		// proto-triplet, which is what a shanpon wait rests on.
		if h[i] >= 2 {
			h[i] -= 2
			dfsRegular(h, k, m, p, t+1, best)
			h[i] += 2
		}
		h[i]--
		dfsRegular(h, k, m, p, t, best)
		h[i]++
		return
	}

	sameSuitNext := func(off int) bool {
		return i+off < tile.NumKinds && tile.Tile(i+off).SuitOf() == it.SuitOf()
	}

	// Triplet.
	if h[i] >= 3 {
		h[i] -= 3
		dfsRegular(h, k, m+1, p, t, best)
		h[i] += 3
	}
	// Run i, i+1, i+2.
	if sameSuitNext(1) && sameSuitNext(2) && h[i+1] > 0 && h[i+2] > 0 {
		h[i]--
		h[i+1]--
		h[i+2]--
		dfsRegular(h, k, m+1, p, t, best)
		h[i]++
		h[i+1]++
		h[i+2]++
	}
	// Pair.
	if p == 0 && h[i] >= 2 {
		h[i] -= 2
		dfsRegular(h, k, m, 1, t, best)
		h[i] += 2
	}
	// Toitsu-as-taatsu: a pair not used as the hand's pair is still a
	// proto-triplet, which is what a shanpon wait rests on.
	if h[i] >= 2 {
		h[i] -= 2
		dfsRegular(h, k, m, p, t+1, best)
		h[i] += 2
	}
	// Ryanmen/penchan partial: i, i+1.
	if sameSuitNext(1) && h[i+1] > 0 {
		h[i]--
		h[i+1]--
		dfsRegular(h, k, m, p, t+1, best)
		h[i]++
		h[i+1]++
	}
	// Kanchan partial: i, i+2.
	if sameSuitNext(2) && h[i+2] > 0 {
		h[i]--
		h[i+2]--
		dfsRegular(h, k, m, p, t+1, best)
		h[i]++
		h[i+2]++
	}
	// Skip this tile as a dead floater.
	h[i]--
	dfsRegular(h, k, m, p, t, best)
	h[i]++
}

// Chiitoitsu computes seven-pairs shanten: 6 minus the number of pairs,
// plus a penalty for having fewer than 7 distinct tile kinds (since a
// chiitoitsu hand can never reuse a kind for two pairs).
func Chiitoitsu(hand tile.Hand) int {
	pairs, kinds := 0, 0
	for _, c := range hand {
		if c > 0 {
			kinds++
		}
		pairs += int(c / 2)
	}
	sh := 6 - pairs
	if kinds < 7 {
		sh += 7 - kinds
	}
	return sh
}

var kokushiTiles = [13]tile.Tile{
	tile.M1, tile.M9, tile.P1, tile.P9, tile.S1, tile.S9,
	tile.East, tile.South, tile.West, tile.North, tile.Haku, tile.Hatsu, tile.Chun,
}

// Kokushi computes thirteen-orphans shanten.
func Kokushi(hand tile.Hand) int {
	unique, pair := 0, false
	for _, kt := range kokushiTiles {
		if hand[kt] > 0 {
			unique++
			if hand[kt] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// CalcKokushi is the §4.2 auxiliary helper: given a 13+1 (14-tile) hand,
// it returns -1 exactly when the hand is kokushi-musou complete, and a
// nonnegative distance otherwise. It is the same computation as Kokushi;
// the -1 sentinel falls out naturally once all 13 orphans are present with
// one paired.
func CalcKokushi(hand14 tile.Hand) int {
	return Kokushi(hand14)
}

// IsYaokyuuOnly reports whether every present tile kind in hand is a
// terminal or honor (used by honroutou/kokushi-adjacent checks elsewhere).
func IsYaokyuuOnly(hand tile.Hand) bool {
	for i := 0; i < tile.NumKinds; i++ {
		if hand[i] == 0 {
			continue
		}
		if !tile.Tile(i).IsYaokyuu() {
			return false
		}
	}
	return true
}
