package agari

import (
	"sort"

	"github.com/lamyinia/riichicore/tile"
)

// RegularDecompositions enumerates every pair+k-meld decomposition of a
// concealed hand that exactly consumes it (no leftover tiles), per spec
// §4.3's shape search. k is the number of concealed melds required (4 for
// a fully concealed hand, less when melds are locked by open calls and
// only the remainder is passed in).
func RegularDecompositions(hand tile.Hand, k int) []Decomp {
	if hand.Sum() != 3*k+2 {
		return nil
	}
	var out []Decomp
	seen := map[string]bool{}
	var kotsu, shuntsu []tile.Tile
	var pair tile.Tile = -1

	work := hand
	var dfs func()
	dfs = func() {
		i := -1
		for idx := 0; idx < tile.NumKinds; idx++ {
			if work[idx] > 0 {
				i = idx
				break
			}
		}
		if i == -1 {
			if len(kotsu)+len(shuntsu) != k || pair == -1 {
				return
			}
			d := Decomp{PairTile: pair, Kotsu: append([]tile.Tile(nil), kotsu...), Shuntsu: append([]tile.Tile(nil), shuntsu...)}
			key := decompKey(d)
			if !seen[key] {
				seen[key] = true
				out = append(out, d)
			}
			return
		}
		it := tile.Tile(i)

		if work[i] >= 3 {
			work[i] -= 3
			kotsu = append(kotsu, it)
			dfs()
			kotsu = kotsu[:len(kotsu)-1]
			work[i] += 3
		}
		if !it.IsHonor() && i+2 < tile.NumKinds && tile.Tile(i+2).SuitOf() == it.SuitOf() &&
			work[i+1] > 0 && work[i+2] > 0 {
			work[i]--
			work[i+1]--
			work[i+2]--
			shuntsu = append(shuntsu, it)
			dfs()
			shuntsu = shuntsu[:len(shuntsu)-1]
			work[i]++
			work[i+1]++
			work[i+2]++
		}
		if pair == -1 && work[i] >= 2 {
			work[i] -= 2
			pair = it
			dfs()
			pair = -1
			work[i] += 2
		}
	}
	dfs()

	for idx := range out {
		applyShapeFlags(&out[idx])
	}
	return out
}

func decompKey(d Decomp) string {
	k := append([]tile.Tile(nil), d.Kotsu...)
	s := append([]tile.Tile(nil), d.Shuntsu...)
	sort.Slice(k, func(a, b int) bool { return k[a] < k[b] })
	sort.Slice(s, func(a, b int) bool { return s[a] < s[b] })
	buf := make([]byte, 0, 16)
	buf = append(buf, byte(d.PairTile))
	for _, t := range k {
		buf = append(buf, 'k', byte(t))
	}
	for _, t := range s {
		buf = append(buf, 's', byte(t))
	}
	return string(buf)
}

// applyShapeFlags fills in the shape-derived-only flags: chuuren is tested
// by the caller (needs the full 14-tile concealed hand, not just this
// decomp), ittsuu/iipeikou/ryanpeikou are pure functions of the run list.
func applyShapeFlags(d *Decomp) {
	counts := map[tile.Tile]int{}
	for _, s := range d.Shuntsu {
		counts[s]++
	}
	for _, suitBase := range []tile.Tile{tile.M1, tile.P1, tile.S1} {
		if counts[suitBase] > 0 && counts[suitBase+3] > 0 && counts[suitBase+6] > 0 {
			d.HasIttsuu = true
		}
	}
	pairs := 0
	quadsOfPairs := 0
	for _, c := range counts {
		pairs += c / 2
		if c >= 4 {
			quadsOfPairs++
		}
	}
	if pairs >= 1 {
		d.HasIipeikou = true
	}
	if pairs >= 2 && (quadsOfPairs >= 1 || countDistinctDoubled(counts) >= 2) {
		d.HasRyanpeikou = true
	}
}

func countDistinctDoubled(counts map[tile.Tile]int) int {
	n := 0
	for _, c := range counts {
		if c >= 2 {
			n++
		}
	}
	return n
}

// IsChuurenShape reports whether the full 14-tile concealed hand (single
// suit, no honors) matches the nine-gates pattern: 1112345678 9 99 of one
// suit plus any one extra tile of that suit.
func IsChuurenShape(hand tile.Hand) bool {
	var suitBase tile.Tile = -1
	for _, base := range []tile.Tile{tile.M1, tile.P1, tile.S1} {
		sum := 0
		for i := 0; i < 9; i++ {
			sum += int(hand[base+tile.Tile(i)])
		}
		if sum > 0 {
			if suitBase != -1 {
				return false
			}
			suitBase = base
		}
	}
	for i := tile.East; i <= tile.Chun; i++ {
		if hand[i] > 0 {
			return false
		}
	}
	if suitBase == -1 {
		return false
	}
	required := [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}
	extra := 0
	for i := 0; i < 9; i++ {
		c := hand[suitBase+tile.Tile(i)]
		if c < required[i] {
			return false
		}
		extra += int(c) - int(required[i])
	}
	return extra == 1
}
