package agari

import "github.com/lamyinia/riichicore/tile"

// Div is the bit-packed 32-bit wire form of a Decomp, matching spec §6.2's
// layout exactly so the gzip table format round-trips bit-for-bit:
//
//	bits 0..2:   kotsu count (0..4)
//	bits 3..5:   shuntsu count (0..4)
//	bits 6..9:   pair index into the 14-tile canonical array
//	bits 10..25: four 4-bit meld indices (kotsu first, then shuntsu)
//	bit 26:      has_chitoi
//	bit 27:      has_chuuren
//	bit 28:      has_ittsuu
//	bit 29:      has_ryanpeikou
//	bit 30:      has_ipeikou
type Div uint32

func (d Div) KotsuCount() int   { return int(d & 0x7) }
func (d Div) ShuntsuCount() int { return int((d >> 3) & 0x7) }
func (d Div) PairIndex() int    { return int((d >> 6) & 0xF) }
func (d Div) MeldIndex(i int) int {
	return int((d >> (10 + 4*uint(i))) & 0xF)
}
func (d Div) HasChiitoi() bool    { return d&(1<<26) != 0 }
func (d Div) HasChuuren() bool    { return d&(1<<27) != 0 }
func (d Div) HasIttsuu() bool     { return d&(1<<28) != 0 }
func (d Div) HasRyanpeikou() bool { return d&(1<<29) != 0 }
func (d Div) HasIipeikou() bool   { return d&(1<<30) != 0 }

// CanonicalArray expands a 34-bucket hand into its canonical ordered
// 14-tile array (spec §4.3a): walking m1..m9, p1..p9, s1..s9, then the
// honors, each tile value repeated by its count.
func CanonicalArray(hand tile.Hand) []tile.Tile {
	out := make([]tile.Tile, 0, 14)
	for i := 0; i < tile.NumKinds; i++ {
		for c := uint8(0); c < hand[i]; c++ {
			out = append(out, tile.Tile(i))
		}
	}
	return out
}

// PackDiv encodes a Decomp against the canonical array of the concealed
// hand it was computed from. Meld/pair indices reference the first unused
// position in arr matching that group's tiles.
func PackDiv(d Decomp, arr []tile.Tile) Div {
	used := make([]bool, len(arr))
	indexOf := func(want tile.Tile, count int) int {
		first := -1
		n := 0
		for i, t := range arr {
			if !used[i] && t == want {
				used[i] = true
				if n == 0 {
					first = i
				}
				n++
				if n == count {
					break
				}
			}
		}
		return first
	}

	var div Div
	div |= Div(len(d.Kotsu)) & 0x7
	div |= (Div(len(d.Shuntsu)) & 0x7) << 3
	pairIdx := indexOf(d.PairTile, 2)
	div |= (Div(pairIdx) & 0xF) << 6

	slot := 0
	for _, kt := range d.Kotsu {
		idx := indexOf(kt, 3)
		div |= (Div(idx) & 0xF) << (10 + 4*uint(slot))
		slot++
	}
	for _, st := range d.Shuntsu {
		idx := indexOf(st, 1)
		_ = indexOf(st+1, 1)
		_ = indexOf(st+2, 1)
		div |= (Div(idx) & 0xF) << (10 + 4*uint(slot))
		slot++
	}

	if d.HasChiitoitsu {
		div |= 1 << 26
	}
	if d.HasChuuren {
		div |= 1 << 27
	}
	if d.HasIttsuu {
		div |= 1 << 28
	}
	if d.HasRyanpeikou {
		div |= 1 << 29
	}
	if d.HasIipeikou {
		div |= 1 << 30
	}
	return div
}

// UnpackDiv reconstructs a Decomp from a Div and the canonical array it was
// packed against. Meld tile values are read directly off the array at the
// stored indices.
func UnpackDiv(div Div, arr []tile.Tile) Decomp {
	var d Decomp
	if div.PairIndex() < len(arr) {
		d.PairTile = arr[div.PairIndex()]
	}
	slot := 0
	for i := 0; i < div.KotsuCount(); i++ {
		idx := div.MeldIndex(slot)
		slot++
		if idx < len(arr) {
			d.Kotsu = append(d.Kotsu, arr[idx])
		}
	}
	for i := 0; i < div.ShuntsuCount(); i++ {
		idx := div.MeldIndex(slot)
		slot++
		if idx < len(arr) {
			d.Shuntsu = append(d.Shuntsu, arr[idx])
		}
	}
	d.HasChiitoitsu = div.HasChiitoi()
	d.HasChuuren = div.HasChuuren()
	d.HasIttsuu = div.HasIttsuu()
	d.HasRyanpeikou = div.HasRyanpeikou()
	d.HasIipeikou = div.HasIipeikou()
	return d
}
