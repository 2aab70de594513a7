package agari

import (
	"fmt"

	"github.com/lamyinia/riichicore/shanten"
	"github.com/lamyinia/riichicore/tile"
)

// WaitSet returns every tile kind whose addition to hand (evaluated against
// k melds still needed) completes it. k=4 also evaluates the chiitoitsu
// and kokushi shapes, matching shanten.Of's convention.
func WaitSet(hand tile.Hand, k int) []tile.Tile {
	var waits []tile.Tile
	for i := 0; i < tile.NumKinds; i++ {
		if hand[i] >= 4 {
			continue
		}
		trial := hand
		trial[i]++
		if shanten.Of(trial, k) == shanten.Complete {
			waits = append(waits, tile.Tile(i))
		}
	}
	return waits
}

func sameWaitSet(a, b []tile.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[tile.Tile]bool{}
	for _, t := range a {
		seen[t] = true
	}
	for _, t := range b {
		if !seen[t] {
			return false
		}
	}
	return true
}

// CanAnkanAfterRiichi implements spec §4.3f: given a post-riichi hand
// (13-tile concealed tenpai shape plus the freshly drawn tile) and a
// candidate tile to ankan, reports whether the ankan is legal. The tile
// must already be a complete quad across hand+drawn, and the wait set must
// be unchanged by removing it. In strict mode, the number of decompositions
// available for every wait must also be preserved.
func CanAnkanAfterRiichi(preDraw tile.Hand, drawn, candidate tile.Tile, strict bool) (bool, error) {
	if preDraw.Sum() != 13 {
		return false, fmt.Errorf("agari: ankan legality check requires a 13-tile pre-draw hand, got %d", preDraw.Sum())
	}
	full := preDraw
	var aka tile.Aka
	if err := full.Add(drawn, &aka); err != nil {
		return false, fmt.Errorf("agari: adding drawn tile: %w", err)
	}
	c := candidate.Deaka()
	if full[c] != 4 {
		return false, fmt.Errorf("agari: %s is not a complete quad in hand", c)
	}

	preWaits := WaitSet(preDraw, 4)
	if len(preWaits) == 0 {
		return false, fmt.Errorf("agari: pre-draw hand is not tenpai")
	}

	post := full
	post[c] = 0
	postWaits := WaitSet(post, 3)

	if !sameWaitSet(preWaits, postWaits) {
		return false, nil
	}
	if !strict {
		return true, nil
	}

	for _, w := range preWaits {
		preTrial := preDraw
		preTrial[w]++
		postTrial := post
		postTrial[w]++
		if len(Global().Lookup(preTrial, 4)) != len(Global().Lookup(postTrial, 3)) {
			return false, nil
		}
	}
	return true, nil
}
