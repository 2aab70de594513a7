package agari

import (
	"fmt"

	"github.com/lamyinia/riichicore/shanten"
	"github.com/lamyinia/riichicore/tile"
)

// isJuusanmen reports whether a complete kokushi hand was won on a
// thirteen-way wait (the pair tile equals the winning tile, meaning all
// thirteen orphan kinds were already present as singles before the win).
func isJuusanmen(hand14 tile.Hand, winningTile tile.Tile) bool {
	w := winningTile.Deaka()
	return hand14[w] == 2
}

// Score is the top-level entry point for spec §4.3: given the concealed
// portion of a completed hand, its open-meld context, and the externally
// computed han, return the best-scoring Agari, or None if no yaku applies
// and externalHan is zero. Riichi, double riichi, ippatsu and menzen tsumo
// are read from ctx's flags; externalHan carries the other situational han
// (haitei/houtei/rinshan/chankan) plus dora/aka/ura-dora, summed by the
// caller.
//
// concealed is the hand restricted to tiles not already locked into
// ctx.OpenMelds; k is the number of melds still needed from it (4 minus
// the number of open melds). hand14 is the full 14-tile hand (concealed
// plus the tile-equivalent of every open meld) used only by shape-only
// checks (kokushi, chuuren) that need to see the whole hand.
func Score(ctx Context, concealed tile.Hand, k int, hand14 tile.Hand, externalHan int) (Agari, error) {
	if len(ctx.OpenMelds) == 0 {
		if shanten.CalcKokushi(hand14) == -1 {
			mult := 1
			if isJuusanmen(hand14, ctx.WinningTile) {
				mult = 2
			}
			return yakumanResult(mult, []YakuHan{{Name: "kokushi musou"}}), nil
		}
		if k == 4 && isChiitoitsuComplete(concealed) {
			yaku := []YakuHan{{Name: "chiitoitsu", Han: 2}}
			if ctx.Riichi && ctx.DoubleRiichi {
				yaku = append(yaku, YakuHan{Name: "double riichi", Han: 2})
			} else if ctx.Riichi {
				yaku = append(yaku, YakuHan{Name: "riichi", Han: 1})
			}
			if ctx.Ippatsu {
				yaku = append(yaku, YakuHan{Name: "ippatsu", Han: 1})
			}
			if !ctx.IsRon && ctx.IsMenzen {
				yaku = append(yaku, YakuHan{Name: "menzen tsumo", Han: 1})
			}
			han := 0
			for _, y := range yaku {
				han += y.Han
			}
			return normal(25, han+externalHan, yaku), nil
		}
	}

	decomps := Global().Lookup(concealed, k)
	if len(decomps) == 0 {
		return None, fmt.Errorf("agari: hand has no valid pair+meld decomposition")
	}

	var best Agari
	fallbackFu := -1
	for _, d := range decomps {
		if mult, names := ComputeYakuman(ctx, d, hand14); mult > 0 {
			yaku := make([]YakuHan, len(names))
			for i, n := range names {
				yaku[i] = YakuHan{Name: n}
			}
			if cand := yakumanResult(mult, yaku); best.Less(cand) {
				best = cand
			}
			continue
		}
		fu := ComputeFu(ctx, d)
		if fu > fallbackFu {
			fallbackFu = fu
		}
		yakuList := ComputeYaku(ctx, d)
		han := 0
		for _, y := range yakuList {
			han += y.Han
		}
		if han == 0 {
			continue
		}
		if cand := normal(fu, han+externalHan, yakuList); best.Less(cand) {
			best = cand
		}
	}
	if best.Ok() {
		return best, nil
	}

	if externalHan == 0 {
		return None, nil
	}
	if externalHan >= 5 {
		return normal(0, externalHan, nil), nil
	}
	if fallbackFu == -1 {
		fallbackFu = 30
	}
	return normal(fallbackFu, externalHan, nil), nil
}

func isChiitoitsuComplete(hand tile.Hand) bool {
	pairs, kinds := 0, 0
	for _, c := range hand {
		if c > 0 {
			kinds++
		}
		if c != 0 && c != 2 {
			return false
		}
		pairs += int(c / 2)
	}
	return pairs == 7 && kinds == 7
}
