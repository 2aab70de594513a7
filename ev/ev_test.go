package ev_test

import (
	"testing"

	"github.com/lamyinia/riichicore/ev"
	"github.com/lamyinia/riichicore/internal/xlog"
	"github.com/lamyinia/riichicore/rules"
	"github.com/lamyinia/riichicore/tile"
	"github.com/stretchr/testify/require"
)

func fullTilesLeft(hand tile.Hand) [tile.NumKinds]int {
	var left [tile.NumKinds]int
	for i := range left {
		left[i] = 4 - int(hand[i])
	}
	return left
}

func mustHand(t *testing.T, tiles ...tile.Tile) tile.Hand {
	t.Helper()
	var h tile.Hand
	var aka tile.Aka
	for _, tl := range tiles {
		require.NoError(t, h.Add(tl, &aka))
	}
	return h
}

func TestWithLoggerTracesQueries(t *testing.T) {
	calc := ev.NewCalculator(ev.Options{K: 4}, rules.Default()).WithLogger(xlog.New("ev-test"))
	_, err := calc.Calc(ev.State{}, true, 1, 7)
	require.NoError(t, err)
}

func TestCalcRejectsCompleteHand(t *testing.T) {
	calc := ev.NewCalculator(ev.Options{K: 4}, rules.Default())
	_, err := calc.Calc(ev.State{}, true, 1, -1)
	require.Error(t, err)
}

func TestCalcRejectsZeroTsumosLeft(t *testing.T) {
	calc := ev.NewCalculator(ev.Options{K: 4}, rules.Default())
	_, err := calc.Calc(ev.State{}, true, 0, 1)
	require.Error(t, err)
}

func TestCalcTenpaiHandHasPositiveWinProb(t *testing.T) {
	// Tenpai on a tanki P5 wait, 13-tile hand plus a freshly drawn M9
	// (discarding the M9 keeps the exact same tenpai shape).
	hand := mustHand(t,
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.P5,
	)
	state := ev.State{Hand: hand, TilesLeft: fullTilesLeft(hand)}

	calc := ev.NewCalculator(ev.Options{K: 4, IsMenzen: true, Bakaze: tile.East, Jikaze: tile.East}, rules.Default())
	cands, err := calc.Calc(state, true, 3, 0)
	require.NoError(t, err)
	require.NotEmpty(t, cands)

	var discardM9 *ev.Candidate
	for i := range cands {
		if cands[i].Tile == tile.M9 {
			discardM9 = &cands[i]
		}
	}
	require.NotNil(t, discardM9)
	total := 0.0
	for _, p := range discardM9.Values.WinProbs {
		total += p
	}
	require.Greater(t, total, 0.0)
}

func TestDegenerateFarFromTenpaiRanksByUkeire(t *testing.T) {
	// curShanten above the rule set's threshold (6 by default) short-
	// circuits straight to the ukeire-ranked degenerate path regardless
	// of what the hand actually looks like.
	hand := mustHand(t,
		tile.M1, tile.M2, tile.M4,
		tile.M6, tile.M8, tile.P1,
		tile.P3, tile.P5, tile.P7,
		tile.S2, tile.S4, tile.S6,
		tile.East,
	)
	state := ev.State{Hand: hand, TilesLeft: fullTilesLeft(hand)}
	calc := ev.NewCalculator(ev.Options{K: 4}, rules.Default())
	cands, err := calc.Calc(state, true, 1, 7)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		require.Len(t, c.Values.ExpValues, 1)
	}
	for i := 1; i < len(cands); i++ {
		require.GreaterOrEqual(t, cands[i-1].Values.ExpValues[0], cands[i].Values.ExpValues[0])
	}
}
