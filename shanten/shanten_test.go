package shanten_test

import (
	"testing"

	"github.com/lamyinia/riichicore/shanten"
	"github.com/lamyinia/riichicore/tile"
	"github.com/stretchr/testify/require"
)

func mustHand(t *testing.T, tiles ...tile.Tile) tile.Hand {
	t.Helper()
	var h tile.Hand
	var aka tile.Aka
	for _, tt := range tiles {
		require.NoError(t, h.Add(tt, &aka))
	}
	return h
}

func TestRegularCompleteHand(t *testing.T) {
	h := mustHand(t,
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.East, tile.East,
	)
	require.Equal(t, shanten.Complete, shanten.Regular(h, 4))
}

func TestRegularTenpaiTankiWait(t *testing.T) {
	h := mustHand(t,
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.P4,
	)
	require.Equal(t, 0, shanten.Regular(h, 4))
}

func TestRegularEightAwayNoUsefulShape(t *testing.T) {
	h := mustHand(t,
		tile.M1, tile.M4, tile.M7,
		tile.P1, tile.P4, tile.P7,
		tile.S1, tile.S4, tile.S7,
		tile.East, tile.South, tile.West, tile.North,
	)
	require.Equal(t, 8, shanten.Regular(h, 4))
}

func TestRegularOneSwapFromTenpai(t *testing.T) {
	// 3 melds + two non-pair taatsu, no pair anywhere: one discard/draw away
	// from tenpai (turn one taatsu into a pair), not already tenpai.
	h := mustHand(t,
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2,
		tile.S1, tile.S3,
	)
	require.Equal(t, 1, shanten.Regular(h, 4))
}

func TestRegularTenpaiShanponWait(t *testing.T) {
	// 3 complete runs plus two pairs: tenpai on a shanpon wait, not one
	// swap away. The second pair must count as a taatsu even though the
	// hand's pair slot is already filled by the first.
	h := mustHand(t,
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P1,
		tile.S2, tile.S2,
	)
	require.Equal(t, 0, shanten.Regular(h, 4))
}

func TestRegularFewerMeldsNeeded(t *testing.T) {
	// All four melds already locked via calls; only the pair remains.
	h := mustHand(t, tile.East, tile.East)
	require.Equal(t, shanten.Complete, shanten.Regular(h, 0))

	var single tile.Hand
	var aka tile.Aka
	require.NoError(t, single.Add(tile.East, &aka))
	require.Equal(t, 0, shanten.Regular(single, 0))
}

func TestChiitoitsu(t *testing.T) {
	complete := mustHand(t,
		tile.M1, tile.M1, tile.M2, tile.M2, tile.M3, tile.M3,
		tile.M4, tile.M4, tile.M5, tile.M5, tile.M6, tile.M6,
		tile.M7, tile.M7,
	)
	require.Equal(t, shanten.Complete, shanten.Chiitoitsu(complete))

	sixPairsOneFloat := mustHand(t,
		tile.M1, tile.M1, tile.M2, tile.M2, tile.M3, tile.M3,
		tile.M4, tile.M4, tile.M5, tile.M5, tile.M6, tile.M6,
		tile.M7,
	)
	require.Equal(t, 0, shanten.Chiitoitsu(sixPairsOneFloat))

	// Duplicated pair (e.g. two M1 pairs) cannot both count: kinds penalty
	// applies even though the raw pair count looks high.
	dupKinds := mustHand(t,
		tile.M1, tile.M1, tile.M1, tile.M1,
		tile.M2, tile.M2, tile.M3, tile.M3, tile.M4, tile.M4,
		tile.M5, tile.M5, tile.M6,
	)
	require.Equal(t, 1, shanten.Chiitoitsu(dupKinds))
}

func TestKokushi(t *testing.T) {
	complete := mustHand(t,
		tile.M1, tile.M9, tile.P1, tile.P9, tile.S1, tile.S9,
		tile.East, tile.South, tile.West, tile.North,
		tile.Haku, tile.Hatsu, tile.Chun, tile.Chun,
	)
	require.Equal(t, shanten.Complete, shanten.Kokushi(complete))
	require.Equal(t, shanten.Complete, shanten.CalcKokushi(complete))

	tenpai := mustHand(t,
		tile.M1, tile.M9, tile.P1, tile.P9, tile.S1, tile.S9,
		tile.East, tile.South, tile.West, tile.North,
		tile.Haku, tile.Hatsu, tile.Chun,
	)
	require.Equal(t, 0, shanten.Kokushi(tenpai))
}

func TestOfTakesMinimumAcrossShapes(t *testing.T) {
	// A hand close to kokushi but far from a regular shape: Of must prefer
	// the kokushi branch.
	h := mustHand(t,
		tile.M1, tile.M9, tile.P1, tile.P9, tile.S1, tile.S9,
		tile.East, tile.South, tile.West, tile.North,
		tile.Haku, tile.Hatsu, tile.Chun,
	)
	require.Equal(t, 0, shanten.Of(h, 4))
}

func TestIsYaokyuuOnly(t *testing.T) {
	yaokyuu := mustHand(t, tile.M1, tile.M9, tile.East)
	require.True(t, shanten.IsYaokyuuOnly(yaokyuu))

	mixed := mustHand(t, tile.M1, tile.M5)
	require.False(t, shanten.IsYaokyuuOnly(mixed))
}
