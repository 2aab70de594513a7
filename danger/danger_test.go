package danger_test

import (
	"testing"

	"github.com/lamyinia/riichicore/danger"
	"github.com/lamyinia/riichicore/state"
	"github.com/lamyinia/riichicore/tile"
	"github.com/stretchr/testify/require"
)

func fullUnseen() [tile.NumKinds]uint8 {
	var u [tile.NumKinds]uint8
	for i := range u {
		u[i] = 4
	}
	return u
}

func TestPossibleWaitsIsCachedAndNonEmpty(t *testing.T) {
	a := danger.PossibleWaits()
	b := danger.PossibleWaits()
	require.NotEmpty(t, a)
	require.Same(t, &a[0], &b[0])
}

func TestCalculatePlayerDangerGenbutsuIsZeroWeight(t *testing.T) {
	var safe [tile.NumKinds]bool
	safe[tile.S5] = true

	d := danger.CalculatePlayerDanger(safe, nil, nil, fullUnseen(), nil)
	for _, w := range d.TileWaits(tile.S5) {
		require.True(t, w.Genbutsu)
		require.Zero(t, w.Weight)
	}
}

func TestCalculatePlayerDangerRyanmenOutweighsKanchanAllElseEqual(t *testing.T) {
	var safe [tile.NumKinds]bool
	d := danger.CalculatePlayerDanger(safe, nil, nil, fullUnseen(), nil)

	var ryanmen, kanchan *danger.Wait
	for i := range d.Waits {
		w := &d.Waits[i]
		if w.Shape.Kind == danger.Ryanmen && ryanmen == nil {
			ryanmen = w
		}
		if w.Shape.Kind == danger.Kanchan && kanchan == nil {
			kanchan = w
		}
	}
	require.NotNil(t, ryanmen)
	require.NotNil(t, kanchan)
	require.Greater(t, ryanmen.Weight, kanchan.Weight)
}

func TestCalculateWallDangerDoubleNoChanceWhenBothNeighborsDead(t *testing.T) {
	unseen := fullUnseen()
	// With every 3m and 6m (idx 2, 5) seen, neither ryanmen (23m, 56m) nor
	// the 35m kanchan can wait on 4m (index 3); only tanki/shanpon remain.
	unseen[2] = 0
	unseen[5] = 0
	result := danger.CalculateWallDanger(unseen)
	require.Equal(t, danger.WallDangerDoubleNoChance, result[3])
}

func TestCalculateWallDangerOneChance(t *testing.T) {
	unseen := fullUnseen()
	unseen[int(tile.M1)+1] = 1 // one copy of 2m left
	result := danger.CalculateWallDanger(unseen)
	require.Equal(t, danger.WallDangerOneChance, result[tile.M1])
}

func TestDetermineSafeTilesMarksOpponentDiscardGenbutsu(t *testing.T) {
	kawa := [4][]state.KawaItem{
		{},
		{{Tile: tile.P7, Tsumogiri: true}},
		{},
		{},
	}
	safe := danger.DetermineSafeTiles(kawa)
	require.True(t, safe[0][tile.P7])
}

func TestDetermineSafeTilesTedashiClearsTemporarySafety(t *testing.T) {
	kawa := [4][]state.KawaItem{
		{{Tile: tile.M1, Tsumogiri: true}},
		{{Tile: tile.M2, Tsumogiri: false}},
		{},
		{},
	}
	safe := danger.DetermineSafeTiles(kawa)
	// The caller's M1 is temporarily safe against every opponent. Opponent
	// 0 (seat 1) then discards tedashi, which clears its temporary safety;
	// opponent 1 (seat 2) keeps it. M9 was never discarded.
	require.False(t, safe[0][tile.M1])
	require.True(t, safe[1][tile.M1])
	require.False(t, safe[2][tile.M9])
}
