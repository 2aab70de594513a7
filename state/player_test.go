package state_test

import (
	"testing"

	"github.com/lamyinia/riichicore/event"
	"github.com/lamyinia/riichicore/state"
	"github.com/lamyinia/riichicore/tile"
	"github.com/stretchr/testify/require"
)

func tehai13(tiles ...tile.Tile) [13]tile.Tile {
	var out [13]tile.Tile
	for i := range out {
		out[i] = tile.Unknown
	}
	copy(out[:], tiles)
	return out
}

func startKyoku(t *testing.T, seat int, hand [13]tile.Tile) *state.PlayerState {
	t.Helper()
	s := state.New(seat)
	var tehais [4][13]tile.Tile
	for i := range tehais {
		tehais[i] = tehai13()
	}
	tehais[seat] = hand
	err := s.Apply(event.StartKyoku{
		Bakaze:     tile.East,
		DoraMarker: tile.M1,
		Kyoku:      1,
		Oya:        0,
		Scores:     [4]int{25000, 25000, 25000, 25000},
		Tehais:     tehais,
	})
	require.NoError(t, err)
	return s
}

func TestStartKyokuSetsJikaze(t *testing.T) {
	hand := tehai13(
		tile.M1, tile.M2, tile.M3, tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9, tile.P1, tile.P2, tile.P3, tile.P4,
	)
	s := startKyoku(t, 2, hand)
	require.Equal(t, tile.West, s.Jikaze)
	require.Equal(t, 13, s.Hand.Sum())
}

func TestTsumoSetsTsumoAction(t *testing.T) {
	hand := tehai13(
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.P5,
	)
	s := startKyoku(t, 0, hand)
	require.NoError(t, s.Apply(event.Tsumo{Actor: 0, Pai: tile.P5}))
	require.True(t, s.ActionMask.Has(state.ActionTsumo))
	require.True(t, s.ActionMask.Has(state.ActionDiscard))
}

func TestDiscardFuriten(t *testing.T) {
	// Tenpai on a tanki P5 wait. The player draws their own winning tile
	// but tsumogiri-discards it instead of declaring tsumo: the hand
	// reverts to the same tanki shape, now permanently furiten on P5.
	hand := tehai13(
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.P5,
	)
	s := startKyoku(t, 0, hand)
	require.True(t, s.Waits[tile.P5])
	require.NoError(t, s.Apply(event.Tsumo{Actor: 0, Pai: tile.P5}))
	require.True(t, s.ActionMask.Has(state.ActionTsumo))
	require.NoError(t, s.Apply(event.Dahai{Actor: 0, Pai: tile.P5, Tsumogiri: true}))
	require.True(t, s.Waits[tile.P5])
	require.True(t, s.AtFuriten)
}

func TestPonBreaksMenzenAndClearsIppatsu(t *testing.T) {
	hand := tehai13(
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.East, tile.East,
		tile.P1, tile.P2, tile.P3,
		tile.S7, tile.S8,
	)
	s := startKyoku(t, 0, hand)
	s.Ippatsu = true
	require.NoError(t, s.Apply(event.Pon{Actor: 0, Target: 2, Pai: tile.East, Consumed: [2]tile.Tile{tile.East, tile.East}}))
	require.False(t, s.Ippatsu)
	require.Len(t, s.Fuuro[0], 1)
	require.Equal(t, state.Pon, s.Fuuro[0][0].Kind)
}

func TestReachAcceptedSetsIppatsu(t *testing.T) {
	hand := tehai13(
		tile.M1, tile.M2, tile.M3,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.P5,
	)
	s := startKyoku(t, 1, hand)
	require.NoError(t, s.Apply(event.Reach{Actor: 1}))
	require.True(t, s.RiichiDeclared[1])
	require.NoError(t, s.Apply(event.ReachAccepted{Actor: 1}))
	require.True(t, s.RiichiAccepted[1])
	require.True(t, s.Ippatsu)
}

func TestAnkanActionOnQuad(t *testing.T) {
	hand := tehai13(
		tile.M1, tile.M1, tile.M1,
		tile.M4, tile.M5, tile.M6,
		tile.M7, tile.M8, tile.M9,
		tile.P1, tile.P2, tile.P3,
		tile.S5,
	)
	s := startKyoku(t, 0, hand)
	require.NoError(t, s.Apply(event.Tsumo{Actor: 0, Pai: tile.M1}))
	require.True(t, s.ActionMask.Has(state.ActionAnkan))
}
