package tile_test

import (
	"testing"

	"github.com/lamyinia/riichicore/tile"
	"github.com/stretchr/testify/require"
)

func TestDeakaAkaizeRoundTrip(t *testing.T) {
	require.Equal(t, tile.M5, tile.Aka5m.Deaka())
	require.Equal(t, tile.P5, tile.Aka5p.Deaka())
	require.Equal(t, tile.S5, tile.Aka5s.Deaka())
	require.Equal(t, tile.Aka5m, tile.M5.Akaize())
	// Non-five tiles are fixed points under both operations.
	require.Equal(t, tile.East, tile.East.Deaka())
	require.Equal(t, tile.East, tile.East.Akaize())
}

func TestIsHonorIsYaokyuu(t *testing.T) {
	require.True(t, tile.East.IsHonor())
	require.True(t, tile.Chun.IsHonor())
	require.False(t, tile.M1.IsHonor())
	require.True(t, tile.M1.IsYaokyuu())
	require.True(t, tile.S9.IsYaokyuu())
	require.False(t, tile.M5.IsYaokyuu())
	require.True(t, tile.East.IsYaokyuu())
}

func TestNextPrevNumberWrap(t *testing.T) {
	require.Equal(t, tile.M1, tile.M9.Next())
	require.Equal(t, tile.M9, tile.M1.Prev())
	require.Equal(t, tile.P2, tile.P1.Next())
}

func TestNextPrevWindWrap(t *testing.T) {
	require.Equal(t, tile.South, tile.East.Next())
	require.Equal(t, tile.East, tile.North.Next())
	require.Equal(t, tile.North, tile.East.Prev())
}

func TestNextPrevDragonWrap(t *testing.T) {
	require.Equal(t, tile.Hatsu, tile.Haku.Next())
	require.Equal(t, tile.Haku, tile.Chun.Next())
	require.Equal(t, tile.Chun, tile.Haku.Prev())
}

func TestTextRoundTrip(t *testing.T) {
	cases := []tile.Tile{tile.M1, tile.M9, tile.P5, tile.S5, tile.East, tile.Chun, tile.Aka5m, tile.Aka5p, tile.Aka5s}
	for _, tt := range cases {
		b, err := tt.MarshalText()
		require.NoError(t, err)
		var got tile.Tile
		require.NoError(t, got.UnmarshalText(b))
		require.Equal(t, tt, got, "round trip for %v via %q", tt, b)
	}
}

func TestParseUnknown(t *testing.T) {
	got, err := tile.Parse("?")
	require.NoError(t, err)
	require.Equal(t, tile.Unknown, got)
}

func TestParseInvalid(t *testing.T) {
	_, err := tile.Parse("Xq")
	require.Error(t, err)
}

func TestHandAddRemoveAka(t *testing.T) {
	var h tile.Hand
	var aka tile.Aka
	require.NoError(t, h.Add(tile.Aka5s, &aka))
	require.True(t, aka[2])
	require.Equal(t, uint8(1), h[tile.S5])

	// A second red five of the same suit must fail.
	require.Error(t, h.Add(tile.Aka5s, &aka))

	require.NoError(t, h.Remove(tile.S5, &aka))
	require.False(t, aka[2])
	require.Equal(t, uint8(0), h[tile.S5])
}

func TestHandBucketOverflow(t *testing.T) {
	var h tile.Hand
	var aka tile.Aka
	for i := 0; i < 4; i++ {
		require.NoError(t, h.Add(tile.M1, &aka))
	}
	require.Error(t, h.Add(tile.M1, &aka))
}
