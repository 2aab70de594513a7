package point_test

import (
	"testing"

	"github.com/lamyinia/riichicore/point"
	"github.com/stretchr/testify/require"
)

func TestBasePointsStandardFormula(t *testing.T) {
	// 30 fu 3 han: 30 * 2^5 = 960, under the mangan cap.
	require.Equal(t, 960, point.BasePoints(30, 3, false))
}

func TestBasePointsCapsAtMangan(t *testing.T) {
	require.Equal(t, 2000, point.BasePoints(40, 5, false))
	require.Equal(t, 3000, point.BasePoints(30, 6, false))
	require.Equal(t, 3000, point.BasePoints(40, 7, false))
	require.Equal(t, 4000, point.BasePoints(20, 8, false))
	require.Equal(t, 4000, point.BasePoints(20, 10, false))
	require.Equal(t, 6000, point.BasePoints(20, 11, false))
	require.Equal(t, 6000, point.BasePoints(20, 12, false))
}

func TestBasePointsKiriageMangan(t *testing.T) {
	require.Equal(t, 2000, point.BasePoints(40, 4, true))
	require.Equal(t, 2000, point.BasePoints(70, 3, true))
	// Without the toggle, these shapes keep their literal formula value
	// instead of being normalized down to the clean mangan base.
	require.Equal(t, 2560, point.BasePoints(40, 4, false))
	require.Equal(t, 2240, point.BasePoints(70, 3, false))
}

func TestNormalDealerRon(t *testing.T) {
	// 30 fu 4 han dealer ron: base = 30*64 = 1920, ron = 1920*6 = 11520 -> 11600.
	p := point.Normal(30, 4, true, false)
	require.Equal(t, 11600, p.Ron)
}

func TestNormalNonDealerTsumo(t *testing.T) {
	// 30 fu 2 han non-dealer: base = 30*16 = 480.
	// tsumo_oya = 480*2 = 960 -> 1000, tsumo_ko = 480 -> 500.
	p := point.Normal(30, 2, false, false)
	require.Equal(t, 1000, p.TsumoOya)
	require.Equal(t, 500, p.TsumoKo)
}

func TestMangan(t *testing.T) {
	dealer := point.Normal(40, 5, true, false)
	require.Equal(t, 12000, dealer.Ron)
	nonDealer := point.Normal(40, 5, false, false)
	require.Equal(t, 8000, nonDealer.Ron)
	require.Equal(t, 4000, nonDealer.TsumoOya)
	require.Equal(t, 2000, nonDealer.TsumoKo)
}

func TestYakumanDealer(t *testing.T) {
	p := point.Yakuman(1, true)
	require.Equal(t, 48000, p.Ron)
	require.Equal(t, 16000, p.TsumoOya)
	require.Equal(t, 16000, p.TsumoKo)
}

func TestYakumanDoubleNonDealer(t *testing.T) {
	p := point.Yakuman(2, false)
	require.Equal(t, 64000, p.Ron)
	require.Equal(t, 32000, p.TsumoOya)
	require.Equal(t, 16000, p.TsumoKo)
}

func TestAddHonba(t *testing.T) {
	p := point.Payments{Ron: 8000, TsumoOya: 4000, TsumoKo: 2000}
	ron := point.AddHonba(p, 2, true)
	require.Equal(t, 8600, ron.Ron)

	tsumo := point.AddHonba(p, 2, false)
	require.Equal(t, 4200, tsumo.TsumoOya)
	require.Equal(t, 2200, tsumo.TsumoKo)
}
