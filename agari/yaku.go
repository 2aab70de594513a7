package agari

import "github.com/lamyinia/riichicore/tile"

// ComputeYaku evaluates the spec §4.3e yaku table for decomp d under ctx,
// returning every regular yaku that applies together with its han value.
// Yakuman are not reported here; ComputeYakuman evaluates them separately
// and returns the multiplier and names.
func ComputeYaku(ctx Context, d Decomp) []YakuHan {
	melds := allMelds(ctx, d)
	closed := ctx.IsMenzen && len(ctx.OpenMelds) == 0

	var out []YakuHan
	add := func(name string, han int) {
		if han > 0 {
			out = append(out, YakuHan{Name: name, Han: han})
		}
	}

	if ctx.Riichi {
		if ctx.DoubleRiichi {
			add("double riichi", 2)
		} else {
			add("riichi", 1)
		}
	}
	if ctx.Ippatsu {
		add("ippatsu", 1)
	}
	if !ctx.IsRon {
		add("menzen tsumo", boolHan(closed, 1, 0))
	}
	if closed && IsPinfu(ctx, d) {
		add("pinfu", 1)
	}
	if allSimple(melds, d.PairTile) {
		add("tanyao", 1)
	}
	if closed && d.HasIipeikou && !d.HasRyanpeikou {
		add("iipeikou", 1)
	}
	if closed && d.HasRyanpeikou {
		add("ryanpeikou", 3)
	}
	for _, m := range melds {
		if m.Kind == Shuntsu {
			continue
		}
		if isYakuhaiTile(m.Tile, ctx.Bakaze, ctx.Jikaze) {
			add("yakuhai", 1)
		}
	}
	if closed && hasSanshokuDoujun(melds) {
		add("sanshoku doujun", 2)
	} else if hasSanshokuDoujun(melds) {
		add("sanshoku doujun", 1)
	}
	if hasIttsuu(melds) {
		add("ittsuu", boolHan(closed, 2, 1))
	}
	if isChanta(melds, d.PairTile) && !isHonroutou(melds, d.PairTile) {
		if isJunchan(melds, d.PairTile) {
			add("junchan", boolHan(closed, 3, 2))
		} else {
			add("chanta", boolHan(closed, 2, 1))
		}
	}
	if isHonitsu(melds, d.PairTile) {
		if isChinitsu(melds, d.PairTile) {
			add("chinitsu", boolHan(closed, 6, 5))
		} else {
			add("honitsu", boolHan(closed, 3, 2))
		}
	}
	if isToitoi(melds) {
		add("toitoi", 2)
	}
	if n := countConcealedTriplets(ctx, d); n == 3 {
		add("sanankou", 2)
	}
	if countKantsu(melds) == 3 {
		add("sankantsu", 2)
	}
	if hasSanshokuDoukou(melds) {
		add("sanshoku doukou", 2)
	}
	if hasShousangen(melds, d.PairTile) {
		add("shousangen", 2)
	}
	if isHonroutou(melds, d.PairTile) {
		add("honroutou", 2)
	}

	return out
}

func boolHan(b bool, ifTrue, ifFalse int) int {
	if b {
		return ifTrue
	}
	return ifFalse
}

func allSimple(melds []Meld, pair tile.Tile) bool {
	if pair.IsYaokyuu() {
		return false
	}
	for _, m := range melds {
		if m.Tile.IsYaokyuu() {
			return false
		}
		if m.Kind == Shuntsu && (m.Tile+2).IsYaokyuu() {
			return false
		}
	}
	return true
}

func isToitoi(melds []Meld) bool {
	for _, m := range melds {
		if m.Kind == Shuntsu {
			return false
		}
	}
	return true
}

func countKantsu(melds []Meld) int {
	n := 0
	for _, m := range melds {
		if m.Kind == Kantsu {
			n++
		}
	}
	return n
}

func countConcealedTriplets(ctx Context, d Decomp) int {
	n := len(d.Kotsu)
	if winningTileMakesMinkou(ctx, d) {
		n--
	}
	for _, m := range ctx.OpenMelds {
		if m.IsAnkan {
			n++
		}
	}
	return n
}

func hasSanshokuDoujun(melds []Meld) bool {
	bases := map[tile.Tile]map[tile.Suit]bool{}
	for _, m := range melds {
		if m.Kind != Shuntsu {
			continue
		}
		n := numInSuit(m.Tile)
		if bases[tile.Tile(n)] == nil {
			bases[tile.Tile(n)] = map[tile.Suit]bool{}
		}
		bases[tile.Tile(n)][m.Tile.SuitOf()] = true
	}
	for _, suits := range bases {
		if len(suits) == 3 {
			return true
		}
	}
	return false
}

func hasSanshokuDoukou(melds []Meld) bool {
	bases := map[tile.Tile]map[tile.Suit]bool{}
	for _, m := range melds {
		if m.Kind == Shuntsu {
			continue
		}
		n := numInSuit(m.Tile)
		if bases[tile.Tile(n)] == nil {
			bases[tile.Tile(n)] = map[tile.Suit]bool{}
		}
		bases[tile.Tile(n)][m.Tile.SuitOf()] = true
	}
	for _, suits := range bases {
		if len(suits) == 3 {
			return true
		}
	}
	return false
}

func hasIttsuu(melds []Meld) bool {
	for _, base := range []tile.Tile{tile.M1, tile.P1, tile.S1} {
		have := map[int]bool{}
		for _, m := range melds {
			if m.Kind == Shuntsu && m.Tile.SuitOf() == base.SuitOf() {
				have[numInSuit(m.Tile)] = true
			}
		}
		if have[1] && have[4] && have[7] {
			return true
		}
	}
	return false
}

func isChanta(melds []Meld, pair tile.Tile) bool {
	if !pair.IsYaokyuu() {
		return false
	}
	for _, m := range melds {
		switch m.Kind {
		case Shuntsu:
			if !m.Tile.IsYaokyuu() && !(m.Tile + 2).IsYaokyuu() {
				return false
			}
		default:
			if !m.Tile.IsYaokyuu() {
				return false
			}
		}
	}
	return true
}

func isJunchan(melds []Meld, pair tile.Tile) bool {
	if pair.IsHonor() {
		return false
	}
	for _, m := range melds {
		if m.Tile.IsHonor() {
			return false
		}
	}
	return true
}

func isHonitsu(melds []Meld, pair tile.Tile) bool {
	var suit tile.Suit = tile.SuitNone
	check := func(t tile.Tile) bool {
		if t.IsHonor() {
			return true
		}
		if suit == tile.SuitNone {
			suit = t.SuitOf()
			return true
		}
		return t.SuitOf() == suit
	}
	if !check(pair) {
		return false
	}
	for _, m := range melds {
		if !check(m.Tile) {
			return false
		}
	}
	return suit != tile.SuitNone
}

func isChinitsu(melds []Meld, pair tile.Tile) bool {
	if pair.IsHonor() {
		return false
	}
	for _, m := range melds {
		if m.Tile.IsHonor() {
			return false
		}
	}
	return true
}

func isHonroutou(melds []Meld, pair tile.Tile) bool {
	if !pair.IsYaokyuu() {
		return false
	}
	for _, m := range melds {
		if m.Kind == Shuntsu {
			return false
		}
		if !m.Tile.IsYaokyuu() {
			return false
		}
	}
	return true
}

func hasShousangen(melds []Meld, pair tile.Tile) bool {
	triplets := 0
	for _, m := range melds {
		if m.Kind != Shuntsu && m.Tile >= tile.Haku && m.Tile <= tile.Chun {
			triplets++
		}
	}
	return triplets == 2 && pair >= tile.Haku && pair <= tile.Chun
}

// ComputeYakuman evaluates the standalone yakuman conditions of §4.3e that
// are not expressed as Decomp-level flags (kokushi is handled earlier by
// the caller via the table-free short-circuit). Returns the multiplier
// (0 if none apply) and the names that contributed.
func ComputeYakuman(ctx Context, d Decomp, hand14 tile.Hand) (int, []string) {
	melds := allMelds(ctx, d)
	mult := 0
	var names []string
	add := func(name string, m int) {
		mult += m
		names = append(names, name)
	}

	if n := countConcealedTriplets(ctx, d); n == 4 {
		if classifyWait(d, ctx.WinningTile) == WaitTanki {
			add("suuankou tanki", 2)
		} else {
			add("suuankou", 1)
		}
	}
	triplets := 0
	for _, m := range melds {
		if m.Kind != Shuntsu && m.Tile >= tile.Haku && m.Tile <= tile.Chun {
			triplets++
		}
	}
	if triplets == 3 {
		add("daisangen", 1)
	}
	windTriplets, windPair := 0, false
	for _, m := range melds {
		if m.Kind != Shuntsu && m.Tile >= tile.East && m.Tile <= tile.North {
			windTriplets++
		}
	}
	if d.PairTile >= tile.East && d.PairTile <= tile.North {
		windPair = true
	}
	if windTriplets == 4 {
		add("daisuushii", 2)
	} else if windTriplets == 3 && windPair {
		add("shousuushii", 1)
	}
	allHonor := pair_IsHonor(d.PairTile)
	for _, m := range melds {
		if !m.Tile.IsHonor() {
			allHonor = false
			break
		}
	}
	if allHonor {
		add("tsuuiisou", 1)
	}
	allTerminal := d.PairTile.IsTerminal()
	for _, m := range melds {
		if m.Kind == Shuntsu || !m.Tile.IsTerminal() {
			allTerminal = false
			break
		}
	}
	if allTerminal {
		add("chinroutou", 1)
	}
	if isAllGreen(melds, d.PairTile) {
		add("ryuuiisou", 1)
	}
	if ctx.IsMenzen && len(ctx.OpenMelds) == 0 && IsChuurenShape(hand14) {
		if classifyWait(d, ctx.WinningTile) == WaitTanki || isChuurenNineWait(hand14, ctx.WinningTile) {
			add("chuuren poutou (9-wait)", 2)
		} else {
			add("chuuren poutou", 1)
		}
	}
	if countKantsu(melds) == 4 {
		add("suukantsu", 1)
	}
	if ctx.Tenhou {
		add("tenhou", 1)
	}
	if ctx.Chiihou {
		add("chiihou", 1)
	}
	return mult, names
}

func pair_IsHonor(t tile.Tile) bool { return t.IsHonor() }

func isAllGreen(melds []Meld, pair tile.Tile) bool {
	green := map[tile.Tile]bool{
		tile.S2: true, tile.S3: true, tile.S4: true, tile.S6: true, tile.S8: true, tile.Hatsu: true,
	}
	if !green[pair] {
		return false
	}
	for _, m := range melds {
		if m.Kind == Shuntsu {
			if m.Tile != tile.S2 {
				return false
			}
			continue
		}
		if !green[m.Tile] {
			return false
		}
	}
	return true
}

func isChuurenNineWait(hand14 tile.Hand, w tile.Tile) bool {
	d := w.Deaka()
	required := [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}
	return hand14[d] == required[numInSuit(d)-1]+1
}
