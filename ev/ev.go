// Package ev implements the self-draw discard/draw expected-value engine
// (spec §4.5): given a hand and how many unseen copies of every tile kind
// remain, it estimates, for each legal discard (or, for a hand waiting on
// its next draw, for the hand as a whole), the probability of reaching
// tenpai, the probability of winning by self-draw within the remaining
// turns, and the resulting expected point value.
//
// Ported from Mortal's libriichi/src/algo/sp/calc.rs. Mortal's version
// threads the remaining-draw-count through a const generic (MAX_TSUMO) and
// works from precomputed draw-probability tables; this port uses no such
// tables. It recurses one draw at a time: analyzeDraw weighs every unseen
// kind by its share of the remaining unseen tiles (drawing without
// replacement) and follows the best discard after it, memoizing each step
// on the hand, the unseen counts and the number of draws left.
package ev

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lamyinia/riichicore/agari"
	"github.com/lamyinia/riichicore/internal/xlog"
	"github.com/lamyinia/riichicore/point"
	"github.com/lamyinia/riichicore/rules"
	"github.com/lamyinia/riichicore/shanten"
	"github.com/lamyinia/riichicore/tile"
)

// Options mirrors the per-hand context the original SPCalculator carries:
// meld/seat information needed to score a win, plus the toggles that
// change what the engine optimizes for.
type Options struct {
	K               int // melds still needed; 4 minus locked (non-ankan... and ankan) melds
	OpenMelds       []agari.Meld
	IsMenzen        bool
	Bakaze          tile.Tile
	Jikaze          tile.Tile
	DoraIndicators  []tile.Tile
	NumDorasInFuuro int
	IsDealer        bool
	Honba           int
	InRiichi        bool
	CalcHaitei      bool
	MaximizeWinProb bool
}

// State is the hand-shape input to Calc: the concealed hand plus how many
// unseen copies of every kind remain in the wall/opponents' hands.
type State struct {
	Hand      tile.Hand
	Aka       tile.Aka
	TilesLeft [tile.NumKinds]int
}

func (s State) wallLeft() int {
	n := 0
	for _, c := range s.TilesLeft {
		n += c
	}
	return n
}

func (s State) key(tsumosLeft int) string {
	var b strings.Builder
	for _, c := range s.Hand {
		b.WriteByte('0' + c)
	}
	b.WriteByte('|')
	for _, c := range s.TilesLeft {
		b.WriteByte('0' + byte(c))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(tsumosLeft))
	return b.String()
}

// Values holds, for each of the tsumosLeft remaining self-draws, the
// marginal probability/value mass attributable to reaching tenpai, winning
// by self-draw, or collecting points at exactly that draw (not before).
// Summing an array end to end gives the overall probability/value across
// all tsumosLeft draws.
type Values struct {
	TenpaiProbs []float64
	WinProbs    []float64
	ExpValues   []float64
}

func newValues(n int) Values {
	return Values{
		TenpaiProbs: make([]float64, n),
		WinProbs:    make([]float64, n),
		ExpValues:   make([]float64, n),
	}
}

// add accumulates p*other into v, shifting other's timeline forward by one
// step (other describes what happens starting from the NEXT draw).
func (v *Values) add(p float64, other Values) {
	for i := 1; i < len(v.TenpaiProbs) && i-1 < len(other.TenpaiProbs); i++ {
		v.TenpaiProbs[i] += p * other.TenpaiProbs[i-1]
		v.WinProbs[i] += p * other.WinProbs[i-1]
		v.ExpValues[i] += p * other.ExpValues[i-1]
	}
}

// Candidate is one scored discard (or draw) option.
type Candidate struct {
	Tile           tile.Tile
	Values         Values
	NotShantenDown bool
}

// Calculator runs Calc against a fixed Options/rule configuration, caching
// intermediate results across calls the way Mortal's SPCalculatorState
// reuses its discard/draw caches within one top-level calc invocation.
type Calculator struct {
	opts  Options
	rules rules.Options
	log   *xlog.Logger

	mu           sync.Mutex
	discardCache map[string][]Candidate
	drawCache    map[string]Values
}

// NewCalculator builds a Calculator for a fixed hand context and rule set.
func NewCalculator(opts Options, ruleOpts rules.Options) *Calculator {
	return &Calculator{
		opts:         opts,
		rules:        ruleOpts,
		discardCache: map[string][]Candidate{},
		drawCache:    map[string]Values{},
	}
}

// WithLogger attaches a logger that Calc uses to trace each top-level
// query under its own correlation ID, returning c for chaining.
func (c *Calculator) WithLogger(log *xlog.Logger) *Calculator {
	c.log = log
	return c
}

// Calc is the top-level entry point. canDiscard selects whether state.Hand
// is a 3n+2 hand (a discard decision) or a 3n+1 hand (mid-draw, used when
// recursing or when asking "what if I draw X"). tsumosLeft must be >= 1
// and curShanten must be >= 0 (an already-complete hand has nothing to
// discard toward).
func (c *Calculator) Calc(state State, canDiscard bool, tsumosLeft, curShanten int) ([]Candidate, error) {
	queryID := uuid.New()
	var log *xlog.Logger
	if c.log != nil {
		log = c.log.With("query_id", queryID.String())
		log.Debug("ev query start", "tsumos_left", tsumosLeft, "shanten", curShanten, "can_discard", canDiscard)
	}

	if curShanten < 0 {
		return nil, fmt.Errorf("ev: can't calculate an agari hand")
	}
	if tsumosLeft < 1 {
		return nil, fmt.Errorf("ev: need at least one more self-draw")
	}

	if curShanten > c.rules.ShantenThreshold {
		out := c.degenerate(state, canDiscard)
		if log != nil {
			log.Debug("ev query degenerate", "candidates", len(out))
		}
		return out, nil
	}

	var out []Candidate
	if canDiscard {
		out = c.analyzeDiscard(state, tsumosLeft)
	} else {
		v := c.analyzeDraw(state, tsumosLeft)
		out = []Candidate{{Values: v}}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c.opts.MaximizeWinProb {
			return sumOf(out[i].Values.WinProbs) > sumOf(out[j].Values.WinProbs)
		}
		return sumOf(out[i].Values.ExpValues) > sumOf(out[j].Values.ExpValues)
	})
	if log != nil {
		log.Debug("ev query done", "candidates", len(out))
	}
	return out, nil
}

// sumOf totals a marginal-per-draw distribution (Values' arrays hold, at
// index i, the probability/value mass attributable to the event happening
// exactly i draws from now) into the overall probability/value across all
// tsumosLeft draws.
func sumOf(v []float64) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}

// degenerate handles spec §4.5's far-from-tenpai shortcut: beyond the
// shanten threshold the engine stops computing probabilities and instead
// ranks discards purely by ukeire (how many unseen tiles would reduce
// shanten after the discard), which
// is cheap and a reasonable proxy this far from tenpai.
func (c *Calculator) degenerate(state State, canDiscard bool) []Candidate {
	if !canDiscard {
		return []Candidate{{NotShantenDown: true}}
	}
	var out []Candidate
	base := shanten.Of(state.Hand, c.opts.K)
	for k := 0; k < tile.NumKinds; k++ {
		if state.Hand[k] == 0 {
			continue
		}
		after := state.Hand
		after[k]--
		ukeire := 0
		for w := 0; w < tile.NumKinds; w++ {
			if after[w] >= 4 {
				continue
			}
			trial := after
			trial[w]++
			if shanten.Of(trial, c.opts.K) < shanten.Of(after, c.opts.K) {
				ukeire += state.TilesLeft[w]
			}
		}
		out = append(out, Candidate{
			Tile:           tile.Tile(k),
			NotShantenDown: shanten.Of(after, c.opts.K) <= base,
			Values:         Values{ExpValues: []float64{float64(ukeire)}},
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sumOf(out[i].Values.ExpValues) > sumOf(out[j].Values.ExpValues)
	})
	return out
}

// analyzeDiscard scores every legal discard from a 3n+2 hand by recursing
// into analyzeDraw on the resulting 3n+1 hand.
func (c *Calculator) analyzeDiscard(state State, tsumosLeft int) []Candidate {
	key := state.key(tsumosLeft)
	c.mu.Lock()
	if cached, ok := c.discardCache[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	baseShanten := shanten.Of(state.Hand, c.opts.K)

	var out []Candidate
	for k := 0; k < tile.NumKinds; k++ {
		if state.Hand[k] == 0 {
			continue
		}
		after := state
		after.Hand[k]--
		sh := shanten.Of(after.Hand, c.opts.K)
		if sh > c.rules.ShantenThreshold {
			out = append(out, Candidate{Tile: tile.Tile(k), NotShantenDown: sh <= baseShanten, Values: newValues(tsumosLeft)})
			continue
		}
		v := c.analyzeDraw(after, tsumosLeft)
		out = append(out, Candidate{Tile: tile.Tile(k), NotShantenDown: sh <= baseShanten, Values: v})
	}

	c.mu.Lock()
	c.discardCache[key] = out
	c.mu.Unlock()
	return out
}

// analyzeDraw computes the Values for holding a 3n+1 hand with tsumosLeft
// self-draws remaining: for every unseen kind, the probability that kind
// is the very next draw, combined with the best response to having drawn
// it (either an immediate win, or the best discard going forward).
func (c *Calculator) analyzeDraw(state State, tsumosLeft int) Values {
	key := state.key(tsumosLeft)
	c.mu.Lock()
	if cached, ok := c.drawCache[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	v := newValues(tsumosLeft)
	wallLeft := state.wallLeft()
	if wallLeft == 0 {
		c.mu.Lock()
		c.drawCache[key] = v
		c.mu.Unlock()
		return v
	}

	for k := 0; k < tile.NumKinds; k++ {
		count := state.TilesLeft[k]
		if count == 0 || state.Hand[k] >= 4 {
			continue
		}
		pDraw := float64(count) / float64(wallLeft)

		next := state
		next.Hand[tile.Tile(k).Deaka()]++
		next.TilesLeft[k]--

		if shanten.Of(next.Hand, c.opts.K) == shanten.Complete {
			isHaitei := c.opts.CalcHaitei && tsumosLeft == 1 && wallLeft == count
			ev := c.scoreWin(next.Hand, tile.Tile(k), isHaitei)
			v.WinProbs[0] += pDraw
			v.ExpValues[0] += pDraw * ev
			v.TenpaiProbs[0] += pDraw
			continue
		}

		if tsumosLeft == 1 {
			continue
		}
		discardCandidates := c.analyzeDiscard(next, tsumosLeft-1)
		best := bestCandidate(discardCandidates, c.opts.MaximizeWinProb)
		if best != nil {
			afterBestDiscard := next.Hand
			afterBestDiscard[best.Tile]--
			sub := best.Values
			if shanten.Of(afterBestDiscard, c.opts.K) == 0 {
				v.TenpaiProbs[0] += pDraw
				// Tenpai is reached on this draw; later draws must not count it again.
				sub.TenpaiProbs = make([]float64, len(best.Values.TenpaiProbs))
			}
			v.add(pDraw, sub)
		}
	}

	c.mu.Lock()
	c.drawCache[key] = v
	c.mu.Unlock()
	return v
}

func bestCandidate(cands []Candidate, maximizeWinProb bool) *Candidate {
	if len(cands) == 0 {
		return nil
	}
	best := &cands[0]
	bestScore := scoreOf(*best, maximizeWinProb)
	for i := 1; i < len(cands); i++ {
		if s := scoreOf(cands[i], maximizeWinProb); s > bestScore {
			best = &cands[i]
			bestScore = s
		}
	}
	return best
}

func scoreOf(c Candidate, maximizeWinProb bool) float64 {
	if maximizeWinProb {
		return sumOf(c.Values.WinProbs)
	}
	return sumOf(c.Values.ExpValues)
}

// scoreWin computes the tsumo point value of the completed hand14. Riichi
// and menzen tsumo reach agari.Score through the context flags; the
// external han passed alongside is the dora counted from the indicators in
// hand14, c.opts.NumDorasInFuuro, and haitei. Red fives and ura-dora are
// not counted. Returns the non-dealer/dealer-combined total the winner
// collects.
//
// hand14 is the caller's concealed hand only; open melds reach the yaku
// checks through c.opts.OpenMelds, and their dora only through
// NumDorasInFuuro.
func (c *Calculator) scoreWin(hand14 tile.Hand, winningTile tile.Tile, isHaitei bool) float64 {
	ctx := agari.Context{
		OpenMelds:   c.opts.OpenMelds,
		WinningTile: winningTile,
		IsRon:       false,
		Bakaze:      c.opts.Bakaze,
		Jikaze:      c.opts.Jikaze,
		IsMenzen:    c.opts.IsMenzen,
		Riichi:      c.opts.InRiichi,
	}

	externalHan := 0
	for _, ind := range c.opts.DoraIndicators {
		dora := ind.Next()
		externalHan += int(hand14[dora])
	}
	externalHan += c.opts.NumDorasInFuuro
	if isHaitei {
		externalHan++
	}

	result, err := agari.Score(ctx, hand14, c.opts.K, hand14, externalHan)
	if err != nil || !result.Ok() {
		return 0
	}

	var payments point.Payments
	if result.IsYakuman() {
		payments = point.Yakuman(result.Yakuman, c.opts.IsDealer)
	} else {
		payments = point.Normal(result.Fu, result.Han, c.opts.IsDealer, c.rules.KiriageMangan)
	}
	payments = point.AddHonba(payments, c.opts.Honba, false)

	if c.opts.IsDealer {
		return float64(3 * payments.TsumoOya)
	}
	return float64(2*payments.TsumoKo + payments.TsumoOya)
}
