// Package state implements the per-seat player state machine (spec §3.7,
// §4.4): applying the mjai event stream to maintain a hand, wait set,
// furiten status, and legal-action mask from one seat's point of view.
package state

import (
	"fmt"

	"github.com/lamyinia/riichicore/agari"
	"github.com/lamyinia/riichicore/event"
	"github.com/lamyinia/riichicore/shanten"
	"github.com/lamyinia/riichicore/tile"
)

// PlayerState is a single seat's view of an in-progress hand.
type PlayerState struct {
	Seat int
	Hand tile.Hand
	Aka  tile.Aka

	SelfDiscards [tile.NumKinds]bool
	Waits        [tile.NumKinds]bool
	Shanten      int

	AtFuriten     bool
	TempFuriten   bool
	RiichiFuriten bool

	TilesSeen [tile.NumKinds]uint8

	Fuuro [4][]Meld
	Kawa  [4][]KawaItem

	DoraIndicators []tile.Tile

	Bakaze tile.Tile
	Jikaze tile.Tile
	Kyoku  int
	Honba  int

	Kyotaku int
	Scores  [4]int
	Oya     int

	RiichiDeclared [4]bool
	RiichiAccepted [4]bool
	Ippatsu        bool
	Rinshan        bool
	Chankan        bool

	LastDraw      tile.Tile
	LastKawaTile  tile.Tile
	LastKawaActor int

	ActionMask  ActionMask
	ActionActor int

	// StrictAnkanAfterRiichi mirrors rules.Options.StrictAnkanAfterRiichi
	// (spec's Open Question on post-riichi ankan legality): when true, an
	// ankan must also preserve the number of decompositions behind every
	// wait, not just the wait set itself. Defaults to true (the
	// competitive-ruleset behavior); a caller wiring a rules.Options with
	// the toggle off should set this directly.
	StrictAnkanAfterRiichi bool

	started bool
}

// New returns a zero-valued PlayerState for the given absolute seat.
func New(seat int) *PlayerState {
	return &PlayerState{
		Seat:                   seat,
		LastDraw:               tile.Unknown,
		LastKawaTile:           tile.Unknown,
		StrictAnkanAfterRiichi: true,
	}
}

// isMenzen reports whether this seat's hand has no open (non-ankan) melds.
func (s *PlayerState) isMenzen() bool {
	for _, m := range s.Fuuro[s.Seat] {
		if m.Kind != Ankan {
			return false
		}
	}
	return true
}

func relativeSeat(from, to int) int { return (to - from + 4) % 4 }

// Apply mutates s in response to ev, per spec §4.4. It returns an error
// only for rule violations (category 1) and missing preconditions
// (category 2); a "no legal action" situation is not an error.
func (s *PlayerState) Apply(ev event.Event) error {
	switch e := ev.(type) {
	case event.StartGame:
		return s.applyStartGame(e)
	case event.StartKyoku:
		return s.applyStartKyoku(e)
	case event.Tsumo:
		return s.applyTsumo(e)
	case event.Dahai:
		return s.applyDahai(e)
	case event.Chi:
		return s.applyChi(e)
	case event.Pon:
		return s.applyPon(e)
	case event.Daiminkan:
		return s.applyDaiminkan(e)
	case event.Kakan:
		return s.applyKakan(e)
	case event.Ankan:
		return s.applyAnkan(e)
	case event.Dora:
		return s.applyDora(e)
	case event.Reach:
		return s.applyReach(e)
	case event.ReachAccepted:
		return s.applyReachAccepted(e)
	case event.Hora:
		return s.applyHora(e)
	case event.Ryukyoku:
		return s.applyRyukyoku()
	case event.EndKyoku:
		return s.applyEndKyoku()
	case event.EndGame:
		return nil
	default:
		return fmt.Errorf("state: unrecognized event %T", ev)
	}
}

func (s *PlayerState) applyStartGame(e event.StartGame) error {
	for i := range s.Scores {
		s.Scores[i] = 25000
	}
	return nil
}

func (s *PlayerState) applyStartKyoku(e event.StartKyoku) error {
	if s.Seat < 0 || s.Seat > 3 {
		return fmt.Errorf("state: invalid seat %d", s.Seat)
	}
	*s = PlayerState{Seat: s.Seat, LastDraw: tile.Unknown, LastKawaTile: tile.Unknown, LastKawaActor: -1, StrictAnkanAfterRiichi: s.StrictAnkanAfterRiichi}

	s.Hand = tile.Hand{}
	for _, t := range e.Tehais[s.Seat] {
		if t == tile.Unknown {
			continue
		}
		if err := s.Hand.Add(t, &s.Aka); err != nil {
			return fmt.Errorf("state: start_kyoku initial hand: %w", err)
		}
		s.observe(t)
	}
	s.observe(e.DoraMarker)
	s.DoraIndicators = []tile.Tile{e.DoraMarker}
	s.Bakaze = e.Bakaze
	s.Jikaze = tile.East + tile.Tile(relativeSeat(e.Oya, s.Seat))
	s.Kyoku = e.Kyoku
	s.Honba = e.Honba
	s.Kyotaku = e.Kyotaku
	s.Oya = e.Oya
	s.Scores = e.Scores
	s.started = true

	s.recomputeWaitsAndShanten()
	return nil
}

// observe records that one copy of t has entered the visible pool (own
// hand, a discard, a dora indicator, or a revealed meld tile).
func (s *PlayerState) observe(t tile.Tile) {
	if t == tile.Unknown {
		return
	}
	d := t.Deaka()
	if s.TilesSeen[d] < 4 {
		s.TilesSeen[d]++
	}
}

func (s *PlayerState) applyTsumo(e event.Tsumo) error {
	if !s.started {
		return fmt.Errorf("state: tsumo before start_kyoku")
	}
	if e.Actor != s.Seat {
		return nil
	}
	if s.Hand.Sum()%3 != 1 {
		return fmt.Errorf("state: tsumo with hand size %d, want 3n+1", s.Hand.Sum())
	}
	if err := s.Hand.Add(e.Pai, &s.Aka); err != nil {
		return fmt.Errorf("state: applying tsumo: %w", err)
	}
	s.observe(e.Pai)
	s.LastDraw = e.Pai
	s.TempFuriten = false
	s.recomputeWaitsAndShanten()
	s.recomputeTsumoActions(e.Pai)
	return nil
}

func (s *PlayerState) applyDahai(e event.Dahai) error {
	if !s.started {
		return fmt.Errorf("state: dahai before start_kyoku")
	}
	if e.Actor == s.Seat {
		if err := s.Hand.Remove(e.Pai, &s.Aka); err != nil {
			return fmt.Errorf("state: applying own dahai: %w", err)
		}
		s.SelfDiscards[e.Pai.Deaka()] = true
	} else {
		s.observe(e.Pai)
	}
	s.Kawa[e.Actor] = append(s.Kawa[e.Actor], KawaItem{Tile: e.Pai, Tsumogiri: e.Tsumogiri})
	s.LastKawaTile = e.Pai
	s.LastKawaActor = e.Actor
	if e.Actor == s.Seat {
		s.recomputeWaitsAndShanten()
	}
	s.recomputeFuriten()
	s.ActionMask = 0
	if e.Actor != s.Seat {
		s.recomputeReactionActions(e.Actor, e.Pai)
	}
	return nil
}

func (s *PlayerState) applyChi(e event.Chi) error {
	s.Ippatsu = false
	if e.Actor == s.Seat {
		for _, c := range e.Consumed {
			if err := s.Hand.Remove(c, &s.Aka); err != nil {
				return fmt.Errorf("state: applying own chi: %w", err)
			}
		}
		lowest := e.Pai.Deaka()
		for _, c := range e.Consumed {
			if c.Deaka() < lowest {
				lowest = c.Deaka()
			}
		}
		s.Fuuro[s.Seat] = append(s.Fuuro[s.Seat], Meld{Kind: Chi, Tile: lowest, Consumed: e.Consumed, FromSeat: relativeSeat(s.Seat, e.Target)})
	} else {
		s.observe(e.Pai)
	}
	s.markCalledAway(e.Target, e.Pai)
	s.recomputeWaitsAndShanten()
	return nil
}

func (s *PlayerState) applyPon(e event.Pon) error {
	s.Ippatsu = false
	if e.Actor == s.Seat {
		for _, c := range e.Consumed {
			if err := s.Hand.Remove(c, &s.Aka); err != nil {
				return fmt.Errorf("state: applying own pon: %w", err)
			}
		}
		s.Fuuro[s.Seat] = append(s.Fuuro[s.Seat], Meld{Kind: Pon, Tile: e.Pai.Deaka(), Consumed: e.Consumed, FromSeat: relativeSeat(s.Seat, e.Target)})
	} else {
		s.observe(e.Pai)
	}
	s.markCalledAway(e.Target, e.Pai)
	s.recomputeWaitsAndShanten()
	return nil
}

func (s *PlayerState) applyDaiminkan(e event.Daiminkan) error {
	s.Ippatsu = false
	if e.Actor == s.Seat {
		for _, c := range e.Consumed {
			if err := s.Hand.Remove(c, &s.Aka); err != nil {
				return fmt.Errorf("state: applying own daiminkan: %w", err)
			}
		}
		s.Fuuro[s.Seat] = append(s.Fuuro[s.Seat], Meld{Kind: Daiminkan, Tile: e.Pai.Deaka(), Consumed: e.Consumed, FromSeat: relativeSeat(s.Seat, e.Target)})
	} else {
		s.observe(e.Pai)
	}
	s.markCalledAway(e.Target, e.Pai)
	s.Rinshan = true
	s.recomputeWaitsAndShanten()
	return nil
}

func (s *PlayerState) applyKakan(e event.Kakan) error {
	s.Ippatsu = false
	if e.Actor == s.Seat {
		if err := s.Hand.Remove(e.Pai, &s.Aka); err != nil {
			return fmt.Errorf("state: applying own kakan: %w", err)
		}
		for i, m := range s.Fuuro[s.Seat] {
			if m.Kind == Pon && m.Tile == e.Pai.Deaka() {
				s.Fuuro[s.Seat][i] = Meld{Kind: Kakan, Tile: e.Pai.Deaka(), Consumed: e.Consumed, FromSeat: m.FromSeat}
				break
			}
		}
	} else {
		s.observe(e.Pai)
	}
	s.Chankan = true
	s.Rinshan = true
	s.recomputeWaitsAndShanten()
	return nil
}

func (s *PlayerState) applyAnkan(e event.Ankan) error {
	s.Ippatsu = false
	if e.Actor == s.Seat {
		for _, c := range e.Consumed {
			if err := s.Hand.Remove(c, &s.Aka); err != nil {
				return fmt.Errorf("state: applying own ankan: %w", err)
			}
		}
		s.Fuuro[s.Seat] = append(s.Fuuro[s.Seat], Meld{Kind: Ankan, Tile: e.Consumed[0].Deaka(), Consumed: e.Consumed, FromSeat: -1})
	} else {
		for _, c := range e.Consumed {
			s.observe(c)
		}
	}
	s.Rinshan = true
	s.recomputeWaitsAndShanten()
	return nil
}

func (s *PlayerState) applyDora(e event.Dora) error {
	s.observe(e.DoraMarker)
	s.DoraIndicators = append(s.DoraIndicators, e.DoraMarker)
	return nil
}

func (s *PlayerState) applyReach(e event.Reach) error {
	s.RiichiDeclared[e.Actor] = true
	return nil
}

func (s *PlayerState) applyReachAccepted(e event.ReachAccepted) error {
	s.RiichiAccepted[e.Actor] = true
	if e.Actor == s.Seat {
		s.Ippatsu = true
	}
	return nil
}

func (s *PlayerState) applyHora(e event.Hora) error {
	if e.Actor != s.Seat && s.waitsContain(e.Pai) {
		s.TempFuriten = true
		if s.RiichiAccepted[s.Seat] {
			s.RiichiFuriten = true
		}
	}
	return nil
}

func (s *PlayerState) applyRyukyoku() error {
	s.ActionMask = 0
	return nil
}

func (s *PlayerState) applyEndKyoku() error {
	s.Ippatsu = false
	s.Rinshan = false
	s.Chankan = false
	s.TempFuriten = false
	s.ActionMask = 0
	return nil
}

func (s *PlayerState) markCalledAway(target int, pai tile.Tile) {
	river := s.Kawa[target]
	if len(river) == 0 {
		return
	}
	last := &river[len(river)-1]
	if last.Tile.Deaka() == pai.Deaka() {
		last.CalledAway = true
	}
}

func (s *PlayerState) waitsContain(t tile.Tile) bool {
	return s.Waits[t.Deaka()]
}

// recomputeWaitsAndShanten recomputes Shanten and, for a 3n+1 hand, Waits.
// At 3n+2 (just after a draw), Shanten is reported as the best shanten
// reachable by a hypothetical discard (spec §4.4).
func (s *PlayerState) recomputeWaitsAndShanten() {
	for i := range s.Waits {
		s.Waits[i] = false
	}
	k := 4 - len(s.Fuuro[s.Seat])
	switch s.Hand.Sum() % 3 {
	case 1:
		s.Shanten = shanten.Of(s.Hand, k)
		if s.Shanten != 0 {
			return
		}
		for i := 0; i < tile.NumKinds; i++ {
			if s.Hand[i] >= 4 {
				continue
			}
			trial := s.Hand
			trial[i]++
			if shanten.Of(trial, k) < s.Shanten {
				s.Waits[i] = true
			}
		}
	case 2:
		best := 99
		for i := 0; i < tile.NumKinds; i++ {
			if s.Hand[i] == 0 {
				continue
			}
			trial := s.Hand
			trial[i]--
			if sh := shanten.Of(trial, k); sh < best {
				best = sh
			}
		}
		s.Shanten = best
	}
}

func nonAnkanMelds(melds []Meld) []Meld {
	out := make([]Meld, 0, len(melds))
	for _, m := range melds {
		if m.Kind != Ankan {
			out = append(out, m)
		}
	}
	return out
}

func (s *PlayerState) recomputeFuriten() {
	discardFuriten := false
	for i := 0; i < tile.NumKinds; i++ {
		if s.Waits[i] && s.SelfDiscards[i] {
			discardFuriten = true
			break
		}
	}
	s.AtFuriten = discardFuriten || s.TempFuriten || s.RiichiFuriten
}

func (s *PlayerState) recomputeTsumoActions(drawn tile.Tile) {
	mask := ActionDiscard
	if shanten.Of(s.Hand, 4-len(s.Fuuro[s.Seat])) == shanten.Complete {
		mask |= ActionTsumo
	}
	tilesLeft := 4*34 - int(sumSeen(s.TilesSeen))
	if s.isMenzen() && tilesLeft >= 4 && s.ownScore() >= 1000 && s.Shanten <= 1 {
		mask |= ActionRiichi
	}
	d := drawn.Deaka()
	if s.Hand[d] == 4 && s.canAnkan(d) {
		mask |= ActionAnkan
	}
	for i := 0; i < tile.NumKinds; i++ {
		if s.Hand[i] != 1 {
			continue
		}
		for _, m := range s.Fuuro[s.Seat] {
			if m.Kind == Pon && m.Tile == tile.Tile(i) {
				mask |= ActionKakan
			}
		}
	}
	s.ActionMask = mask
	s.ActionActor = s.Seat
}

func (s *PlayerState) canAnkan(t tile.Tile) bool {
	if !s.RiichiAccepted[s.Seat] {
		return true
	}
	preDraw := s.Hand
	aka := s.Aka
	_ = preDraw.Remove(s.LastDraw, &aka)
	ok, err := agari.CanAnkanAfterRiichi(preDraw, s.LastDraw, t, s.StrictAnkanAfterRiichi)
	return err == nil && ok
}

func (s *PlayerState) recomputeReactionActions(discardActor int, pai tile.Tile) {
	if discardActor == s.Seat {
		return
	}
	var mask ActionMask
	if s.waitsContain(pai) && !s.AtFuriten {
		mask |= ActionRon
	}
	d := pai.Deaka()
	if s.Hand[d] >= 2 {
		mask |= ActionPon
	}
	if s.Hand[d] >= 3 {
		mask |= ActionDaiminkan
	}
	if relativeSeat(discardActor, s.Seat) == 1 && !d.IsHonor() {
		n := int(d.AsIndex()) % 9
		suitBase := d - tile.Tile(n)
		if n >= 2 && s.Hand[suitBase+tile.Tile(n-2)] > 0 && s.Hand[suitBase+tile.Tile(n-1)] > 0 {
			mask |= ActionChiHigh
		}
		if n >= 1 && n <= 7 && s.Hand[suitBase+tile.Tile(n-1)] > 0 && s.Hand[suitBase+tile.Tile(n+1)] > 0 {
			mask |= ActionChiMid
		}
		if n <= 6 && s.Hand[suitBase+tile.Tile(n+1)] > 0 && s.Hand[suitBase+tile.Tile(n+2)] > 0 {
			mask |= ActionChiLow
		}
	}
	if mask != 0 {
		s.ActionMask |= mask
		s.ActionActor = discardActor
	}
}

func (s *PlayerState) ownScore() int {
	if s.Seat < 0 || s.Seat > 3 {
		return 0
	}
	return s.Scores[s.Seat]
}

func sumSeen(seen [tile.NumKinds]uint8) int {
	n := 0
	for _, c := range seen {
		n += int(c)
	}
	return n
}
