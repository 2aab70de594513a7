package state

import "github.com/lamyinia/riichicore/tile"

// MeldKind distinguishes the five ways a group can be exposed or locked
// concealed (spec §3.3).
type MeldKind int

const (
	Chi MeldKind = iota
	Pon
	Daiminkan
	Kakan
	Ankan
)

// Meld is one exposed or concealed group belonging to a seat.
type Meld struct {
	Kind     MeldKind
	Tile     tile.Tile // chi's lowest tile; pon/kan's repeated tile
	Consumed []tile.Tile
	FromSeat int // relative seat the call tile came from; -1 for ankan; a kakan keeps its pon's seat
}

// KawaItem is one discard record (spec §3.4).
type KawaItem struct {
	Tile          tile.Tile
	Tsumogiri     bool
	RiichiDeclare bool
	CalledAway    bool // taken by another seat's chi/pon/kan
}
