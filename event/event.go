// Package event implements the mjai-compatible, line-delimited JSON event
// protocol (spec §6.1): one JSON object per line, discriminated by a
// "type" field, describing everything that happens over the course of a
// game from start_game to end_game.
package event

import "github.com/lamyinia/riichicore/tile"

// Type is the wire-format discriminator carried in every event's "type"
// field.
type Type string

const (
	TypeStartGame     Type = "start_game"
	TypeStartKyoku    Type = "start_kyoku"
	TypeTsumo         Type = "tsumo"
	TypeDahai         Type = "dahai"
	TypeChi           Type = "chi"
	TypePon           Type = "pon"
	TypeDaiminkan     Type = "daiminkan"
	TypeKakan         Type = "kakan"
	TypeAnkan         Type = "ankan"
	TypeDora          Type = "dora"
	TypeReach         Type = "reach"
	TypeReachAccepted Type = "reach_accepted"
	TypeHora          Type = "hora"
	TypeRyukyoku      Type = "ryukyoku"
	TypeEndKyoku      Type = "end_kyoku"
	TypeEndGame       Type = "end_game"
)

// Event is implemented by every concrete event struct.
type Event interface {
	Kind() Type
}

type StartGame struct {
	Names [4]string `json:"names"`
	ID    *int      `json:"id,omitempty"`
}

func (StartGame) Kind() Type { return TypeStartGame }

type StartKyoku struct {
	Bakaze     tile.Tile        `json:"bakaze"`
	DoraMarker tile.Tile        `json:"dora_marker"`
	Kyoku      int              `json:"kyoku"`
	Honba      int              `json:"honba"`
	Kyotaku    int              `json:"kyotaku"`
	Oya        int              `json:"oya"`
	Scores     [4]int           `json:"scores"`
	Tehais     [4][13]tile.Tile `json:"tehais"`
}

func (StartKyoku) Kind() Type { return TypeStartKyoku }

type Tsumo struct {
	Actor int       `json:"actor"`
	Pai   tile.Tile `json:"pai"`
}

func (Tsumo) Kind() Type { return TypeTsumo }

type Dahai struct {
	Actor     int       `json:"actor"`
	Pai       tile.Tile `json:"pai"`
	Tsumogiri bool      `json:"tsumogiri"`
}

func (Dahai) Kind() Type { return TypeDahai }

type Chi struct {
	Actor    int          `json:"actor"`
	Target   int          `json:"target"`
	Pai      tile.Tile    `json:"pai"`
	Consumed [2]tile.Tile `json:"consumed"`
}

func (Chi) Kind() Type { return TypeChi }

type Pon struct {
	Actor    int          `json:"actor"`
	Target   int          `json:"target"`
	Pai      tile.Tile    `json:"pai"`
	Consumed [2]tile.Tile `json:"consumed"`
}

func (Pon) Kind() Type { return TypePon }

type Daiminkan struct {
	Actor    int          `json:"actor"`
	Target   int          `json:"target"`
	Pai      tile.Tile    `json:"pai"`
	Consumed [3]tile.Tile `json:"consumed"`
}

func (Daiminkan) Kind() Type { return TypeDaiminkan }

type Kakan struct {
	Actor    int          `json:"actor"`
	Pai      tile.Tile    `json:"pai"`
	Consumed [3]tile.Tile `json:"consumed"`
}

func (Kakan) Kind() Type { return TypeKakan }

type Ankan struct {
	Actor    int          `json:"actor"`
	Consumed [4]tile.Tile `json:"consumed"`
}

func (Ankan) Kind() Type { return TypeAnkan }

type Dora struct {
	DoraMarker tile.Tile `json:"dora_marker"`
}

func (Dora) Kind() Type { return TypeDora }

type Reach struct {
	Actor int `json:"actor"`
}

func (Reach) Kind() Type { return TypeReach }

type ReachAccepted struct {
	Actor int `json:"actor"`
}

func (ReachAccepted) Kind() Type { return TypeReachAccepted }

type Hora struct {
	Actor  int       `json:"actor"`
	Target int       `json:"target"`
	Pai    tile.Tile `json:"pai"`
}

func (Hora) Kind() Type { return TypeHora }

type Ryukyoku struct{}

func (Ryukyoku) Kind() Type { return TypeRyukyoku }

type EndKyoku struct{}

func (EndKyoku) Kind() Type { return TypeEndKyoku }

type EndGame struct{}

func (EndGame) Kind() Type { return TypeEndGame }
