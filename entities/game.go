package entities

// GameStatus 对局状态，只能单向前进：waiting → active → finished
type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished"
)

// LogEntry 对局日志里的一条结构化事件，追加后不再修改，
// 供观战端回放和审计使用。不同事件只填自己用到的字段。
type LogEntry struct {
	Type      string              `json:"type"`
	PlayerID  int64               `json:"player_id,omitempty"`
	Dice      []int               `json:"dice,omitempty"`
	Total     int                 `json:"total,omitempty"`
	Building  BuildingType        `json:"building,omitempty"`
	Position  int                 `json:"position,omitempty"`
	Card      DevelopmentCardType `json:"card,omitempty"`
	TurnOrder []int64             `json:"turn_order,omitempty"`
	NewTurn   int                 `json:"new_turn,omitempty"`
	WinnerID  int64               `json:"winner_id,omitempty"`
	Points    int                 `json:"points,omitempty"`
}

// 日志事件类型
const (
	LogGameStarted = "game_started"
	LogPlayerJoin  = "player_joined"
	LogDiceRoll    = "dice_roll"
	LogBuild       = "build"
	LogBuyCard     = "buy_development_card"
	LogEndTurn     = "end_turn"
	LogGameWon     = "game_won"
)
