package dto

import "teyuna/entities"

type CreateGameRequest struct {
	MaxPlayers int `json:"max_players" binding:"required,gte=3,lte=4"`
}

type CreateGameResponse struct {
	Token          string `json:"token"`
	Status         string `json:"status"`
	MaxPlayers     int    `json:"max_players"`
	CurrentPlayers int    `json:"current_players"`
}

type JoinGameRequest struct {
	Token string `json:"token" binding:"required"`
}

type BuildRequest struct {
	BuildingType entities.BuildingType `json:"building_type" binding:"required"`
	PositionID   *int                  `json:"position_id" binding:"required"`
}

type RollDiceResponse struct {
	Dice1 int `json:"dice1"`
	Dice2 int `json:"dice2"`
	Total int `json:"total"`
}

type BuyCardResponse struct {
	Card entities.DevelopmentCardType `json:"card"`
}

// PlayerResponse 对外的玩家视图，手牌只给数量不给内容。
type PlayerResponse struct {
	UserID                int64                `json:"user_id"`
	Username              string               `json:"username"`
	Color                 entities.PlayerColor `json:"color"`
	TurnOrder             int                  `json:"turn_order"`
	IsHost                bool                 `json:"is_host"`
	VictoryPoints         int                  `json:"victory_points"`
	VictoryCards          int                  `json:"victory_cards"`
	WarriorCards          int                  `json:"warrior_cards"`
	Resources             entities.ResourceSet `json:"resources"`
	DevelopmentCardsCount int                  `json:"development_cards_count"`
	HasLongestPath        bool                 `json:"has_longest_path"`
	HasLargestArmy        bool                 `json:"has_largest_army"`
}

// GameStateResponse 查询和广播用的完整公开状态。
type GameStateResponse struct {
	Token           string              `json:"token"`
	Status          entities.GameStatus `json:"status"`
	MaxPlayers      int                 `json:"max_players"`
	CurrentTurn     int                 `json:"current_turn"`
	CurrentPlayerID int64               `json:"current_player_id,omitempty"`
	WinnerID        int64               `json:"winner_id,omitempty"`
	Players         []PlayerResponse    `json:"players"`
	Board           *entities.Board     `json:"board"`
	LastDiceRoll    []int               `json:"last_dice_roll"`
	DeckRemaining   int                 `json:"deck_remaining"`
}

// GameSnapshot 持久化用的完整状态，含牌堆和日志，能据此原样恢复引擎。
type GameSnapshot struct {
	Token           string                         `json:"token"`
	MaxPlayers      int                            `json:"max_players"`
	Status          entities.GameStatus            `json:"status"`
	CurrentTurn     int                            `json:"current_turn"`
	WinnerID        int64                          `json:"winner_id"`
	Players         []entities.Player              `json:"players"`
	Board           *entities.Board                `json:"board"`
	DevelopmentDeck []entities.DevelopmentCardType `json:"development_deck"`
	LastDiceRoll    []int                          `json:"last_dice_roll"`
	GameLog         []entities.LogEntry            `json:"game_log"`
}
