package service

import (
	"time"

	"golang.org/x/exp/rand"

	"teyuna/dto"
	"teyuna/entities"
)

// Snapshot 导出一份完整状态的深拷贝，用于持久化。
// 拷贝出去的数据和引擎内部状态互不影响。
func (e *GameEngine) Snapshot() *dto.GameSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := &dto.GameSnapshot{
		Token:       e.Token,
		MaxPlayers:  e.MaxPlayers,
		Status:      e.Status,
		CurrentTurn: e.CurrentTurn,
		WinnerID:    e.WinnerID,
		Board:       copyBoard(e.Board),
	}

	snap.Players = make([]entities.Player, len(e.Players))
	for i, p := range e.Players {
		snap.Players[i] = *p
		snap.Players[i].DevelopmentCards = append([]entities.DevelopmentCardType(nil), p.DevelopmentCards...)
	}
	snap.DevelopmentDeck = append([]entities.DevelopmentCardType(nil), e.DevelopmentDeck...)
	snap.LastDiceRoll = append([]int(nil), e.LastDiceRoll...)
	snap.GameLog = append([]entities.LogEntry(nil), e.GameLog...)

	return snap
}

// StateResponse 导出公开状态：手牌只有数量，牌堆只有剩余张数。
func (e *GameEngine) StateResponse() *dto.GameStateResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	resp := &dto.GameStateResponse{
		Token:         e.Token,
		Status:        e.Status,
		MaxPlayers:    e.MaxPlayers,
		CurrentTurn:   e.CurrentTurn,
		WinnerID:      e.WinnerID,
		Board:         copyBoard(e.Board),
		LastDiceRoll:  append([]int(nil), e.LastDiceRoll...),
		DeckRemaining: len(e.DevelopmentDeck),
	}

	if e.Status == entities.StatusActive {
		if current := e.currentPlayer(); current != nil {
			resp.CurrentPlayerID = current.UserID
		}
	}

	for _, p := range e.Players {
		resp.Players = append(resp.Players, dto.PlayerResponse{
			UserID:                p.UserID,
			Username:              p.Username,
			Color:                 p.Color,
			TurnOrder:             p.TurnOrder,
			IsHost:                p.IsHost,
			VictoryPoints:         p.VictoryPoints,
			VictoryCards:          p.VictoryCards,
			WarriorCards:          p.WarriorCards,
			Resources:             p.Resources,
			DevelopmentCardsCount: len(p.DevelopmentCards),
			HasLongestPath:        p.HasLongestPath,
			HasLargestArmy:        p.HasLargestArmy,
		})
	}

	return resp
}

// IsParticipant 判断用户是否在这局游戏里。
func (e *GameEngine) IsParticipant(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playerByUserID(userID) != nil
}

// RestoreEngine 从持久化快照重建引擎，随机源取新种子。
func RestoreEngine(snap *dto.GameSnapshot) *GameEngine {
	e := &GameEngine{
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		Token:       snap.Token,
		MaxPlayers:  snap.MaxPlayers,
		Status:      snap.Status,
		CurrentTurn: snap.CurrentTurn,
		WinnerID:    snap.WinnerID,
		Board:       copyBoard(snap.Board),
		CreatedAt:   time.Now(),
	}
	for i := range snap.Players {
		p := snap.Players[i]
		p.DevelopmentCards = append([]entities.DevelopmentCardType(nil), p.DevelopmentCards...)
		e.Players = append(e.Players, &p)
	}
	e.DevelopmentDeck = append([]entities.DevelopmentCardType(nil), snap.DevelopmentDeck...)
	e.LastDiceRoll = append([]int(nil), snap.LastDiceRoll...)
	e.GameLog = append([]entities.LogEntry(nil), snap.GameLog...)
	return e
}

func copyBoard(b *entities.Board) *entities.Board {
	if b == nil {
		return nil
	}
	c := &entities.Board{ConquistadorPosition: b.ConquistadorPosition}
	c.Hexes = append([]entities.HexTile(nil), b.Hexes...)
	c.Vertices = append([]entities.Vertex(nil), b.Vertices...)
	c.Edges = append([]entities.Edge(nil), b.Edges...)
	c.Ports = append([]entities.Port(nil), b.Ports...)
	return c
}
