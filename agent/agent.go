package agent

import (
	"time"

	"go.uber.org/zap"

	"teyuna/dto"
	"teyuna/entities"
)

// Agent 占一个座位的简单 AI 玩家。策略是固定的启发式：
// 能建神庙就建，其次圆屋，再次道路，手里资源太多就买卡，最后结束回合。
type Agent struct {
	client    *Client
	gameToken string
	interval  time.Duration
}

func New(client *Client, gameToken string) *Agent {
	return &Agent{
		client:    client,
		gameToken: gameToken,
		interval:  2 * time.Second,
	}
}

// Run 轮询对局状态直到结束。轮到自己时掷骰、行动、结束回合。
func (a *Agent) Run() error {
	for {
		state, err := a.client.GetGame(a.gameToken)
		if err != nil {
			return err
		}

		if state.Status == entities.StatusFinished {
			zap.L().Info("对局结束", zap.Int64("winner", state.WinnerID))
			return nil
		}
		if state.Status != entities.StatusActive || state.CurrentPlayerID != a.client.UserID {
			time.Sleep(a.interval)
			continue
		}

		if err := a.playTurn(state); err != nil {
			zap.L().Warn("回合执行失败", zap.Error(err))
			time.Sleep(a.interval)
		}
	}
}

func (a *Agent) playTurn(state *dto.GameStateResponse) error {
	roll, err := a.client.RollDice(a.gameToken)
	if err != nil {
		return err
	}
	zap.L().Info("掷骰", zap.Int("total", roll.Total))

	// 掷完重新拉状态，资源可能变了
	state, err = a.client.GetGame(a.gameToken)
	if err != nil {
		return err
	}
	if state.Status == entities.StatusFinished {
		return nil
	}

	a.buildPhase(state)
	return a.client.EndTurn(a.gameToken)
}

// buildPhase 按优先级尝试建造，失败就降级到下一档。
func (a *Agent) buildPhase(state *dto.GameStateResponse) {
	me := a.myPlayer(state)
	if me == nil {
		return
	}

	// 神庙：升级自己已有的圆屋
	if me.Resources.CanAfford(entities.ResourceSet{Gold: 3, Maize: 2}) {
		for _, v := range state.Board.Vertices {
			if v.Building == entities.BuildingBohio && v.PlayerID == a.client.UserID {
				if a.client.Build(a.gameToken, string(entities.BuildingTemplo), v.ID) == nil {
					zap.L().Info("建造神庙", zap.Int("vertex", v.ID))
					return
				}
			}
		}
	}

	// 圆屋：找空顶点
	if me.Resources.CanAfford(entities.ResourceSet{Stone: 1, Wood: 1, Cotton: 1, Maize: 1}) {
		for _, v := range state.Board.Vertices {
			if v.Building == "" {
				if a.client.Build(a.gameToken, string(entities.BuildingBohio), v.ID) == nil {
					zap.L().Info("建造圆屋", zap.Int("vertex", v.ID))
					return
				}
			}
		}
	}

	// 道路：找空边
	if me.Resources.CanAfford(entities.ResourceSet{Stone: 1, Wood: 1}) {
		for _, e := range state.Board.Edges {
			if !e.HasRoad {
				if a.client.Build(a.gameToken, string(entities.BuildingCamino), e.ID) == nil {
					zap.L().Info("建造道路", zap.Int("edge", e.ID))
					return
				}
			}
		}
	}

	// 手里资源太多就换一张发展卡
	total := me.Resources.Gold + me.Resources.Stone + me.Resources.Cotton +
		me.Resources.Maize + me.Resources.Wood
	if total > 7 && me.Resources.CanAfford(entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}) {
		if card, err := a.client.BuyCard(a.gameToken); err == nil {
			zap.L().Info("购买发展卡", zap.String("card", string(card.Card)))
		}
	}
}

func (a *Agent) myPlayer(state *dto.GameStateResponse) *dto.PlayerResponse {
	for i := range state.Players {
		if state.Players[i].UserID == a.client.UserID {
			return &state.Players[i]
		}
	}
	return nil
}
