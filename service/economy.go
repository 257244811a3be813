package service

import "teyuna/entities"

// 建筑造价
var BuildingCosts = map[entities.BuildingType]entities.ResourceSet{
	entities.BuildingCamino: {Stone: 1, Wood: 1},
	entities.BuildingBohio:  {Stone: 1, Wood: 1, Cotton: 1, Maize: 1},
	entities.BuildingTemplo: {Gold: 3, Maize: 2},
}

// DevelopmentCardCost 发展卡价格
var DevelopmentCardCost = entities.ResourceSet{Gold: 1, Cotton: 1, Maize: 1}

// 发展卡牌堆构成：14 战士 + 2 丰饶 + 2 垄断 + 2 筑路 + 5 胜利点，共 25 张
var developmentCardCounts = []struct {
	card  entities.DevelopmentCardType
	count int
}{
	{entities.CardGuerreroNaoma, 14},
	{entities.CardAbundancia, 2},
	{entities.CardSabiduriaMama, 2},
	{entities.CardNuevosCaminos, 2},
	{entities.CardAvanceAncestral, 5},
}

// NewDevelopmentDeck 返回未洗的完整发展卡牌堆。
func NewDevelopmentDeck() []entities.DevelopmentCardType {
	var deck []entities.DevelopmentCardType
	for _, c := range developmentCardCounts {
		for i := 0; i < c.count; i++ {
			deck = append(deck, c.card)
		}
	}
	return deck
}

// 胜利所需总分
const VictoryPointsToWin = 10

// 成就判定阈值
const (
	LongestRoadMinimum = 5 // 最长道路至少 5 段
	LargestArmyMinimum = 3 // 最大军队至少 3 张战士卡
)
