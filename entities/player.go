package entities

// PlayerColor 玩家颜色，取自 Tayrona 文化元素
type PlayerColor string

const (
	ColorGold       PlayerColor = "gold"
	ColorTerracotta PlayerColor = "terracotta"
	ColorJade       PlayerColor = "jade"
	ColorObsidian   PlayerColor = "obsidian"
)

// AvailableColors 按加入顺序分配的固定调色板
var AvailableColors = []PlayerColor{ColorGold, ColorTerracotta, ColorJade, ColorObsidian}

// ResourceSet 五种资源的计数。资源种类在入口处校验一次，
// 之后全部走显式字段，不做任何按名字的动态访问。
type ResourceSet struct {
	Gold   int `json:"gold"`
	Stone  int `json:"stone"`
	Cotton int `json:"cotton"`
	Maize  int `json:"maize"`
	Wood   int `json:"wood"`
}

// Get 按资源种类读数，未知种类返回 0。
func (r *ResourceSet) Get(kind ResourceType) int {
	switch kind {
	case ResourceGold:
		return r.Gold
	case ResourceStone:
		return r.Stone
	case ResourceCotton:
		return r.Cotton
	case ResourceMaize:
		return r.Maize
	case ResourceWood:
		return r.Wood
	}
	return 0
}

// Add 按资源种类加数，未知种类忽略。
func (r *ResourceSet) Add(kind ResourceType, n int) {
	switch kind {
	case ResourceGold:
		r.Gold += n
	case ResourceStone:
		r.Stone += n
	case ResourceCotton:
		r.Cotton += n
	case ResourceMaize:
		r.Maize += n
	case ResourceWood:
		r.Wood += n
	}
}

// CanAfford 判断是否付得起 cost。
func (r *ResourceSet) CanAfford(cost ResourceSet) bool {
	return r.Gold >= cost.Gold &&
		r.Stone >= cost.Stone &&
		r.Cotton >= cost.Cotton &&
		r.Maize >= cost.Maize &&
		r.Wood >= cost.Wood
}

// Deduct 扣除 cost，调用方必须先用 CanAfford 校验。
func (r *ResourceSet) Deduct(cost ResourceSet) {
	r.Gold -= cost.Gold
	r.Stone -= cost.Stone
	r.Cotton -= cost.Cotton
	r.Maize -= cost.Maize
	r.Wood -= cost.Wood
}

// Player 一局游戏里的玩家状态。资源计数永远非负，
// 只有引擎动作会修改这里的字段。
type Player struct {
	UserID           int64                 `json:"user_id"`
	Username         string                `json:"username"`
	Color            PlayerColor           `json:"color"`
	TurnOrder        int                   `json:"turn_order"`
	IsHost           bool                  `json:"is_host"`
	VictoryPoints    int                   `json:"victory_points"` // 建筑带来的分
	VictoryCards     int                   `json:"victory_cards"`  // 胜利点卡带来的分
	WarriorCards     int                   `json:"warrior_cards"`
	Resources        ResourceSet           `json:"resources"`
	DevelopmentCards []DevelopmentCardType `json:"development_cards"`
	HasLongestPath   bool                  `json:"has_longest_path"`
	HasLargestArmy   bool                  `json:"has_largest_army"`
}

// TotalPoints 当前总分：建筑分 + 胜利点卡 + 两项成就各 2 分。
func (p *Player) TotalPoints() int {
	total := p.VictoryPoints + p.VictoryCards
	if p.HasLongestPath {
		total += 2
	}
	if p.HasLargestArmy {
		total += 2
	}
	return total
}
