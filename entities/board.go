package entities

// TerrainType 地形类型，对应 Tayrona 地貌
type TerrainType string

const (
	TerrainSierra           TerrainType = "sierra"            // 山脉，产金
	TerrainCanteras         TerrainType = "canteras"          // 采石场，产石
	TerrainTierrasAltas     TerrainType = "tierras_altas"     // 高地，产棉
	TerrainValles           TerrainType = "valles"            // 河谷，产玉米
	TerrainSelva            TerrainType = "selva"             // 丛林，产木
	TerrainCentroCeremonial TerrainType = "centro_ceremonial" // 祭祀中心，不产出
)

// ResourceType 资源类型
type ResourceType string

const (
	ResourceGold   ResourceType = "gold"
	ResourceStone  ResourceType = "stone"
	ResourceCotton ResourceType = "cotton"
	ResourceMaize  ResourceType = "maize"
	ResourceWood   ResourceType = "wood"
)

// BuildingType 建筑类型
type BuildingType string

const (
	BuildingCamino BuildingType = "camino" // 道路
	BuildingBohio  BuildingType = "bohio"  // 圆屋（定居点）
	BuildingTemplo BuildingType = "templo" // 神庙（圆屋升级）
)

// DevelopmentCardType 发展卡类型
type DevelopmentCardType string

const (
	CardGuerreroNaoma   DevelopmentCardType = "guerrero_naoma"   // 战士
	CardAbundancia      DevelopmentCardType = "abundancia"       // 丰饶
	CardSabiduriaMama   DevelopmentCardType = "sabiduria_mama"   // 垄断
	CardNuevosCaminos   DevelopmentCardType = "nuevos_caminos"   // 筑路
	CardAvanceAncestral DevelopmentCardType = "avance_ancestral" // 胜利点
)

// PortType 港口类型，general 为 3:1 通用港，其余为 2:1 资源港
type PortType string

const (
	PortGeneral PortType = "general"
	PortGold    PortType = "gold"
	PortStone   PortType = "stone"
	PortCotton  PortType = "cotton"
	PortMaize   PortType = "maize"
	PortWood    PortType = "wood"
)

// HexTile 单个六边形地块。NumberToken 为 0 表示没有骰子点数标记
// （整局里只有祭祀中心如此）。VertexIDs 固定存放该地块六个角的顶点 id。
type HexTile struct {
	ID              int         `json:"id"`
	Terrain         TerrainType `json:"terrain"`
	NumberToken     int         `json:"number_token"`
	Q               int         `json:"q"`
	R               int         `json:"r"`
	HasConquistador bool        `json:"has_conquistador"`
	VertexIDs       [6]int      `json:"vertex_ids"`
}

// Vertex 顶点。X/Y 是角点格坐标，相邻地块共享同一顶点。
// Building 为空串表示没有建筑，PlayerID 为 0 表示无主。
type Vertex struct {
	ID       int          `json:"id"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
	Building BuildingType `json:"building"`
	PlayerID int64        `json:"player_id"`
	IsPort   bool         `json:"is_port"`
	PortType PortType     `json:"port_type"`
}

// Edge 边，连接两个顶点，可放置一条道路。
type Edge struct {
	ID        int    `json:"id"`
	VertexIDs [2]int `json:"vertex_ids"`
	HasRoad   bool   `json:"has_road"`
	PlayerID  int64  `json:"player_id"`
}

// Port 港口，占据一对相邻顶点。
type Port struct {
	ID        int      `json:"id"`
	PortType  PortType `json:"port_type"`
	VertexIDs [2]int   `json:"vertex_ids"`
}

// Board 整张棋盘。地形与点数布局在生成后不再变化，
// 之后只有建筑、道路归属和征服者位置会被修改。
type Board struct {
	Hexes                []HexTile `json:"hexes"`
	Vertices             []Vertex  `json:"vertices"`
	Edges                []Edge    `json:"edges"`
	Ports                []Port    `json:"ports"`
	ConquistadorPosition int       `json:"conquistador_position"`
}

// Resource 返回该地形产出的资源，祭祀中心返回 false。
func (t TerrainType) Resource() (ResourceType, bool) {
	switch t {
	case TerrainSierra:
		return ResourceGold, true
	case TerrainCanteras:
		return ResourceStone, true
	case TerrainTierrasAltas:
		return ResourceCotton, true
	case TerrainValles:
		return ResourceMaize, true
	case TerrainSelva:
		return ResourceWood, true
	default:
		return "", false
	}
}

// VertexByID 按 id 取顶点，越界返回 nil。
func (b *Board) VertexByID(id int) *Vertex {
	if id < 0 || id >= len(b.Vertices) {
		return nil
	}
	return &b.Vertices[id]
}

// EdgeByID 按 id 取边，越界返回 nil。
func (b *Board) EdgeByID(id int) *Edge {
	if id < 0 || id >= len(b.Edges) {
		return nil
	}
	return &b.Edges[id]
}
