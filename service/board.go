package service

import (
	"time"

	"golang.org/x/exp/rand"

	"teyuna/entities"
)

// 标准棋盘 19 块地形的固定配比：
// 4 丛林、4 采石场、4 河谷、3 高地、3 山脉、1 祭祀中心
var terrainDistribution = []entities.TerrainType{
	entities.TerrainSelva, entities.TerrainSelva, entities.TerrainSelva, entities.TerrainSelva,
	entities.TerrainCanteras, entities.TerrainCanteras, entities.TerrainCanteras, entities.TerrainCanteras,
	entities.TerrainValles, entities.TerrainValles, entities.TerrainValles, entities.TerrainValles,
	entities.TerrainTierrasAltas, entities.TerrainTierrasAltas, entities.TerrainTierrasAltas,
	entities.TerrainSierra, entities.TerrainSierra, entities.TerrainSierra,
	entities.TerrainCentroCeremonial,
}

// 点数标记（不含 7），2 和 12 各一个，其余各两个
var numberTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// 19 个地块的轴坐标：中心 1 块 + 内环 6 块 + 外环 12 块
var hexPositions = [][2]int{
	{0, 0},
	{1, -1}, {1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1},
	{2, -2}, {2, -1}, {2, 0}, {1, 1}, {0, 2}, {-1, 2},
	{-2, 2}, {-2, 1}, {-2, 0}, {-1, -1}, {0, -2}, {1, -2},
}

// 9 个港口：4 个 3:1 通用港 + 5 个 2:1 资源港
var portTypes = []entities.PortType{
	entities.PortGeneral, entities.PortGeneral, entities.PortGeneral, entities.PortGeneral,
	entities.PortGold, entities.PortStone, entities.PortCotton, entities.PortMaize, entities.PortWood,
}

// 港口占据的固定顶点对
var portVertexPairs = [][2]int{
	{0, 1}, {3, 4}, {7, 8}, {11, 12}, {15, 16},
	{19, 20}, {23, 24}, {27, 28}, {31, 32},
}

// 尖顶朝上的六边形在角点格上的六个角偏移。
// 地块 (q, r) 的中心落在 (2q+r, 3r)，相邻地块由此共享同一角点，
// 标准棋盘恰好去重出 54 个顶点、72 条边。
var cornerOffsets = [6][2]int{
	{0, -2}, {1, -1}, {1, 1}, {0, 2}, {-1, 1}, {-1, -1},
}

func hexCorners(q, r int) [6][2]int {
	cx, cy := 2*q+r, 3*r
	var corners [6][2]int
	for d, off := range cornerOffsets {
		corners[d] = [2]int{cx + off[0], cy + off[1]}
	}
	return corners
}

// GenerateBoard 用新的随机源生成一张棋盘。
func GenerateBoard() *entities.Board {
	return generateBoard(rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
}

// GenerateBoardSeeded 用给定种子生成棋盘，同一种子生成的布局完全一致。
func GenerateBoardSeeded(seed uint64) *entities.Board {
	return generateBoard(rand.New(rand.NewSource(seed)))
}

func generateBoard(rng *rand.Rand) *entities.Board {
	terrains := make([]entities.TerrainType, len(terrainDistribution))
	copy(terrains, terrainDistribution)
	rng.Shuffle(len(terrains), func(i, j int) {
		terrains[i], terrains[j] = terrains[j], terrains[i]
	})

	numbers := make([]int, len(numberTokens))
	copy(numbers, numberTokens)
	rng.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	board := &entities.Board{}

	// 顶点与边按角点坐标去重，保证被多块地共享的物理顶点只出现一次
	vertexIDs := make(map[[2]int]int)
	edgeIDs := make(map[[2][2]int]int)

	vertexID := func(c [2]int) int {
		if id, ok := vertexIDs[c]; ok {
			return id
		}
		id := len(board.Vertices)
		vertexIDs[c] = id
		board.Vertices = append(board.Vertices, entities.Vertex{ID: id, X: c[0], Y: c[1]})
		return id
	}

	edgeKey := func(a, b [2]int) [2][2]int {
		if a[0] > b[0] || (a[0] == b[0] && a[1] > b[1]) {
			a, b = b, a
		}
		return [2][2]int{a, b}
	}

	numberIdx := 0
	for i, pos := range hexPositions {
		terrain := terrains[i]

		hex := entities.HexTile{
			ID:      i,
			Terrain: terrain,
			Q:       pos[0],
			R:       pos[1],
		}

		// 祭祀中心没有点数标记，并且是征服者的起始位置
		if terrain == entities.TerrainCentroCeremonial {
			hex.HasConquistador = true
			board.ConquistadorPosition = i
		} else {
			hex.NumberToken = numbers[numberIdx]
			numberIdx++
		}

		corners := hexCorners(pos[0], pos[1])
		for d, c := range corners {
			hex.VertexIDs[d] = vertexID(c)
		}
		for d := range corners {
			a, b := corners[d], corners[(d+1)%6]
			key := edgeKey(a, b)
			if _, ok := edgeIDs[key]; ok {
				continue
			}
			id := len(board.Edges)
			edgeIDs[key] = id
			board.Edges = append(board.Edges, entities.Edge{
				ID:        id,
				VertexIDs: [2]int{vertexIDs[a], vertexIDs[b]},
			})
		}

		board.Hexes = append(board.Hexes, hex)
	}

	// 洗港口类型并落到固定顶点对上
	ports := make([]entities.PortType, len(portTypes))
	copy(ports, portTypes)
	rng.Shuffle(len(ports), func(i, j int) {
		ports[i], ports[j] = ports[j], ports[i]
	})

	for i, pair := range portVertexPairs {
		board.Ports = append(board.Ports, entities.Port{
			ID:        i,
			PortType:  ports[i],
			VertexIDs: pair,
		})
		for _, vid := range pair {
			board.Vertices[vid].IsPort = true
			board.Vertices[vid].PortType = ports[i]
		}
	}

	return board
}
