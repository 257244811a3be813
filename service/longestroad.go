package service

import "teyuna/entities"

// LongestRoadLength 计算某个玩家在当前棋盘上最长的连续道路段数。
// 道路通过共享顶点相连，同一条边不能重复走，顶点可以重复经过。
// 纯函数，只读棋盘。
func LongestRoadLength(board *entities.Board, playerID int64) int {
	// 顶点 -> 该玩家经过此顶点的边
	adjacency := make(map[int][]int)
	for _, edge := range board.Edges {
		if !edge.HasRoad || edge.PlayerID != playerID {
			continue
		}
		adjacency[edge.VertexIDs[0]] = append(adjacency[edge.VertexIDs[0]], edge.ID)
		adjacency[edge.VertexIDs[1]] = append(adjacency[edge.VertexIDs[1]], edge.ID)
	}
	if len(adjacency) == 0 {
		return 0
	}

	used := make(map[int]bool)

	var walk func(vertex int) int
	walk = func(vertex int) int {
		best := 0
		for _, edgeID := range adjacency[vertex] {
			if used[edgeID] {
				continue
			}
			used[edgeID] = true
			edge := board.EdgeByID(edgeID)
			next := edge.VertexIDs[0]
			if next == vertex {
				next = edge.VertexIDs[1]
			}
			if length := 1 + walk(next); length > best {
				best = length
			}
			used[edgeID] = false
		}
		return best
	}

	longest := 0
	for vertex := range adjacency {
		if length := walk(vertex); length > longest {
			longest = length
		}
	}
	return longest
}
