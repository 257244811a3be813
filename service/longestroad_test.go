package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teyuna/entities"
)

func placeRoads(board *entities.Board, playerID int64, edgeIDs ...int) {
	for _, id := range edgeIDs {
		board.Edges[id].HasRoad = true
		board.Edges[id].PlayerID = playerID
	}
}

func TestLongestRoadEmpty(t *testing.T) {
	board := GenerateBoardSeeded(1)
	assert.Zero(t, LongestRoadLength(board, 1))
}

func TestLongestRoadChain(t *testing.T) {
	board := GenerateBoardSeeded(1)
	// 中心地块的 0、1、2 号边首尾相连
	placeRoads(board, 1, 0, 1, 2)
	assert.Equal(t, 3, LongestRoadLength(board, 1))
}

func TestLongestRoadCycle(t *testing.T) {
	board := GenerateBoardSeeded(1)
	// 绕中心地块一整圈
	placeRoads(board, 1, 0, 1, 2, 3, 4, 5)
	assert.Equal(t, 6, LongestRoadLength(board, 1))
}

func TestLongestRoadDisconnectedSegments(t *testing.T) {
	board := GenerateBoardSeeded(1)
	placeRoads(board, 1, 0, 1)

	// 找一条和前两条完全不相邻的边，构成独立路段
	touched := map[int]bool{}
	for _, id := range []int{0, 1} {
		touched[board.Edges[id].VertexIDs[0]] = true
		touched[board.Edges[id].VertexIDs[1]] = true
	}
	lone := -1
	for _, edge := range board.Edges {
		if !touched[edge.VertexIDs[0]] && !touched[edge.VertexIDs[1]] {
			lone = edge.ID
			break
		}
	}
	require.NotEqual(t, -1, lone)
	placeRoads(board, 1, lone)

	assert.Equal(t, 2, LongestRoadLength(board, 1), "不连通的路段各算各的，取最长")
}

func TestLongestRoadIgnoresOtherPlayers(t *testing.T) {
	board := GenerateBoardSeeded(1)
	placeRoads(board, 1, 0, 1)
	// 2 号玩家接在链的末端，不能给 1 号续长度
	placeRoads(board, 2, 2)

	assert.Equal(t, 2, LongestRoadLength(board, 1))
	assert.Equal(t, 1, LongestRoadLength(board, 2))
}
