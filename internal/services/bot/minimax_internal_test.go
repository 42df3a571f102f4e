package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/model"
)

func TestPruningVisitsFewerPositions(t *testing.T) {
	var empty model.Board

	prunedMove, pruned := bestMove(&empty, model.SideX, true)
	plainMove, plain := bestMove(&empty, model.SideX, false)

	assert.Equal(t, plainMove, prunedMove)
	require.Positive(t, pruned)
	assert.Less(t, pruned*4, plain, "pruned=%d plain=%d", pruned, plain)
}

func TestPruningKeepsTheSameMove(t *testing.T) {
	boards := []struct {
		layout string
		side   model.Side
	}{
		{"X../.../...", model.SideO},
		{"XX./OO./...", model.SideX},
		{"XX./.O./...", model.SideO},
		{"X.O/.X./...", model.SideO},
		{"XOX/.O./...", model.SideX},
	}

	for _, tt := range boards {
		t.Run(tt.layout, func(t *testing.T) {
			b := model.MustParseBoard(tt.layout)

			prunedMove, pruned := bestMove(&b, tt.side, true)
			plainMove, plain := bestMove(&b, tt.side, false)

			assert.Equal(t, plainMove, prunedMove)
			assert.LessOrEqual(t, pruned, plain)
		})
	}
}

func TestBestMoveOnFullBoardVisitsNothing(t *testing.T) {
	b := model.MustParseBoard("XOX/XOO/OXX")

	move, nodes := bestMove(&b, model.SideO, true)
	assert.Equal(t, model.NoMove, move)
	assert.Zero(t, nodes)
}
