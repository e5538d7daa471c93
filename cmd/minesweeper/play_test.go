package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-panel/internal/game"
)

func TestPlay(t *testing.T) {
	s := game.NewSession(uuid.New(), nil, nil)
	// * . .
	_, err := s.ResetWithMines(3, 1, []bool{true, false, false})
	require.NoError(t, err)

	in := strings.NewReader("f 0 0\nbogus\no 9 9\n\no 2 0\nq\no 0 0\n")
	var out strings.Builder
	require.NoError(t, play(in, &out, s))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "- - -\ntime 000  mines 001  Reset\n"), text)
	assert.Contains(t, text, "F - -\ntime 000  mines 000  Reset\n")
	assert.Contains(t, text, "error: unknown command")
	assert.Contains(t, text, "error: invalid square coordinates")
	assert.Contains(t, text, "F 1 .\ntime 000  mines 000  Complete\n")

	// quitting leaves the last line unread
	assert.Equal(t, 2, s.Snapshot().Opened)
}

func TestPlayEndOfInput(t *testing.T) {
	s := game.NewSession(uuid.New(), nil, nil)
	_, err := s.Reset(2, 2)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, play(strings.NewReader("o 0 0"), &out, s))
	assert.Equal(t, "Complete", string(s.Snapshot().Status))
}
