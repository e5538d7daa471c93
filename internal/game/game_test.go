package game

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-panel/internal/mines"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLayout(t *testing.T) {
	tests := []struct {
		pw, ph, tile int
		w, h         int
	}{
		{400, 240, 40, 10, 6},
		{419, 279, 40, 10, 6},
		{400, 240, 0, 10, 6},
		{39, 400, 40, 0, 10},
		{100, 100, 25, 4, 4},
	}
	for _, test := range tests {
		w, h := Layout(test.pw, test.ph, test.tile)
		assert.Equal(t, test.w, w)
		assert.Equal(t, test.h, h)
	}
}

func TestPlayTimer(t *testing.T) {
	clock := newFakeClock()
	timer := NewPlayTimer(clock.Now)
	assert.Equal(t, 0, timer.Seconds())

	timer.Start()
	clock.Advance(2500 * time.Millisecond)
	assert.Equal(t, 2, timer.Seconds())
	assert.True(t, timer.Running())

	// a second start must not move the origin
	timer.Start()
	clock.Advance(time.Second)
	assert.Equal(t, 3, timer.Seconds())

	timer.Stop()
	clock.Advance(time.Minute)
	assert.Equal(t, 3, timer.Seconds())
	assert.False(t, timer.Running())

	timer.Reset()
	assert.Equal(t, 0, timer.Seconds())

	timer.Start()
	clock.Advance(10 * time.Minute)
	assert.Equal(t, MaxPlaySeconds, timer.Seconds())
}

func TestMineCounter(t *testing.T) {
	var c MineCounter
	c.Reset(1)
	c.FlagAdded()
	c.FlagAdded()
	assert.Equal(t, -1, c.Remaining())
	c.FlagRemoved()
	assert.Equal(t, 0, c.Remaining())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
		err  error
	}{
		{"g", Command{Op: OpGet}, nil},
		{"o 1 2", Command{Op: OpOpen, X: 1, Y: 2}, nil},
		{"  f 0 7 ", Command{Op: OpFlag, X: 0, Y: 7}, nil},
		{"c 3 3", Command{Op: OpChord, X: 3, Y: 3}, nil},
		{"n", Command{Op: OpNew}, nil},
		{"n 9 9", Command{Op: OpNew, X: 9, Y: 9, Resize: true}, nil},
		{"", Command{}, ErrUnknownCommand},
		{"x 1 2", Command{}, ErrUnknownCommand},
		{"open 1 2", Command{}, ErrUnknownCommand},
		{"o 1", Command{}, ErrBadArguments},
		{"g 1", Command{}, ErrBadArguments},
		{"o a 2", Command{}, ErrBadArguments},
		{"o 1 b", Command{}, ErrBadArguments},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			cmd, err := ParseCommand(test.line)
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, cmd)
		})
	}
}

func TestCommandString(t *testing.T) {
	for _, line := range []string{"g", "o 1 2", "f 0 7", "c 3 3", "n", "n 9 9"} {
		cmd, err := ParseCommand(line)
		require.NoError(t, err)
		assert.Equal(t, line, cmd.String())
	}
}

func newTestSession(t *testing.T, clock *fakeClock, rows ...string) *Session {
	t.Helper()
	var layout []bool
	for _, row := range rows {
		for _, ch := range row {
			layout = append(layout, ch == '*')
		}
	}
	s := NewSession(uuid.New(), rand.New(rand.NewPCG(1, 2)), clock.Now)
	_, err := s.ResetWithMines(len(rows[0]), len(rows), layout)
	require.NoError(t, err)
	return s
}

func TestSessionWin(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, clock,
		"*..",
		"...",
		"...",
	)
	snap := s.Snapshot()
	assert.Equal(t, StatusReset, snap.Status)
	assert.Equal(t, 1, snap.MinesLeft)
	assert.Equal(t, 0, snap.Seconds)

	require.NoError(t, s.Flag(0, 0))
	assert.Equal(t, 0, s.Snapshot().MinesLeft)

	require.NoError(t, s.Open(1, 0))
	clock.Advance(4 * time.Second)
	assert.Equal(t, 4, s.Snapshot().Seconds)

	require.NoError(t, s.Open(2, 2))
	clock.Advance(time.Minute)

	snap = s.Snapshot()
	assert.Equal(t, StatusComplete, snap.Status)
	assert.Equal(t, "completed", snap.State)
	assert.Equal(t, 4, snap.Seconds)
	assert.Equal(t, 8, snap.Opened)
	assert.Equal(t, mines.CorrectlyFlagged, snap.Grid[0])

	var kinds []mines.EventKind
	for _, e := range s.Drain() {
		if e.Kind != mines.CellOpened {
			kinds = append(kinds, e.Kind)
		}
	}
	assert.Equal(t, []mines.EventKind{mines.FlagAdded, mines.GameStarted, mines.GameCompleted}, kinds)
	assert.Empty(t, s.Drain())
}

func TestSessionLoss(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, clock,
		"*..",
		"...",
	)
	require.NoError(t, s.Open(2, 1))
	assert.Equal(t, StatusReset, s.Snapshot().Status)
	require.NoError(t, s.Open(0, 0))

	snap := s.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "failed", snap.State)
	assert.Equal(t, mines.ExplodedMine, snap.Grid[0])

	// nothing changes after the game is over
	require.NoError(t, s.Flag(1, 0))
	assert.Equal(t, 1, s.Snapshot().MinesLeft)
}

func TestSessionExecute(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(t, clock, "*...")

	assert.ErrorIs(t, s.Execute(Command{Op: OpOpen, X: 4, Y: 0}), ErrOutOfBounds)
	assert.ErrorIs(t, s.Execute(Command{Op: OpFlag, X: 0, Y: -1}), ErrOutOfBounds)
	assert.NoError(t, s.Execute(Command{Op: OpGet}))

	require.NoError(t, s.Execute(Command{Op: OpOpen, X: 3, Y: 0}))
	assert.Equal(t, 3, s.Snapshot().Opened)
	assert.Equal(t, StatusComplete, s.Snapshot().Status)

	require.NoError(t, s.Execute(Command{Op: OpNew}))
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Opened)
	assert.Equal(t, 4, snap.Width)
	assert.Equal(t, StatusReset, snap.Status)

	require.NoError(t, s.Execute(Command{Op: OpNew, X: 10, Y: 10, Resize: true}))
	snap = s.Snapshot()
	assert.Equal(t, 10, snap.Width)
	assert.Equal(t, 16, snap.MineCount)
	assert.Equal(t, 16, snap.MinesLeft)
	assert.Len(t, snap.Grid, 100)

	err := s.Execute(Command{Op: OpNew, X: 0, Y: 10, Resize: true})
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Equal(t, 10, s.Snapshot().Width)

	err = s.Execute(Command{Op: OpNew, X: 2000, Y: 2, Resize: true})
	assert.ErrorIs(t, err, ErrBoardTooLarge)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Equal(t, 10, s.Snapshot().Width)

	_, err = s.Reset(2, MaxSide+1)
	assert.ErrorIs(t, err, ErrBoardTooLarge)

	err = s.Execute(Command{Op: 'z', X: 99, Y: 99})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestSessionWinWithoutFlags(t *testing.T) {
	s := newTestSession(t, newFakeClock(),
		"*..",
		"...",
		"...",
	)
	assert.Equal(t, 1, s.Snapshot().MinesLeft)

	require.NoError(t, s.Open(2, 2))
	snap := s.Snapshot()
	assert.Equal(t, StatusComplete, snap.Status)
	assert.Equal(t, 0, snap.MinesLeft)
	assert.Equal(t, mines.UnflaggedMine, snap.Grid[0])
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(1, 1))
	assert.NoError(t, ValidateSize(MaxSide, MaxSide))
	assert.ErrorIs(t, ValidateSize(0, 3), mines.ErrInvalidConfiguration)
	assert.ErrorIs(t, ValidateSize(MaxSide+1, 3), ErrBoardTooLarge)
	assert.ErrorIs(t, ValidateSize(3, 1<<40), ErrBoardTooLarge)
}

func TestRegistry(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(quietLogger(), time.Minute, rand.New(rand.NewPCG(1, 2)))
	r.now = clock.Now

	s, err := r.Create(9, 9)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Snapshot().MineCount)

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, err = r.Create(0, 9)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Equal(t, 1, r.Len())

	idle, err := r.Create(5, 5)
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	require.NoError(t, s.Open(4, 4))
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, r.Sweep())
	_, ok = r.Get(idle.ID)
	assert.False(t, ok)
	_, ok = r.Get(s.ID)
	assert.True(t, ok)

	assert.True(t, r.Delete(s.ID))
	assert.False(t, r.Delete(s.ID))
	assert.Equal(t, 0, r.Len())
}
