package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-panel/internal/mines"
)

type Status string

const (
	StatusReset    Status = "Reset"
	StatusFailed   Status = "Failed"
	StatusComplete Status = "Complete"
)

// Session is one player's game together with its play timer, remaining
// mine counter and status. All methods are safe for concurrent use; the
// board underneath is only ever touched with mu held.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	board    *mines.Board
	timer    *PlayTimer
	counter  MineCounter
	status   Status
	events   []mines.Event
	now      func() time.Time
	lastSeen time.Time
}

func NewSession(id uuid.UUID, r *rand.Rand, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ID:       id,
		board:    mines.New(r),
		timer:    NewPlayTimer(now),
		status:   StatusReset,
		now:      now,
		lastSeen: now(),
	}
	s.board.Subscribe(s.onEvent)
	return s
}

func (s *Session) onEvent(e mines.Event) {
	switch e.Kind {
	case mines.GameStarted:
		s.timer.Start()
	case mines.GameFailed:
		s.timer.Stop()
		s.status = StatusFailed
	case mines.GameCompleted:
		s.timer.Stop()
		s.status = StatusComplete
		s.counter.Reset(0)
	case mines.FlagAdded:
		s.counter.FlagAdded()
	case mines.FlagRemoved:
		s.counter.FlagRemoved()
	}
	s.events = append(s.events, e)
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}

// Reset starts a new game of width x height cells.
func (s *Session) Reset(width, height int) (mineCount int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(width, height, func() (int, error) { return s.board.Reset(width, height) })
}

// ResetWithMines is [Session.Reset] with a fixed mine layout.
func (s *Session) ResetWithMines(width, height int, layout []bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(width, height, func() (int, error) {
		return s.board.ResetWithMines(width, height, layout)
	})
}

func (s *Session) reset(width, height int, build func() (int, error)) (int, error) {
	s.touch()
	if err := ValidateSize(width, height); err != nil {
		return 0, err
	}
	mineCount, err := build()
	if err != nil {
		return 0, err
	}
	s.timer.Reset()
	s.counter.Reset(mineCount)
	s.status = StatusReset
	s.events = s.events[:0]
	return mineCount, nil
}

func (s *Session) Open(x, y int) error  { return s.Execute(Command{Op: OpOpen, X: x, Y: y}) }
func (s *Session) Flag(x, y int) error  { return s.Execute(Command{Op: OpFlag, X: x, Y: y}) }
func (s *Session) Chord(x, y int) error { return s.Execute(Command{Op: OpChord, X: x, Y: y}) }

// Execute applies one protocol command to the session.
func (s *Session) Execute(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch cmd.Op {
	case OpGet:
		return nil
	case OpNew:
		w, h := s.board.Width(), s.board.Height()
		if cmd.Resize {
			w, h = cmd.X, cmd.Y
		}
		_, err := s.reset(w, h, func() (int, error) { return s.board.Reset(w, h) })
		return err
	}

	var request func(int)
	switch cmd.Op {
	case OpOpen:
		request = s.board.RequestReveal
	case OpFlag:
		request = s.board.RequestFlagToggle
	case OpChord:
		request = s.board.RequestChord
	default:
		return ErrUnknownCommand
	}
	i, ok := s.board.Index(cmd.X, cmd.Y)
	if !ok {
		return ErrOutOfBounds
	}
	request(i)
	return nil
}

// Drain returns the events published since the previous call.
func (s *Session) Drain() []mines.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drain()
}

func (s *Session) drain() []mines.Event {
	events := make([]mines.Event, len(s.events))
	copy(events, s.events)
	s.events = s.events[:0]
	return events
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Snapshot struct {
	ID        uuid.UUID  `json:"id"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	MineCount int        `json:"mine_count"`
	MinesLeft int        `json:"mines_left"`
	Opened    int        `json:"opened"`
	Seconds   int        `json:"seconds"`
	Status    Status     `json:"status"`
	State     string     `json:"state"`
	Grid      mines.Grid `json:"grid"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Report returns the snapshot and drains the pending events in one step.
func (s *Session) Report() (Snapshot, []mines.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), s.drain()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:        s.ID,
		Width:     s.board.Width(),
		Height:    s.board.Height(),
		MineCount: s.board.MineCount(),
		MinesLeft: s.counter.Remaining(),
		Opened:    s.board.OpenedCount(),
		Seconds:   s.timer.Seconds(),
		Status:    s.status,
		State:     s.board.Outcome().String(),
		Grid:      s.board.View(),
	}
}

// Session implements [fmt.Stringer]
func (s *Session) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.String()
}
