package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge2048/internal/idgen"
)

// DefaultInitialTiles is how many tiles a new session starts with.
const DefaultInitialTiles = 2

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	size         int
	initialTiles int
	initial      *Board
	newID        idgen.Generator
	choose       Chooser
	seed         int64
	logger       *log.Logger
}

// WithSize sets the board dimension (default 4).
func WithSize(size int) Option {
	return func(o *sessionOptions) { o.size = size }
}

// WithInitialTiles sets how many value-1 tiles the first snapshot holds.
func WithInitialTiles(n int) Option {
	return func(o *sessionOptions) { o.initialTiles = n }
}

// WithInitialBoard starts the session from a fixed layout instead of
// randomly seeded tiles. The board size overrides WithSize.
func WithInitialBoard(b Board) Option {
	return func(o *sessionOptions) { o.initial = &b }
}

// WithIDGenerator sets the tile id generator.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(o *sessionOptions) { o.newID = gen }
}

// WithChooser sets the random slot chooser used for spawning.
// It takes precedence over WithSeed.
func WithChooser(c Chooser) Option {
	return func(o *sessionOptions) { o.choose = c }
}

// WithSeed seeds the default chooser. 0 means seed from the clock.
func WithSeed(seed int64) Option {
	return func(o *sessionOptions) { o.seed = seed }
}

// WithLogger sets the logger used for debug tracing of state transitions.
func WithLogger(l *log.Logger) Option {
	return func(o *sessionOptions) { o.logger = l }
}

// Session is the move controller: it owns the current snapshot and turns
// move intents into new snapshots.
//
// A Session is not safe for concurrent mutation; hosts must serialize
// ApplyMove calls. Snapshots and boards it hands out are immutable and
// may be read from any goroutine.
type Session struct {
	current  *Snapshot
	resolver *Resolver
	spawner  *Spawner
	logger   *log.Logger
}

// NewSession creates a session with its initial snapshot.
func NewSession(opts ...Option) (*Session, error) {
	o := sessionOptions{
		size:         DefaultSize,
		initialTiles: DefaultInitialTiles,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.initial != nil {
		o.size = o.initial.Size()
	}
	if o.size < MinSize {
		return nil, fmt.Errorf("engine: board size %d is below %d", o.size, MinSize)
	}
	if o.initial == nil && (o.initialTiles < 1 || o.initialTiles > o.size*o.size) {
		return nil, fmt.Errorf("engine: initial tiles %d out of range [1, %d]", o.initialTiles, o.size*o.size)
	}

	if o.newID == nil {
		o.newID = idgen.Tile
	}
	if o.choose == nil {
		seed := o.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.choose = RandChooser(rand.New(rand.NewSource(seed)))
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	s := &Session{
		resolver: NewResolver(o.newID),
		spawner:  NewSpawner(o.newID, o.choose),
		logger:   o.logger,
	}

	var board Board
	if o.initial != nil {
		board = *o.initial
	} else {
		board = NewBoard(o.size)
		for range o.initialTiles {
			board = s.spawner.Spawn(board)
		}
	}
	s.current = NewSnapshot(board)

	s.logger.Debug("session started", "size", o.size, "tiles", board.Count())
	return s, nil
}

// ApplyMove performs one state transition.
//
// A movement move that changes the board spawns a tile and appends a
// snapshot; one that changes nothing leaves the session untouched. Undo
// steps back one snapshot and is a no-op at the start of the session.
func (s *Session) ApplyMove(m Move) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMoveKind, int(m))
	}

	if m == MoveUndo {
		prev := s.current
		s.current = s.current.Undo()
		if s.current == prev {
			s.logger.Debug("undo ignored at session start")
			return nil
		}
		s.logger.Debug("undo", "depth", s.current.Depth())
		return nil
	}

	board := s.current.Board()
	next, err := s.resolver.Resolve(m, board)
	if err != nil {
		return err
	}
	if next.Equal(board) {
		s.logger.Debug("no-op move", "move", m)
		return nil
	}

	next = s.spawner.Spawn(next)
	s.current = s.current.Append(next)
	s.logger.Debug("move applied", "move", m, "depth", s.current.Depth(), "tiles", next.Count())
	return nil
}

// CurrentBoard returns the board of the current snapshot.
func (s *Session) CurrentBoard() Board {
	return s.current.Board()
}

// MoveCount returns the depth of the current snapshot.
func (s *Session) MoveCount() int {
	return s.current.Depth()
}

// Current returns the current snapshot.
func (s *Session) Current() *Snapshot {
	return s.current
}

// CanUndo reports whether Undo would change the current snapshot.
func (s *Session) CanUndo() bool {
	return s.current.Previous() != nil
}
