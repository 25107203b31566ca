package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMoveKind is returned for move values outside the five known moves.
var ErrInvalidMoveKind = errors.New("engine: invalid move kind")

// Move is a move intent sent by the host.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveUndo
)

var moveNames = [...]string{
	MoveUp:    "Up",
	MoveDown:  "Down",
	MoveLeft:  "Left",
	MoveRight: "Right",
	MoveUndo:  "Undo",
}

// String returns the move name.
func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", int(m))
	}
	return moveNames[m]
}

// Valid reports whether m is one of the five known moves.
func (m Move) Valid() bool {
	return m >= MoveUp && m <= MoveUndo
}

// IsMovement reports whether m slides tiles (every move except Undo).
func (m Move) IsMovement() bool {
	return m >= MoveUp && m <= MoveRight
}

// MovementMoves returns the four directional moves.
func MovementMoves() []Move {
	return []Move{MoveUp, MoveDown, MoveLeft, MoveRight}
}

// ParseMove parses a move name, ignoring case.
func ParseMove(s string) (Move, error) {
	for m, name := range moveNames {
		if strings.EqualFold(s, name) {
			return Move(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMoveKind, s)
}

type axis int

const (
	axisX axis = iota
	axisY
)

// moveRule normalizes a movement move into axis terms.
// Tiles travel along primary; each line runs along primary at a fixed
// secondary index. sign is -1 toward index 0 and +1 toward size-1.
type moveRule struct {
	primary   axis
	secondary axis
	sign      int
}

var moveRules = [...]moveRule{
	MoveUp:    {primary: axisY, secondary: axisX, sign: -1},
	MoveDown:  {primary: axisY, secondary: axisX, sign: +1},
	MoveLeft:  {primary: axisX, secondary: axisY, sign: -1},
	MoveRight: {primary: axisX, secondary: axisY, sign: +1},
}

func ruleFor(m Move) (moveRule, error) {
	if !m.IsMovement() {
		return moveRule{}, fmt.Errorf("%w: %v is not a movement move", ErrInvalidMoveKind, m)
	}
	return moveRules[m], nil
}

// bound returns the primary index tiles accumulate toward.
func (r moveRule) bound(size int) int {
	if r.sign < 0 {
		return 0
	}
	return size - 1
}

// coord maps a (primary, secondary) index pair back to a board coordinate.
func (r moveRule) coord(primary, secondary int) Coord {
	if r.primary == axisX {
		return Coord{X: primary, Y: secondary}
	}
	return Coord{X: secondary, Y: primary}
}
