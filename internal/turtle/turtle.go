// Package turtle turns an expanded L-system string into positioned line segments.
//
// The turtle draws in the XY plane: it starts facing +Y, '+' and '-' turn it
// about the Z axis, and branches are saved on an explicit stack of value
// snapshots.
package turtle

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/pkg/math"
)

// BranchDecay shrinks the segment length on entering a branch.
const BranchDecay = 0.8

// Symbols understood by the interpreter. Anything else is skipped.
const (
	SymForward   = 'F'
	SymTurnLeft  = '+'
	SymTurnRight = '-'
	SymPush      = '['
	SymPop       = ']'
)

var (
	ErrStackUnderflow = errors.New("branch stack underflow")
	ErrUnclosedBranch = errors.New("unclosed branch")
)

// StackError reports a bracket imbalance at a symbol offset.
type StackError struct {
	Offset int
	Err    error
}

func (e *StackError) Error() string {
	return fmt.Sprintf("symbol %d: %v", e.Offset, e.Err)
}

func (e *StackError) Unwrap() error { return e.Err }

// State is the turtle's full drawing state. Angle is in degrees.
type State struct {
	Position      math.Vec3
	Direction     math.Vec3
	SegmentLength float32
	Angle         float32
}

// DefaultState faces +Y from the given position.
func DefaultState(pos math.Vec3, length, angle float32) State {
	return State{
		Position:      pos,
		Direction:     math.UnitY,
		SegmentLength: length,
		Angle:         angle,
	}
}

// Segment is one drawn 'F' step.
type Segment struct {
	Position math.Vec3
	// Rotation holds Euler angles in degrees; only the pitch in X is set.
	Rotation    math.Vec3
	Length      float32
	Orientation math.Quat
}

// End returns the far endpoint of the segment.
func (s Segment) End() math.Vec3 {
	return s.Position.Add(s.Orientation.Rotate(math.UnitY).Scale(s.Length))
}

// Transform returns the model matrix placing a unit +Y primitive along the
// segment: scale by length, orient, then translate.
func (s Segment) Transform() math.Mat4 {
	t := math.Translate(s.Position.X, s.Position.Y, s.Position.Z)
	return t.Mul(s.Orientation.ToMat4()).Mul(math.Scale(1, s.Length, 1))
}

// Interpreter runs symbol strings and remembers where the last run ended.
type Interpreter struct {
	stack []State
	final State
}

// Final returns the state after the last successful Run.
func (t *Interpreter) Final() State { return t.final }

// Run interprets symbols from start. A ']' with nothing to pop fails with a
// *StackError; a '[' left open at the end fails with ErrUnclosedBranch.
func (t *Interpreter) Run(symbols string, start State) ([]Segment, error) {
	t.stack = t.stack[:0]
	cur := start

	var segments []Segment
	for i := 0; i < len(symbols); i++ {
		switch symbols[i] {
		case SymForward:
			segments = append(segments, emit(cur))
			cur.Position = cur.Position.Add(cur.Direction.Scale(cur.SegmentLength))
		case SymTurnLeft:
			cur.Direction = turn(cur.Direction, cur.Angle)
		case SymTurnRight:
			cur.Direction = turn(cur.Direction, -cur.Angle)
		case SymPush:
			t.stack = append(t.stack, cur)
			cur.SegmentLength *= BranchDecay
		case SymPop:
			if len(t.stack) == 0 {
				return nil, &StackError{Offset: i, Err: ErrStackUnderflow}
			}
			cur = t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
		}
	}
	if n := len(t.stack); n > 0 {
		return nil, &StackError{Offset: len(symbols), Err: fmt.Errorf("%w: %d open", ErrUnclosedBranch, n)}
	}

	t.final = cur
	logger.Named("turtle").Debug("interpreted",
		zap.Int("symbols", len(symbols)),
		zap.Int("segments", len(segments)),
	)
	return segments, nil
}

// Interpret runs symbols with a fresh Interpreter.
func Interpret(symbols string, start State) ([]Segment, error) {
	var t Interpreter
	return t.Run(symbols, start)
}

func emit(s State) Segment {
	pitch := gomath.Atan2(float64(s.Direction.Z), float64(s.Direction.Y)) * 180 / gomath.Pi
	return Segment{
		Position:    s.Position,
		Rotation:    math.Vec3{X: float32(pitch)},
		Length:      s.SegmentLength,
		Orientation: math.QuatBetween(math.UnitY, s.Direction),
	}
}

func turn(dir math.Vec3, degrees float32) math.Vec3 {
	rad := degrees * gomath.Pi / 180
	return math.RotateZ(rad).TransformDirection(dir)
}
