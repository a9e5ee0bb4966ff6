// Package replay plays move strings against a level.
//
// A move string holds one character per player input: u, d, l and r step
// chip, a space waits a full move and '-' waits half a move. Every input
// except the half-wait is followed by the half-wait the engine asks for.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/chipsim/internal/engine"
	"github.com/vovakirdan/chipsim/internal/levels"
	"github.com/vovakirdan/chipsim/internal/levels/formats"
)

var (
	// ErrUnknownMove is returned for characters outside the move alphabet.
	ErrUnknownMove = errors.New("replay: unknown move")

	// ErrMismatch is returned when a recorded solution does not reproduce.
	ErrMismatch = errors.New("replay: solution does not reproduce")
)

// Result summarises a played move string.
type Result struct {
	Complete  bool
	Dead      bool
	Tick      int
	ChipsLeft int
	TimeLeft  int
	// Played is the number of inputs consumed before the level ended.
	Played int
	Hash   uint64
}

// Parse converts a move string into engine inputs.
func Parse(moves string) ([]engine.Input, error) {
	inputs := make([]engine.Input, 0, len(moves))
	for i := 0; i < len(moves); i++ {
		in, err := engine.ParseInput(moves[i])
		if err != nil {
			return nil, fmt.Errorf("%w %q at %d", ErrUnknownMove, moves[i], i)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Run feeds inputs to l until they run out or the level ends.
func Run(l *engine.Level, inputs []engine.Input) Result {
	var res Result
	for _, in := range inputs {
		if l.Over() {
			break
		}
		if l.Tick(in, nil) {
			l.Tick(engine.InputHalfWait, nil)
		}
		res.Played++
	}
	res.Complete = l.Complete()
	res.Dead = l.ChipDead()
	res.Tick = l.TickNumber()
	res.ChipsLeft = l.ChipsLeft()
	res.TimeLeft = l.TimeLeft()
	res.Hash = l.Hash()
	return res
}

// Play parses moves and runs them against l.
func Play(l *engine.Level, moves string) (Result, error) {
	inputs, err := Parse(moves)
	if err != nil {
		return Result{}, err
	}
	return Run(l, inputs), nil
}

// Verify replays a recorded solution under its own seed and step and checks
// that it completes with the recorded tick, chip count and time.
func Verify(lvl *levels.Level, sol formats.Solution) (Result, error) {
	l, err := lvl.NewLevelWith(sol.Seed, sol.Step)
	if err != nil {
		return Result{}, err
	}
	res, err := Play(l, sol.Moves)
	if err != nil {
		return res, err
	}
	switch {
	case !res.Complete:
		return res, fmt.Errorf("%w: level not completed (tick %d)", ErrMismatch, res.Tick)
	case res.Tick != sol.Tick:
		return res, fmt.Errorf("%w: completed at tick %d, recorded %d", ErrMismatch, res.Tick, sol.Tick)
	case res.ChipsLeft != sol.ChipsLeft:
		return res, fmt.Errorf("%w: %d chips left, recorded %d", ErrMismatch, res.ChipsLeft, sol.ChipsLeft)
	case res.TimeLeft != sol.TimeLeft:
		return res, fmt.Errorf("%w: time left %d, recorded %d", ErrMismatch, res.TimeLeft, sol.TimeLeft)
	}
	return res, nil
}
