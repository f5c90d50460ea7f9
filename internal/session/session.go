// Package session drives one solver against one oracle to completion and
// keeps a record of how the game went.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/mastermind/internal/mastermind"
)

// Round is one guess and the feedback it earned.
type Round struct {
	Guess  []string
	Clue   mastermind.Clue
	Status string // solver diagnostic at the time of the guess
}

// Result records a finished (or failed) session.
type Result struct {
	ID        uuid.UUID
	Strategy  string
	Solution  []string
	Rounds    []Round
	Solved    bool
	StartedAt time.Time
	Duration  time.Duration
}

func (r Result) GuessCount() int {
	return len(r.Rounds)
}

// Play asks solver for guesses and feeds clues back until the oracle returns
// the all-exact clue. The solution is fixed inside the oracle for the whole
// session. On solver failure the partial result is returned along with the
// error, so the caller still sees how far the session got.
//
// The results are named so the deferred duration stamp lands on the value the
// caller receives.
func Play(log *logrus.Logger, strategy string, oracle mastermind.Oracle[string], solver mastermind.Solver[string]) (result Result, err error) {
	result = Result{
		ID:        uuid.New(),
		Strategy:  strategy,
		StartedAt: time.Now(),
	}
	defer func() {
		result.Duration = time.Since(result.StartedAt)
	}()

	for {
		guess, err := solver.NextGuess()
		if err != nil {
			return result, err
		}
		clue, err := oracle.Evaluate(guess)
		if err != nil {
			return result, err
		}
		result.Rounds = append(result.Rounds, Round{
			Guess:  guess,
			Clue:   clue,
			Status: solver.Status(),
		})
		log.WithFields(logrus.Fields{
			"session": result.ID,
			"round":   len(result.Rounds),
			"guess":   guess,
			"clue":    clue.String(),
			"solver":  solver.Status(),
		}).Debug("round played")

		if clue.Solved(oracle.Length()) {
			result.Solved = true
			result.Solution = guess
			return result, nil
		}
		if err := solver.AddClue(mastermind.ClueRecord[string]{Guess: guess, Clue: clue}); err != nil {
			return result, err
		}
	}
}
