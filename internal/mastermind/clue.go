package mastermind

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var ErrLengthMismatch = errors.New("guess and solution lengths differ")

type GuessResult int8

const (
	Incorrect GuessResult = iota
	OnlyColorCorrect
	OnlyPositionCorrect // reserved, never produced by Evaluate
	ExactMatch
)

func (r GuessResult) String() string {
	switch r {
	case Incorrect:
		return "incorrect"
	case OnlyColorCorrect:
		return "color"
	case OnlyPositionCorrect:
		return "position"
	case ExactMatch:
		return "exact"
	default:
		return "!"
	}
}

// Clue is the feedback for one guess. Incorrect pegs are omitted, so its
// length varies from 0 (nothing matched) to the sequence length (solved).
// Evaluate always produces the canonical [ExactMatch..., OnlyColorCorrect...]
// order and consistency checks rely on it.
type Clue []GuessResult

func (c Clue) ExactMatches() (count int) {
	for _, r := range c {
		if r == ExactMatch {
			count++
		}
	}
	return
}

// Solved reports whether c is the all-exact clue for a sequence of the given
// length, i.e. the clue that ends a session.
func (c Clue) Solved(length int) bool {
	return len(c) == length && c.ExactMatches() == length
}

func (c Clue) Equal(other Clue) bool {
	return slices.Equal(c, other)
}

func (c Clue) String() string {
	return fmt.Sprintf("%d exact, %d color", c.ExactMatches(), len(c)-c.ExactMatches())
}

// Evaluate compares a guess against a solution of the same length.
//
// Exact matches are counted per position. The matched positions are then
// removed from both sequences and each distinct value present in both
// leftovers contributes exactly one OnlyColorCorrect, regardless of how many
// times it repeats. This distinct-value rule is weaker than the textbook
// min-multiplicity rule and is kept on purpose.
func Evaluate[T cmp.Ordered](solution, guess []T) (Clue, error) {
	if len(solution) != len(guess) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(solution), len(guess))
	}

	if slices.Equal(solution, guess) {
		clue := make(Clue, len(guess))
		for i := range clue {
			clue[i] = ExactMatch
		}
		return clue, nil
	}

	var restSolution, restGuess []T
	for i := range solution {
		if solution[i] != guess[i] {
			restSolution = append(restSolution, solution[i])
			restGuess = append(restGuess, guess[i])
		}
	}
	exact := len(solution) - len(restSolution)

	leftover := make(map[T]struct{}, len(restSolution))
	for _, v := range restSolution {
		leftover[v] = struct{}{}
	}
	shared := make(map[T]struct{})
	for _, v := range restGuess {
		if _, ok := leftover[v]; ok {
			shared[v] = struct{}{}
		}
	}

	clue := make(Clue, 0, exact+len(shared))
	for range exact {
		clue = append(clue, ExactMatch)
	}
	for range len(shared) {
		clue = append(clue, OnlyColorCorrect)
	}
	return clue, nil
}

// Oracle scores guesses against a solution fixed at construction time.
type Oracle[T cmp.Ordered] struct {
	solution []T
}

func NewOracle[T cmp.Ordered](solution []T) Oracle[T] {
	return Oracle[T]{solution: slices.Clone(solution)}
}

func (o Oracle[T]) Length() int {
	return len(o.solution)
}

func (o Oracle[T]) Evaluate(guess []T) (Clue, error) {
	return Evaluate(o.solution, guess)
}

// ClueRecord pairs a guess with the clue it earned. The ordered list of all
// records received in a session is everything a solver knows.
type ClueRecord[T cmp.Ordered] struct {
	Guess []T
	Clue  Clue
}

// Consistent reports whether candidate could still be the solution given a
// previously observed record: were candidate the solution, scoring the
// recorded guess against it must reproduce the recorded clue exactly.
func Consistent[T cmp.Ordered](record ClueRecord[T], candidate []T) bool {
	clue, err := Evaluate(candidate, record.Guess)
	if err != nil {
		return false
	}
	return clue.Equal(record.Clue)
}
