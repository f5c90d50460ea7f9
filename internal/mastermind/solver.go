package mastermind

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var (
	// ErrInconsistent means no candidate survives the accumulated clues. It
	// cannot happen while the clues come from one honest oracle; seeing it
	// means a clue was corrupted or mislabeled and the session is lost.
	ErrInconsistent = errors.New("no candidate is consistent with the accumulated clues")

	// ErrExhausted is the bounded random search giving up within its try
	// limit. The caller may retry with a higher limit.
	ErrExhausted = errors.New("no consistent guess found within the try limit")
)

// Unbounded disables the random search try limit.
const Unbounded = -1

// Solver proposes guesses and narrows its view of the solution space as
// clues come back. Implementations own their state exclusively; one solver
// drives one session.
type Solver[T cmp.Ordered] interface {
	AddClue(record ClueRecord[T]) error
	NextGuess() ([]T, error)
	// Status describes the remaining search effort, for logs only.
	Status() string
}

// Pruner materializes the full combination space up front and filters it
// down with every clue. Guessing is deterministic: always the lowest-sorted
// survivor. Memory-hungry, cheap per round.
type Pruner[T cmp.Ordered] struct {
	candidates [][]T
}

func NewPruner[T cmp.Ordered](options []T, length int, duplicates bool) (*Pruner[T], error) {
	if !duplicates && len(options) < length {
		return nil, fmt.Errorf("%w: %d options for length %d", ErrNotEnoughOptions, len(options), length)
	}
	return &Pruner[T]{candidates: EnumerateAll(options, length, duplicates)}, nil
}

func (p *Pruner[T]) AddClue(record ClueRecord[T]) error {
	p.candidates = slices.DeleteFunc(p.candidates, func(candidate []T) bool {
		return !Consistent(record, candidate)
	})
	if len(p.candidates) == 0 {
		return ErrInconsistent
	}
	return nil
}

func (p *Pruner[T]) NextGuess() ([]T, error) {
	if len(p.candidates) == 0 {
		return nil, ErrInconsistent
	}
	return slices.Clone(p.candidates[0]), nil
}

func (p *Pruner[T]) Status() string {
	return fmt.Sprintf("%d candidates remain", len(p.candidates))
}

// RandomSearch keeps no candidate list, only the clue history. Every guess is
// drawn fresh and checked against the whole history, redrawing until one
// sticks. No memory cost, but draws needed grow as clues shrink the
// consistent fraction of the space.
type RandomSearch[T cmp.Ordered] struct {
	r          *rand.Rand
	options    []T
	length     int
	duplicates bool
	maxTries   int
	records    []ClueRecord[T]
	lastDraws  int
	exhausted  bool
}

// NewRandomSearch builds the guess-and-check solver. maxTries bounds the
// retries NextGuess may burn per call; pass Unbounded to keep drawing until
// something fits. A bound of 0 accepts only a first draw that is already
// consistent.
func NewRandomSearch[T cmp.Ordered](r *rand.Rand, options []T, length int, duplicates bool, maxTries int) (*RandomSearch[T], error) {
	if !duplicates && len(options) < length {
		return nil, fmt.Errorf("%w: %d options for length %d", ErrNotEnoughOptions, len(options), length)
	}
	return &RandomSearch[T]{
		r:          r,
		options:    slices.Clone(options),
		length:     length,
		duplicates: duplicates,
		maxTries:   maxTries,
	}, nil
}

func (s *RandomSearch[T]) AddClue(record ClueRecord[T]) error {
	s.records = append(s.records, record)
	return nil
}

func (s *RandomSearch[T]) consistent(guess []T) bool {
	for _, record := range s.records {
		if !Consistent(record, guess) {
			return false
		}
	}
	return true
}

func (s *RandomSearch[T]) NextGuess() ([]T, error) {
	retries := 0
	for {
		guess, err := RandomCombination(s.r, s.options, s.length, s.duplicates)
		if err != nil {
			return nil, err
		}
		if s.consistent(guess) {
			s.lastDraws = retries + 1
			s.exhausted = false
			return guess, nil
		}
		retries++
		if s.maxTries >= 0 && retries > s.maxTries {
			s.lastDraws = retries
			s.exhausted = true
			return nil, fmt.Errorf("%w: %d", ErrExhausted, s.maxTries)
		}
	}
}

func (s *RandomSearch[T]) Status() string {
	if s.exhausted {
		return fmt.Sprintf("gave up after %d draws", s.lastDraws)
	}
	return fmt.Sprintf("%d draws needed", s.lastDraws)
}
