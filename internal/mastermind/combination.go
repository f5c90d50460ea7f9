package mastermind

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/gammazero/deque"
)

var ErrNotEnoughOptions = errors.New("not enough options for a combination without duplicates")

// RandomCombination draws length symbols uniformly at random from options.
// When duplicates is false the draw is without replacement, which requires at
// least length distinct slots in options.
func RandomCombination[T cmp.Ordered](r *rand.Rand, options []T, length int, duplicates bool) ([]T, error) {
	if len(options) == 0 && length > 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrNotEnoughOptions)
	}
	if !duplicates && len(options) < length {
		return nil, fmt.Errorf("%w: %d options for length %d", ErrNotEnoughOptions, len(options), length)
	}
	pool := slices.Clone(options)
	combination := make([]T, 0, length)
	for range length {
		i := r.IntN(len(pool))
		combination = append(combination, pool[i])
		if !duplicates {
			pool = slices.Delete(pool, i, i+1)
		}
	}
	return combination, nil
}

type partial[T cmp.Ordered] struct {
	seq  []T
	used []bool // index-based, only tracked without duplicates
}

// EnumerateAll produces every distinct ordered arrangement of length symbols
// from options: |options|^length of them with duplicates allowed, the falling
// factorial |options|!/(|options|-length)! without. Repeated values in options
// collapse, so the result never contains the same arrangement twice. The
// result is sorted, which fixes the iteration order for deterministic play.
//
// The space is exponential in length; callers own the blow-up.
func EnumerateAll[T cmp.Ordered](options []T, length int, duplicates bool) [][]T {
	pool := slices.Clone(options)
	if duplicates {
		// Repeated values only multiply identical arrangements.
		slices.Sort(pool)
		pool = slices.Compact(pool)
	}

	var frontier deque.Deque[partial[T]]
	frontier.PushBack(partial[T]{})

	var all [][]T
	for frontier.Len() > 0 {
		p := frontier.PopFront()
		if len(p.seq) == length {
			all = append(all, p.seq)
			continue
		}
		for i, v := range pool {
			if !duplicates && p.used != nil && p.used[i] {
				continue
			}
			next := partial[T]{seq: append(slices.Clip(p.seq), v)}
			if !duplicates {
				if p.used == nil {
					next.used = make([]bool, len(pool))
				} else {
					next.used = slices.Clone(p.used)
				}
				next.used[i] = true
			}
			frontier.PushBack(next)
		}
	}

	slices.SortFunc(all, slices.Compare)
	// Distinct repeated values in the pool still yield duplicate arrangements
	// when drawing without replacement.
	return slices.CompactFunc(all, slices.Equal)
}
