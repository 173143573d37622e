// Package randutil holds the process-wide random source used by random
// picks over the feature model (feature values, alphabet symbols, weighted
// mutation choices). The source is seedable for reproducible runs and safe
// for concurrent use.
package randutil

import (
	"math/rand/v2"
	"sync"

	"github.com/teranos/otml/errors"
)

var (
	mu  sync.Mutex
	rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
)

// Seed makes subsequent picks deterministic.
func Seed(seed int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// Reseed replaces the source with a randomly seeded one.
func Reseed() {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// IntN returns a uniform int in [0, n). It panics if n <= 0.
func IntN(n int) int {
	mu.Lock()
	defer mu.Unlock()
	return rng.IntN(n)
}

// Choice returns a uniformly chosen element of items.
// ok is false when items is empty.
func Choice[T any](items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[IntN(len(items))], true
}

// Weighted pairs a value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// ChooseByWeight picks one value with probability proportional to its weight.
// Negative weights and an all-zero total are rejected.
func ChooseByWeight[T any](options []Weighted[T]) (T, error) {
	var zero T
	total := 0
	for _, o := range options {
		if o.Weight < 0 {
			return zero, errors.Wrapf(errors.ErrInvalidInput, "negative weight %d", o.Weight)
		}
		total += o.Weight
	}
	if total == 0 {
		return zero, errors.Wrap(errors.ErrInvalidInput, "sum of weights is zero")
	}

	pick := IntN(total)
	for _, o := range options {
		if pick < o.Weight {
			return o.Value, nil
		}
		pick -= o.Weight
	}
	return zero, errors.AssertionFailedf("weighted pick %d out of range %d", pick, total)
}
