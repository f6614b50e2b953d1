package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/docgo/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

var stringAlphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 _-äöüπ€")

// String returns a random string of exactly length runes.
func (r *RNG) String(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	runes := make([]rune, length)
	for i := range runes {
		runes[i] = stringAlphabet[r.rand.Intn(len(stringAlphabet))]
	}
	return string(runes)
}

// ID returns a random document identifier.
func (r *RNG) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%016x", r.rand.Uint64())
}

// Document generates a random document with a fresh identifier. Values
// are drawn from the JSON-stable type set so that decode(encode(doc))
// compares equal with require.Equal.
func (r *RNG) Document() model.Document {
	doc := model.Document{model.IDField: r.ID()}
	fields := 1 + r.Intn(8)
	for i := 0; i < fields; i++ {
		doc["f"+r.String(1+r.Intn(6))] = r.value(0)
	}
	return doc
}

// Documents generates n random documents with distinct identifiers.
func (r *RNG) Documents(n int) []model.Document {
	docs := make([]model.Document, n)
	for i := range docs {
		docs[i] = r.Document()
		docs[i][model.IDField] = fmt.Sprintf("doc-%06d-%s", i, docs[i][model.IDField])
	}
	return docs
}

func (r *RNG) value(depth int) any {
	limit := 6
	if depth >= 2 {
		limit = 4 // No nesting below depth 2
	}
	switch r.Intn(limit) {
	case 0:
		return r.String(r.Intn(20))
	case 1:
		return r.Float64() * 1000
	case 2:
		return r.Intn(2) == 1
	case 3:
		return nil
	case 4:
		n := r.Intn(4)
		arr := make([]any, n)
		for i := range arr {
			arr[i] = r.value(depth + 1)
		}
		return arr
	default:
		n := 1 + r.Intn(3)
		m := make(map[string]any, n)
		for i := 0; i < n; i++ {
			m["k"+r.String(3)] = r.value(depth + 1)
		}
		return m
	}
}
