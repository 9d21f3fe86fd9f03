// Package idgen mints the identifiers handed out for arena entities.
//
// Ids take the form "<prefix>_<body>". The world uses the UUID form in
// production and the sequential form in tests so expectations stay readable.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces a new id on every call and is safe for concurrent use
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator
type Func func() string

// Generate calls f
func (f Func) Generate() string { return f() }

func withPrefix(prefix, body string) string {
	if prefix == "" {
		return body
	}
	return prefix + "_" + body
}

// SequentialGenerator counts up from 1
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

func (g *SequentialGenerator) Generate() string {
	return withPrefix(g.prefix, strconv.FormatUint(g.next.Add(1), 10))
}

// UUIDGenerator appends a random v4 UUID to the prefix
type UUIDGenerator struct {
	prefix string
}

func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.NewString())
}
