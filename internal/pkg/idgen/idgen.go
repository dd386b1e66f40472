// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-arena/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// SequentialGenerator generates sequential IDs. Simulated fighters and
// monsters use it so that a seeded run names them identically every time.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// Count returns how many IDs have been generated
func (g *SequentialGenerator) Count() uint64 {
	return atomic.LoadUint64(&g.counter)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
