package okapi

import (
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Releasable represents any resource that can be released to free memory.
//
// Frames and series implement it through their Arrow-backed storage. The
// recommended pattern is defer for automatic cleanup:
//
//	f, err := okapi.NewFrame(s1, s2)
//	if err != nil { ... }
//	defer f.Release()
type Releasable interface {
	Release()
}

// MemoryManager tracks multiple resources for bulk release. Prefer the
// defer pattern for individual values; use a manager when many short-lived
// frames are created in loops or with unpredictable lifetimes. It is safe
// for concurrent use.
type MemoryManager struct {
	allocator memory.Allocator
	resources []Releasable
	mu        sync.Mutex
}

// NewMemoryManager creates a new memory manager with the given allocator
func NewMemoryManager(allocator memory.Allocator) *MemoryManager {
	return &MemoryManager{
		allocator: allocator,
		resources: make([]Releasable, 0),
	}
}

// Track adds a resource to be managed and automatically released
func (m *MemoryManager) Track(resource Releasable) {
	if resource != nil {
		m.mu.Lock()
		m.resources = append(m.resources, resource)
		m.mu.Unlock()
	}
}

// Count returns the number of tracked resources
func (m *MemoryManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resources)
}

// ReleaseAll releases all tracked resources and clears the tracking list
func (m *MemoryManager) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, resource := range m.resources {
		if resource != nil {
			resource.Release()
		}
	}
	m.resources = m.resources[:0]
}

// WithFrame creates a frame via factory, runs fn, and releases the frame
// when fn returns.
func WithFrame(factory func() *Frame, fn func(*Frame) error) error {
	f := factory()
	defer f.Release()
	return fn(f)
}

// WithSeries creates a series via factory, runs fn, and releases the series
// when fn returns.
func WithSeries(factory func() *Series, fn func(*Series) error) error {
	s := factory()
	defer s.Release()
	return fn(s)
}

// WithMemoryManager creates a manager, runs fn, and releases every tracked
// resource when fn returns.
func WithMemoryManager(allocator memory.Allocator, fn func(*MemoryManager) error) error {
	manager := NewMemoryManager(allocator)
	defer manager.ReleaseAll()
	return fn(manager)
}
