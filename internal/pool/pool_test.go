package pool_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/jroosing/hydrazone/internal/pool"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Basic operations
// =============================================================================

func TestPool_GetCallsConstructorWhenEmpty(t *testing.T) {
	calls := 0
	p := pool.New(func() int {
		calls++
		return calls
	})

	assert.Equal(t, 1, p.Get())
	assert.Equal(t, 2, p.Get())
	assert.Equal(t, 2, calls)
}

func TestPool_NewWithReset_ResetsOnPut(t *testing.T) {
	resets := 0
	p := pool.NewWithReset(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(b *bytes.Buffer) {
			resets++
			b.Reset()
		},
	)

	buf := p.Get()
	buf.WriteString("$ORIGIN example.com.\n")
	p.Put(buf)

	assert.Equal(t, 1, resets)
	assert.Equal(t, 0, buf.Len(), "buffer must be empty once returned")

	again := p.Get()
	assert.Equal(t, 0, again.Len())
}

func TestPool_NilResetIsAllowed(t *testing.T) {
	p := pool.NewWithReset(func() []string { return make([]string, 0, 4) }, nil)
	s := p.Get()
	assert.Equal(t, 4, cap(s))
	p.Put(s)
}

// =============================================================================
// Concurrency
// =============================================================================

func TestPool_ConcurrentAccess(t *testing.T) {
	p := pool.NewWithReset(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(b *bytes.Buffer) { b.Reset() },
	)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				buf := p.Get()
				assert.Equal(t, 0, buf.Len())
				buf.WriteString("www.example.com.\t3600\tIN\tA\t192.0.2.1\n")
				p.Put(buf)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkPool_BufferGetPut(b *testing.B) {
	p := pool.NewWithReset(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(buf *bytes.Buffer) { buf.Reset() },
	)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := p.Get()
			buf.WriteString("example.com.")
			p.Put(buf)
		}
	})
}
