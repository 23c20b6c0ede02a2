// Copyright 2020 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promise

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitTimeout = 5 * time.Second
	waitTick    = time.Millisecond
)

func fulfilled[T any](p *Promise[T]) func() bool {
	return p.Fulfilled
}

func rejected[T any](p *Promise[T]) func() bool {
	return p.Rejected
}

// gatedRoot returns a root promise whose handler blocks until the returned
// release function is called, keeping the tree's resolver parked on chain
// slot 0 while the test builds the rest of the tree.
func gatedRoot(t *testing.T, seed int) (root *Promise[int], release func()) {
	t.Helper()
	gate := make(chan struct{})
	root = New(func(v int) (int, error) {
		<-gate
		return v, nil
	}, seed)
	return root, func() { close(gate) }
}

func TestGlobalAttachmentOrder(t *testing.T) {
	// sibling and cousin branches must resolve in the order they were
	// attached in, across the whole tree, not per-branch depth-first.
	var log []string
	rec := func(tag string) Handler[int] {
		return func(v int) (int, error) {
			log = append(log, tag)
			return v, nil
		}
	}

	root, release := gatedRoot(t, 0)
	a := root.Then(rec("a"))
	b := root.Then(rec("b"))
	a1 := a.Then(rec("a1"))
	b1 := b.Then(rec("b1"))
	a2 := a1.Then(rec("a2"))
	release()

	require.Eventually(t, fulfilled(a2), waitTimeout, waitTick)
	assert.Equal(t, []string{"a", "b", "a1", "b1", "a2"}, log)
	assert.True(t, b1.Fulfilled())
}

func TestEagerRejectionCascade(t *testing.T) {
	wantErr := newStrError()
	var calls atomic.Int32
	counting := func(v int) (int, error) {
		calls.Add(1)
		return v, nil
	}

	root, release := gatedRoot(t, 0)
	boom := root.Then(func(v int) (int, error) {
		return 0, wantErr
	})
	c1 := boom.Then(counting)
	c2 := c1.Then(counting)
	c3 := boom.Then(counting)
	release()

	require.Eventually(t, rejected(boom), waitTimeout, waitTick)

	// the cascade is eager: the whole subtree reads rejected the moment
	// boom does, without waiting for the resolver to reach its slots.
	assert.True(t, c1.Rejected())
	assert.True(t, c2.Rejected())
	assert.True(t, c3.Rejected())

	// the same reason object propagates unchanged down the subtree.
	assert.Equal(t, wantErr, c1.Reason())
	assert.Equal(t, wantErr, c2.Reason())
	assert.Equal(t, wantErr, c3.Reason())

	// let the resolver walk past the cascaded slots, then check that it
	// skipped their handlers.
	tail := root.Then(nil)
	require.Eventually(t, fulfilled(tail), waitTimeout, waitTick)
	assert.Zero(t, calls.Load())
}

func TestThenOnRejected(t *testing.T) {
	wantErr := newPtrError()
	var calls atomic.Int32

	root := New[int](func(v int) (int, error) {
		return 0, wantErr
	}, 0)
	require.Eventually(t, rejected(root), waitTimeout, waitTick)

	// no Eventually here: the child must come back already rejected.
	child := root.Then(func(v int) (int, error) {
		calls.Add(1)
		return v, nil
	})
	assert.True(t, child.Rejected())
	assert.Equal(t, wantErr, child.Reason())
	assert.Zero(t, calls.Load())

	// and chaining keeps working from the rejected child.
	grandchild := child.Then(nil)
	assert.True(t, grandchild.Rejected())
	assert.Equal(t, wantErr, grandchild.Reason())
}

func TestRejectionLeavesCarryUntouched(t *testing.T) {
	// a failing branch must not disturb the value carried to the next
	// promise in the chain.
	root := New(addOne, 1) // carry = 2
	bad := root.Then(func(v int) (int, error) {
		return 999, newStrError()
	})
	good := root.Then(timesTen)

	require.Eventually(t, fulfilled(good), waitTimeout, waitTick)
	assert.True(t, bad.Rejected())
	assert.Equal(t, 20, good.Value())
}

func TestValueReasonExclusive(t *testing.T) {
	t.Run("fulfilled", func(t *testing.T) {
		p := New(addOne, 1)
		require.Eventually(t, fulfilled(p), waitTimeout, waitTick)
		assert.Equal(t, 2, p.Value())
		assert.NoError(t, p.Reason())
	})

	t.Run("rejected", func(t *testing.T) {
		p := New(func(v int) (int, error) {
			return 123, newStrError()
		}, 1)
		require.Eventually(t, rejected(p), waitTimeout, waitTick)
		assert.Zero(t, p.Value())
		assert.Error(t, p.Reason())
	})
}

func TestConcurrentThen(t *testing.T) {
	// attachments from many goroutines must all land in the chain and
	// eventually resolve, whatever the interleaving.
	const attachers = 8
	const perAttacher = 50

	root := New(addOne, 0)
	proms := make(chan *Promise[int], attachers*perAttacher)
	for i := 0; i < attachers; i++ {
		go func() {
			p := root
			for j := 0; j < perAttacher; j++ {
				p = p.Then(addOne)
				proms <- p
			}
		}()
	}

	for i := 0; i < attachers*perAttacher; i++ {
		p := <-proms
		require.Eventually(t, fulfilled(p), waitTimeout, waitTick)
	}
}
