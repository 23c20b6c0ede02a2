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
	"runtime"
	"sync"

	"github.com/asmsh/promisetree/internal/status"
)

// resolver is the per-tree core. It owns the tree's chain and the single
// lock that serializes every mutation in the tree, and its loop method is
// the tree's one worker goroutine.
type resolver[T any] struct {
	// mu guards the chain, every promise's children and rescuers lists,
	// and every promise's val/reason pair.
	mu sync.Mutex

	// grown is signaled on every chain append, to wake the loop when it
	// has caught up with the chain.
	grown *sync.Cond

	// chain is the tree-wide execution order: every promise of the tree,
	// root first, then in global attachment order. append-only.
	chain []*Promise[T]

	// seed is the input of the root's handler.
	seed T
}

func newResolver[T any](root *Promise[T], seed T) *resolver[T] {
	r := &resolver[T]{
		chain: []*Promise[T]{root},
		seed:  seed,
	}
	r.grown = sync.NewCond(&r.mu)
	return r
}

// loop walks the chain by position and settles each promise in turn, feeding
// each fulfilled value forward as the next handler's input. It never returns.
//
// Handler panics are recovered and turned into rejections, but a failure in
// the loop's own control logic is deliberately not recovered, and will crash
// the process.
func (r *resolver[T]) loop() {
	cursor := 0
	carry := r.seed

	for {
		// let concurrent attachments proceed before taking the lock again.
		runtime.Gosched()

		r.mu.Lock()
		for cursor >= len(r.chain) {
			r.grown.Wait()
		}
		curr := r.chain[cursor]
		r.mu.Unlock()

		// a cascade may have rejected curr before the cursor got here.
		// respect the pre-set state: no handler call, carry unchanged.
		if !status.IsStateRejected(curr.status.Load()) {
			val, err := invokeHandler(curr.handler, carry)
			if err != nil {
				curr.reject(err)
			} else if curr.fulfill(val) {
				carry = val
			}
		}

		cursor++
	}
}

// invokeHandler runs hd with the carried value, converting a panic into a
// PanicError return.
func invokeHandler[T any](hd Handler[T], carry T) (val T, err error) {
	defer func() {
		if v := recover(); v != nil {
			var zero T
			val, err = zero, PanicError{V: v}
		}
	}()
	return hd(carry)
}
