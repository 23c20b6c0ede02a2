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
	"fmt"

	"github.com/asmsh/promisetree/internal/status"
)

// Handler is the computation of a single Promise. It receives the output of
// the previous promise in the chain, and its return value becomes the input
// of the next. Returning a non-nil error rejects the promise with that error.
type Handler[T any] func(val T) (T, error)

// identityHandler is the default handler, used when a nil Handler is passed.
func identityHandler[T any](val T) (T, error) {
	return val, nil
}

// Promise represents the eventual result of one step of an asynchronous
// computation, within a tree of dependent promises.
//
// The zero value is not usable; promises are created by New, NewPromise,
// or Then.
type Promise[T any] struct {
	// root is the root promise of the tree this promise belongs to.
	// it points back to the promise itself on a root.
	// it's set at creation and never changes, so it's read without the lock.
	root *Promise[T]

	// parent is the promise this one was chained from, nil on a root.
	parent *Promise[T]

	// handler is this promise's computation. set at creation, never nil.
	handler Handler[T]

	// children are the promises chained from this one, in attachment order.
	// appended to only by Then, under the tree's lock.
	children []*Promise[T]

	// rescuers are the registered rescue handlers, in registration order.
	// appended to only by Rescue (and its aliases), under the tree's lock.
	rescuers []rescuer

	// res is the tree's resolver. non-nil only on a root; every other
	// promise reaches it through root.
	res *resolver[T]

	// holds the state of the promise.
	// refer to the docs of the PromStatus type for more info.
	status status.PromStatus

	// val holds the result of the promise, iff it's fulfilled.
	// reason holds the failure of the promise, iff it's rejected.
	// both are written under the tree's lock, and at most once.
	val    T
	reason error
}

// New constructs and starts a new promise tree, returning its root.
//
// The root's handler, hd, will be called with the seed value, and its output
// will feed the first promise chained from the root. A nil hd stands for the
// identity handler.
//
// The tree's resolver goroutine is started before New returns, and runs for
// the lifetime of the process.
func New[T any](hd Handler[T], seed T) *Promise[T] {
	if hd == nil {
		hd = identityHandler[T]
	}
	p := &Promise[T]{handler: hd}
	p.root = p
	p.res = newResolver(p, seed)
	go p.res.loop()
	return p
}

// NewPromise constructs and starts a new promise tree whose values are
// dynamically typed, returning its root.
//
// It's a convenience wrapper around New that collapses the initial inputs
// into the root's seed value: no inputs seed a nil value, a single input
// seeds as-is, and multiple inputs are collected, in order, into a []any.
func NewPromise(hd Handler[any], vals ...any) *Promise[any] {
	var seed any
	switch len(vals) {
	case 0:
	case 1:
		seed = vals[0]
	default:
		seed = append(make([]any, 0, len(vals)), vals...)
	}
	return New(hd, seed)
}

// Then chains a new promise from p, whose handler, hd, will receive the
// output of p's handler, and returns it.
//
// The new promise is appended to the tree's chain, so it runs after every
// promise attached, anywhere in the tree, before it. A nil hd stands for the
// identity handler.
//
// If p is already rejected, the new promise is immediately rejected with p's
// reason, and hd is never invoked.
//
// It's safe to call Then from any goroutine, including from inside handlers.
func (p *Promise[T]) Then(hd Handler[T]) *Promise[T] {
	if hd == nil {
		hd = identityHandler[T]
	}

	child := &Promise[T]{
		root:    p.root,
		parent:  p,
		handler: hd,
	}

	// the child creation, both list appends, and the pre-rejection check
	// must form one critical section, so that the chain order, the child
	// order, and the cascade stay consistent with each other.
	r := p.root.res
	r.mu.Lock()
	p.children = append(p.children, child)
	r.chain = append(r.chain, child)
	if status.IsStateRejected(p.status.Load()) {
		// chaining from a rejected promise rejects the child right away.
		// the child is brand new, so there's no subtree to cascade into
		// and no rescuers to dispatch.
		child.rejectLocked(p.reason)
	}
	r.grown.Signal()
	r.mu.Unlock()

	return child
}

// Fulfilled returns true, only if the state of the promise is Fulfilled.
func (p *Promise[T]) Fulfilled() bool {
	return status.IsStateFulfilled(p.status.Load())
}

// Rejected returns true, only if the state of the promise is Rejected.
func (p *Promise[T]) Rejected() bool {
	return status.IsStateRejected(p.status.Load())
}

// Pending returns true, only if the promise is neither Fulfilled nor
// Rejected.
func (p *Promise[T]) Pending() bool {
	return status.IsStatePending(p.status.Load())
}

// State returns the state of the promise.
func (p *Promise[T]) State() State {
	s := p.status.Load()
	switch {
	case status.IsStateFulfilled(s):
		return Fulfilled
	case status.IsStateRejected(s):
		return Rejected
	default:
		return Pending
	}
}

// Value returns the result of the promise, if it's fulfilled, otherwise the
// zero value of T.
//
// It doesn't block. To observe the eventual result, callers poll until the
// promise is no longer Pending.
func (p *Promise[T]) Value() T {
	r := p.root.res
	r.mu.Lock()
	defer r.mu.Unlock()
	return p.val
}

// Reason returns the failure of the promise, if it's rejected, otherwise nil.
//
// It doesn't block. To observe the eventual failure, callers poll until the
// promise is no longer Pending.
func (p *Promise[T]) Reason() error {
	r := p.root.res
	r.mu.Lock()
	defer r.mu.Unlock()
	return p.reason
}

func (p *Promise[T]) String() string {
	switch p.State() {
	case Fulfilled:
		return fmt.Sprintf("fulfilled: %v", p.Value())
	case Rejected:
		return fmt.Sprintf("rejected: %s", p.Reason().Error())
	default:
		return "pending"
	}
}
