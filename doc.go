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

// Package promise provides a promise tree with a single, serialized resolver.
//
// A Promise represents the eventual result of one step of an asynchronous
// computation. Promises are organized into a tree: chaining from any promise,
// through Then, creates a new dependent child promise. Every tree owns one
// chain, a root-owned, append-only sequence that every Then call across the
// whole tree appends to, and one resolver, a background goroutine that walks
// the chain in attachment order and runs each promise's handler, feeding each
// handler's output forward as the next handler's input.
//
// A Promise has three states, and it can be in only one of them, at any time:
// Pending: the handler that corresponds to this Promise has not finished.
// Fulfilled: the handler has finished and returned a value, with a nil error.
// Rejected: the handler returned a non-nil error or panicked, the promise was
// chained from an already-rejected promise, or an ancestor of the promise was
// rejected and the rejection cascaded down to it.
//
//
// General Notes:-
//
// * Once a Promise is Fulfilled or Rejected, its state and result will never
// change.
//
// * State queries (Pending, Fulfilled, Rejected, State) and result accessors
// (Value, Reason) are safe to call from any goroutine, and never block.
// There is no blocking await call; callers observe a settled state by polling
// or through their own synchronization.
//
// * All handlers and rescue handlers of a tree run on that tree's resolver
// goroutine, one at a time, in the global order their promises were attached
// in. Handler code doesn't need to be safe for concurrent use.
//
// * Because every branch of a tree shares the one chain, execution order
// across sibling or cousin branches is the global attachment order, not a
// per-branch order. A promise attached earlier from one branch runs before a
// promise attached later from a different branch.
//
//
// Rejection Notes:-
//
// * A handler that returns a non-nil error rejects its promise with that
// error as the reason.
//
// * A handler that panics rejects its promise with a PanicError wrapping the
// panic value as the reason.
//
// * Rejecting a promise eagerly rejects all of its already-attached
// descendants with the same reason, at the moment of rejection, before the
// resolver reaches their chain slots. Their handlers are never invoked.
//
// * Rescue handlers registered on a promise, through Rescue, Catch, or
// OnError, are consulted only when that promise itself transitions from
// Pending to Rejected by its own handler's failure. Descendants rejected by
// a cascade don't run their own rescue handlers.
//
//
// Lifetime Notes:-
//
// * A tree's resolver goroutine runs for the lifetime of the process. There
// is no way to stop it, and no cancellation or timeout support.
//
// * A failure escaping the resolver's own control logic (anything outside a
// handler invocation, which is always recovered) is not recovered. It crashes
// the resolver goroutine, and with it the process. Such a failure is a
// programming error in this package, not a recoverable condition.
package promise
