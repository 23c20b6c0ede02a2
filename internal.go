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

// fulfill settles p with val, and returns true if it did.
//
// It returns false only if a cascade rejected p while its handler was
// running, in which case the rejection wins and val is discarded.
func (p *Promise[T]) fulfill(val T) bool {
	r := p.root.res
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, _ := p.status.SetFulfilled(); !set {
		return false
	}
	p.val = val
	return true
}

// reject settles p with reason, eagerly cascades the rejection through p's
// current subtree, and then dispatches p's rescuers, if p was still pending.
//
// This is the only path that settles a promise from outside the resolver
// goroutine: a handler failure on the resolver, or a Then call against an
// already-rejected promise, both end up here (or in rejectLocked directly).
func (p *Promise[T]) reject(reason error) {
	r := p.root.res
	r.mu.Lock()
	transitioned := p.rejectLocked(reason)
	var rescuers []rescuer
	if transitioned {
		// snapshot under the lock. the slice is append-only, so the
		// snapshot stays valid after unlocking.
		rescuers = p.rescuers
	}
	r.mu.Unlock()

	if transitioned {
		dispatchRescuers(rescuers, reason)
	}
}

// rejectLocked transitions p to rejected, if it's still pending, and then,
// unconditionally, walks into all of p's current children, so that every
// already-attached descendant reads as rejected before the resolver ever
// reaches its chain slot.
//
// Cascaded descendants don't get their own rescuer dispatch; only the
// promise that failed on its own does, from reject.
//
// The caller must hold the tree's lock.
func (p *Promise[T]) rejectLocked(reason error) (transitioned bool) {
	if set, _ := p.status.SetRejected(); set {
		p.reason = reason
		var zero T
		p.val = zero
		transitioned = true
	}
	for _, child := range p.children {
		child.rejectLocked(reason)
	}
	return transitioned
}
