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
	"errors"
	"reflect"
)

// panic messages
const (
	nilRescueHandlerPanicMsg = "promise: the provided rescue handler is nil"
	badRescueTargetPanicMsg  = "promise: the rescue target must be a non-nil" +
		" pointer to a type implementing error, or to any interface type"
)

// rescuer is one registered (failure type, handler) pair.
type rescuer struct {
	match  func(reason error) bool
	handle func(reason error)
}

// Rescue registers the handler h to be called if p is rejected with a reason
// matching target, and returns p, to allow registering further rescuers.
//
// The target follows the errors.As convention: a pointer to either a type
// implementing error or an interface type. A reason matches if errors.As
// would match it against the target, so interface targets catch every reason
// type that satisfies them, and wrapped reasons are traversed. A nil target
// matches any reason.
//
// Rescuers are consulted in registration order when p itself transitions to
// rejected, and only the first one that matches the reason runs, on the
// tree's resolver goroutine. A promise rejected by an ancestor's cascade
// doesn't consult its rescuers. A panic inside a rescue handler is recovered
// and discarded.
//
// It will panic if a nil handler is passed, or if target is neither nil nor
// a valid errors.As target.
func (p *Promise[T]) Rescue(target any, h func(reason error)) *Promise[T] {
	if h == nil {
		panic(nilRescueHandlerPanicMsg)
	}
	rs := rescuer{match: matcherOf(target), handle: h}

	r := p.root.res
	r.mu.Lock()
	p.rescuers = append(p.rescuers, rs)
	r.mu.Unlock()
	return p
}

// Catch is an alias for Rescue, with identical semantics.
func (p *Promise[T]) Catch(target any, h func(reason error)) *Promise[T] {
	return p.Rescue(target, h)
}

// OnError is an alias for Rescue, with identical semantics.
func (p *Promise[T]) OnError(target any, h func(reason error)) *Promise[T] {
	return p.Rescue(target, h)
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// matcherOf builds the match function of a rescue target, validating the
// target up front, at registration, the same way errors.As would at use.
func matcherOf(target any) func(reason error) bool {
	if target == nil {
		return matchAny
	}

	typ := reflect.TypeOf(target)
	if typ.Kind() != reflect.Pointer {
		panic(badRescueTargetPanicMsg)
	}
	elem := typ.Elem()
	if elem.Kind() != reflect.Interface && !elem.Implements(errType) {
		panic(badRescueTargetPanicMsg)
	}

	return func(reason error) bool {
		// a fresh target value per match, so the caller's target is
		// never written to, and matches don't leak into each other.
		return errors.As(reason, reflect.New(elem).Interface())
	}
}

func matchAny(error) bool { return true }

// dispatchRescuers scans the rescuers in registration order and runs the
// first one matching reason. No match means no-op.
func dispatchRescuers(rescuers []rescuer, reason error) {
	for _, rs := range rescuers {
		if rs.match(reason) {
			runRescueHandler(rs.handle, reason)
			return
		}
	}
}

// runRescueHandler runs h with reason, recovering and discarding any panic,
// since a rescue handler's failure must not surface anywhere.
func runRescueHandler(h func(reason error), reason error) {
	defer func() { _ = recover() }()
	h(reason)
}
