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

package status

import "sync/atomic"

var (
	cas  = atomic.CompareAndSwapUint32
	load = atomic.LoadUint32
)

// PromStatus holds the value that defines and represents the state of the
// promise.
// It's read and written/updated atomically.
//
// The zero value is a valid status, describing a pending promise.
type PromStatus uint32

// the state's values. statePending must be the zero value.
const (
	statePending uint32 = iota
	stateFulfilled
	stateRejected
)

// Load returns the current status value.
func (s *PromStatus) Load() uint32 {
	return load((*uint32)(s))
}

// SetFulfilled sets the state to Fulfilled, only if it's still Pending.
// It returns true only if this call is the one that settled the promise,
// along with the up-to-date status value.
func (s *PromStatus) SetFulfilled() (set bool, status uint32) {
	if cas((*uint32)(s), statePending, stateFulfilled) {
		return true, stateFulfilled
	}
	return false, s.Load()
}

// SetRejected sets the state to Rejected, only if it's still Pending.
// It returns true only if this call is the one that settled the promise,
// along with the up-to-date status value.
func (s *PromStatus) SetRejected() (set bool, status uint32) {
	if cas((*uint32)(s), statePending, stateRejected) {
		return true, stateRejected
	}
	return false, s.Load()
}
