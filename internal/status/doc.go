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

// Package status represents values for the promise's status.
//
// The status is a single word holding the state of the promise, read and
// written atomically, so that state queries never need to take the tree's
// lock.
//
// The state has 3 mutually exclusive possible values:
//
//   - Pending: the promise's handler hasn't run yet, or is still running.
//
//   - Fulfilled: the promise's handler finished its work and returned a
//     value, with a nil error.
//
//   - Rejected: the promise's handler returned a non-nil error, caused a
//     panic, or an ancestor of the promise was rejected and the rejection
//     cascaded down to it.
//
// The state value is written once. Both Fulfilled and Rejected are terminal,
// which the Set methods enforce by updating the value only through a CAS
// from Pending. Writes happen while the owning tree's lock is held, but
// reads are valid from any goroutine, at any time.
package status
