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

// IsStatePending returns true if the state of the status value is Pending.
func IsStatePending(status uint32) bool {
	return status == statePending
}

// IsStateFulfilled returns true if the state of the status value is Fulfilled.
func IsStateFulfilled(status uint32) bool {
	return status == stateFulfilled
}

// IsStateRejected returns true if the state of the status value is Rejected.
func IsStateRejected(status uint32) bool {
	return status == stateRejected
}

// IsStateSettled returns true if the state of the status value is either
// Fulfilled or Rejected.
func IsStateSettled(status uint32) bool {
	return status != statePending
}
