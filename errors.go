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

import "fmt"

// PanicError wraps a panic that happened inside a promise's handler.
// It becomes the rejection reason of that promise, and of every descendant
// the rejection cascades into.
type PanicError struct {
	// V is the value the handler panicked with.
	V any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("promise: handler panicked: %v", e.V)
}
