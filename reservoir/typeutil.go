// Copyright 2026 The reservoir-go Authors.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reservoir

import "reflect"

// isNilItem reports whether item is a nilable value (pointer, interface,
// slice, map, chan, or func) that is currently nil. For non-nilable types,
// such as plain structs or numeric types, it always returns false: Go gives
// those no representation of absence, so NullItem cannot apply to them.
func isNilItem[T any](item T) bool {
	v := reflect.ValueOf(item)
	switch v.Kind() {
	case reflect.Invalid:
		// A nil interface value has no dynamic type, so ValueOf reports it
		// as the zero Value.
		return true
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
