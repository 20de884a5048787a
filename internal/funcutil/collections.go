// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package funcutil holds small generic collection helpers: set merges,
// slice predicates, and deterministic set-to-slice conversion. No other
// package of this module imports it.
package funcutil

import (
	"cmp"
	"sort"
)

// Merge merges b into a: if x is only in b, a[x] := b[x]; if x is in both,
// a[x] := both(a[x], b[x]).
// @mutates a
func Merge[T comparable, S any](a map[T]S, b map[T]S, both func(x, y S) S) {
	for x, yb := range b {
		if ya, ok := a[x]; ok {
			a[x] = both(ya, yb)
		} else {
			a[x] = yb
		}
	}
}

// Union returns the union of map-represented sets a and b, mutating a.
// @mutates a
func Union[T comparable](a map[T]bool, b map[T]bool) map[T]bool {
	Merge(a, b, func(x, y bool) bool { return x || y })
	return a
}

// Exists returns true when some x in a satisfies f.
func Exists[T any](a []T, f func(T) bool) bool {
	for _, x := range a {
		if f(x) {
			return true
		}
	}
	return false
}

// Contains returns true when x occurs in a.
func Contains[T comparable](a []T, x T) bool {
	return Exists(a, func(y T) bool { return x == y })
}

// Map returns a new slice b such that b[i] = f(a[i]).
func Map[T, S any](a []T, f func(T) S) []S {
	b := make([]S, len(a))
	for i, x := range a {
		b[i] = f(x)
	}
	return b
}

// SetToOrderedSlice converts a set represented as a map to true into a
// slice sorted in increasing order.
func SetToOrderedSlice[T cmp.Ordered](set map[T]bool) []T {
	var s []T
	for r, b := range set {
		if b {
			s = append(s, r)
		}
	}
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

// Reverse reverses a in place.
func Reverse[T any](a []T) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
