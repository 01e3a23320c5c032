// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package bytealg implements ASCII byte-set scanning used by the charmatch
// fast paths.
package bytealg

import "unicode/utf8"

// ASCIISet is a 128-bit bitset of ASCII bytes. Bytes >= utf8.RuneSelf are
// never members.
type ASCIISet [4]uint32

// MakeASCIISet returns the set of the bytes of chars that are ASCII. The
// second result is false if chars contains any non-ASCII byte.
func MakeASCIISet(chars string) (as ASCIISet, ok bool) {
	ok = true
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		if c >= utf8.RuneSelf {
			ok = false
			continue
		}
		as.Add(c)
	}
	return as, ok
}

// Add adds c to the set, ignoring non-ASCII bytes.
func (as *ASCIISet) Add(c byte) {
	if c < utf8.RuneSelf {
		as[c/32] |= 1 << (c % 32)
	}
}

// Contains reports whether c is in the set.
func (as *ASCIISet) Contains(c byte) bool {
	return c < utf8.RuneSelf && (as[c/32]&(1<<(c%32))) != 0
}

// Union returns the set of bytes in either as or other.
func (as ASCIISet) Union(other ASCIISet) ASCIISet {
	for i := range as {
		as[i] |= other[i]
	}
	return as
}

// Intersect returns the set of bytes in both as and other.
func (as ASCIISet) Intersect(other ASCIISet) ASCIISet {
	for i := range as {
		as[i] &= other[i]
	}
	return as
}

// Complement returns the set of ASCII bytes not in as.
func (as ASCIISet) Complement() ASCIISet {
	for i := range as {
		as[i] = ^as[i]
	}
	return as
}

// Len returns the number of bytes in the set.
func (as *ASCIISet) Len() int {
	n := 0
	for c := 0; c < utf8.RuneSelf; c++ {
		if as.Contains(byte(c)) {
			n++
		}
	}
	return n
}

// IndexNonASCII returns the index of the first non-ASCII byte in s or -1.
func IndexNonASCII(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i]&utf8.RuneSelf != 0 {
			return i
		}
	}
	return -1
}

// Index returns the index of the first byte of s in as or -1.
func Index(s string, as *ASCIISet) int {
	for i := 0; i < len(s); i++ {
		if as.Contains(s[i]) {
			return i
		}
	}
	return -1
}

// IndexNot returns the index of the first byte of s not in as or -1.
func IndexNot(s string, as *ASCIISet) int {
	for i := 0; i < len(s); i++ {
		if !as.Contains(s[i]) {
			return i
		}
	}
	return -1
}

// LastIndex returns the index of the last byte of s in as or -1.
func LastIndex(s string, as *ASCIISet) int {
	for i := len(s) - 1; i >= 0; i-- {
		if as.Contains(s[i]) {
			return i
		}
	}
	return -1
}

// Count returns the number of bytes of s in as.
func Count(s string, as *ASCIISet) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if as.Contains(s[i]) {
			n++
		}
	}
	return n
}
