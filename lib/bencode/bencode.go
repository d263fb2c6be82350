// Copyright (c) 2016-2019 Uber Technologies, Inc.
//
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

// Package bencode implements a strict bencode codec. Decoded values remember
// the exact byte span they were parsed from, which lets callers hash or
// re-emit subtrees (in particular the info dictionary of a torrent) without
// re-serialization.
package bencode

import "fmt"

// Kind enumerates the four bencode value kinds.
type Kind int

// Value kinds.
const (
	Int Kind = iota
	Str
	List
	Dict
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Str:
		return "str"
	case List:
		return "list"
	case Dict:
		return "dict"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// DictEntry is a single key / value pair of a dictionary. Entries are kept in
// their wire order, which for valid bencode is lexicographic key order.
type DictEntry struct {
	Key   string
	Value *Value
}

// Value is a single bencode value. Values produced by Decode carry the raw
// bytes they were decoded from; values built via the New* constructors do not.
type Value struct {
	kind Kind
	i    int64
	s    []byte
	l    []*Value
	d    []DictEntry

	// raw is the exact wire image of this value, if known. Encode emits it
	// verbatim when present.
	raw []byte
}

// NewInt creates an integer value.
func NewInt(i int64) *Value {
	return &Value{kind: Int, i: i}
}

// NewStr creates a byte string value.
func NewStr(s []byte) *Value {
	return &Value{kind: Str, s: s}
}

// NewString creates a byte string value from a Go string.
func NewString(s string) *Value {
	return NewStr([]byte(s))
}

// NewList creates a list value.
func NewList(items ...*Value) *Value {
	return &Value{kind: List, l: items}
}

// NewDict creates a dictionary value. Entries must already be in lexicographic
// key order; Encode does not sort.
func NewDict(entries ...DictEntry) *Value {
	return &Value{kind: Dict, d: entries}
}

// NewRaw wraps an already-bencoded byte string; Encode emits it verbatim.
// The caller is responsible for raw being valid bencode.
func NewRaw(raw []byte) *Value {
	return &Value{raw: raw}
}

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	return v.kind
}

// Int returns the integer payload. Only valid for Int values.
func (v *Value) Int() int64 {
	return v.i
}

// Bytes returns the byte string payload. Only valid for Str values.
func (v *Value) Bytes() []byte {
	return v.s
}

// List returns the list items. Only valid for List values.
func (v *Value) List() []*Value {
	return v.l
}

// Dict returns the dictionary entries in wire order. Only valid for Dict
// values.
func (v *Value) Dict() []DictEntry {
	return v.d
}

// Get looks up key in a dictionary value.
func (v *Value) Get(key string) (*Value, bool) {
	for _, e := range v.d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Raw returns the exact bytes v was decoded from, or nil if v was built
// programmatically.
func (v *Value) Raw() []byte {
	return v.raw
}
