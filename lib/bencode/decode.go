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
package bencode

import (
	"errors"
	"fmt"
	"strconv"
)

// maxDepth bounds list / dict nesting so that hostile inputs cannot blow the
// stack.
const maxDepth = 64

// Decode errors.
var (
	ErrTruncated = errors.New("bencode: truncated input")
	ErrTrailing  = errors.New("bencode: trailing bytes after value")
)

// SyntaxError describes a malformed bencode input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: offset %d: %s", e.Pos, e.Msg)
}

func syntaxErrorf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Decode parses a single bencode value from b. The entire input must be
// consumed. Dictionaries must have unique keys in lexicographic byte order.
// Every decoded value retains the raw bytes it spans.
func Decode(b []byte) (*Value, error) {
	v, next, err := decodeAny(b, 0, 0)
	if err != nil {
		return nil, err
	}
	if next != len(b) {
		return nil, ErrTrailing
	}
	return v, nil
}

func decodeAny(buf []byte, pos, depth int) (*Value, int, error) {
	if depth > maxDepth {
		return nil, 0, syntaxErrorf(pos, "nesting deeper than %d", maxDepth)
	}
	if pos >= len(buf) {
		return nil, 0, ErrTruncated
	}
	switch c := buf[pos]; {
	case c == 'i':
		return decodeInt(buf, pos)
	case c >= '0' && c <= '9':
		return decodeStr(buf, pos)
	case c == 'l':
		return decodeList(buf, pos, depth)
	case c == 'd':
		return decodeDict(buf, pos, depth)
	default:
		return nil, 0, syntaxErrorf(pos, "unexpected byte %q", c)
	}
}

func decodeInt(buf []byte, pos int) (*Value, int, error) {
	end := pos + 1
	for end < len(buf) && buf[end] != 'e' {
		end++
	}
	if end >= len(buf) {
		return nil, 0, ErrTruncated
	}
	digits := string(buf[pos+1 : end])
	if len(digits) == 0 {
		return nil, 0, syntaxErrorf(pos, "empty integer")
	}
	if digits == "-0" || (len(digits) > 1 && digits[0] == '0') ||
		(len(digits) > 2 && digits[0] == '-' && digits[1] == '0') {
		return nil, 0, syntaxErrorf(pos, "integer with leading zero")
	}
	i, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, 0, syntaxErrorf(pos, "bad integer %q", digits)
	}
	v := &Value{kind: Int, i: i, raw: buf[pos : end+1]}
	return v, end + 1, nil
}

func decodeStr(buf []byte, pos int) (*Value, int, error) {
	sep := pos
	for sep < len(buf) && buf[sep] != ':' {
		sep++
	}
	if sep >= len(buf) {
		return nil, 0, ErrTruncated
	}
	digits := string(buf[pos:sep])
	if len(digits) > 1 && digits[0] == '0' {
		return nil, 0, syntaxErrorf(pos, "string length with leading zero")
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return nil, 0, syntaxErrorf(pos, "bad string length %q", digits)
	}
	start := sep + 1
	end := start + int(n)
	if n > int64(len(buf)) || end > len(buf) {
		return nil, 0, ErrTruncated
	}
	v := &Value{kind: Str, s: buf[start:end], raw: buf[pos:end]}
	return v, end, nil
}

func decodeList(buf []byte, pos, depth int) (*Value, int, error) {
	var items []*Value
	i := pos + 1
	for {
		if i >= len(buf) {
			return nil, 0, ErrTruncated
		}
		if buf[i] == 'e' {
			break
		}
		item, next, err := decodeAny(buf, i, depth+1)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		i = next
	}
	v := &Value{kind: List, l: items, raw: buf[pos : i+1]}
	return v, i + 1, nil
}

func decodeDict(buf []byte, pos, depth int) (*Value, int, error) {
	var entries []DictEntry
	var prevKey string
	i := pos + 1
	for {
		if i >= len(buf) {
			return nil, 0, ErrTruncated
		}
		if buf[i] == 'e' {
			break
		}
		if buf[i] < '0' || buf[i] > '9' {
			return nil, 0, syntaxErrorf(i, "dictionary key must be a string")
		}
		keyVal, next, err := decodeStr(buf, i)
		if err != nil {
			return nil, 0, err
		}
		key := string(keyVal.Bytes())
		if len(entries) > 0 {
			if key == prevKey {
				return nil, 0, syntaxErrorf(i, "duplicate dictionary key %q", key)
			}
			if key < prevKey {
				return nil, 0, syntaxErrorf(i, "dictionary key %q out of order", key)
			}
		}
		val, next, err := decodeAny(buf, next, depth+1)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, DictEntry{Key: key, Value: val})
		prevKey = key
		i = next
	}
	v := &Value{kind: Dict, d: entries, raw: buf[pos : i+1]}
	return v, i + 1, nil
}
