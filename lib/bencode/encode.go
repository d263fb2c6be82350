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
	"bytes"
	"strconv"
)

// Encode serializes v deterministically. Values which carry a raw wire image
// (i.e. values produced by Decode) are emitted byte-for-byte, so
// Encode(Decode(b)) == b for any canonical input b.
func Encode(v *Value) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, v)
	return buf.Bytes()
}

func encodeValue(buf *bytes.Buffer, v *Value) {
	if v.raw != nil {
		buf.Write(v.raw)
		return
	}
	switch v.kind {
	case Int:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(v.i, 10))
		buf.WriteByte('e')
	case Str:
		buf.WriteString(strconv.Itoa(len(v.s)))
		buf.WriteByte(':')
		buf.Write(v.s)
	case List:
		buf.WriteByte('l')
		for _, item := range v.l {
			encodeValue(buf, item)
		}
		buf.WriteByte('e')
	case Dict:
		buf.WriteByte('d')
		for _, e := range v.d {
			buf.WriteString(strconv.Itoa(len(e.Key)))
			buf.WriteByte(':')
			buf.WriteString(e.Key)
			encodeValue(buf, e.Value)
		}
		buf.WriteByte('e')
	}
}
