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
package core

import (
	"fmt"

	"github.com/sudisk/torrust/lib/bencode"
	"github.com/sudisk/torrust/utils/randutil"
)

// MetaInfoFixture returns a single-file MetaInfo with random pieces.
func MetaInfoFixture() *MetaInfo {
	return CustomMetaInfoFixture("http://tracker.example.com/announce", fmt.Sprintf("%s.mkv", randutil.Text(8)))
}

// CustomMetaInfoFixture returns a single-file MetaInfo with the given
// announce URL and name.
func CustomMetaInfoFixture(announce, name string) *MetaInfo {
	b := bencode.Encode(bencode.NewDict(
		bencode.DictEntry{Key: "announce", Value: bencode.NewString(announce)},
		bencode.DictEntry{Key: "info", Value: bencode.NewDict(
			bencode.DictEntry{Key: "length", Value: bencode.NewInt(12345)},
			bencode.DictEntry{Key: "name", Value: bencode.NewString(name)},
			bencode.DictEntry{Key: "piece length", Value: bencode.NewInt(16384)},
			bencode.DictEntry{Key: "pieces", Value: bencode.NewStr(randutil.Text(20))},
		)},
	))
	mi, err := ParseMetaInfo(b)
	if err != nil {
		panic(err)
	}
	return mi
}

// MultiFileMetaInfoFixture returns a two-file MetaInfo with an announce-list.
func MultiFileMetaInfoFixture() *MetaInfo {
	b := bencode.Encode(bencode.NewDict(
		bencode.DictEntry{Key: "announce", Value: bencode.NewString("http://tracker.example.com/announce")},
		bencode.DictEntry{Key: "announce-list", Value: bencode.NewList(
			bencode.NewList(bencode.NewString("http://tracker.example.com/announce")),
			bencode.NewList(bencode.NewString("udp://backup.example.com:6969")),
		)},
		bencode.DictEntry{Key: "info", Value: bencode.NewDict(
			bencode.DictEntry{Key: "files", Value: bencode.NewList(
				bencode.NewDict(
					bencode.DictEntry{Key: "length", Value: bencode.NewInt(100)},
					bencode.DictEntry{Key: "path", Value: bencode.NewList(bencode.NewString("a.txt"))},
				),
				bencode.NewDict(
					bencode.DictEntry{Key: "length", Value: bencode.NewInt(200)},
					bencode.DictEntry{Key: "path", Value: bencode.NewList(bencode.NewString("sub"), bencode.NewString("b.txt"))},
				),
			)},
			bencode.DictEntry{Key: "name", Value: bencode.NewString(string(randutil.Text(8)))},
			bencode.DictEntry{Key: "piece length", Value: bencode.NewInt(16384)},
			bencode.DictEntry{Key: "pieces", Value: bencode.NewStr(randutil.Text(40))},
		)},
	))
	mi, err := ParseMetaInfo(b)
	if err != nil {
		panic(err)
	}
	return mi
}

// InfoHashFixture returns a random InfoHash.
func InfoHashFixture() InfoHash {
	return MetaInfoFixture().InfoHash()
}
