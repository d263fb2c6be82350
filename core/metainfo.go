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
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/sudisk/torrust/lib/bencode"

	bencodego "github.com/jackpal/bencode-go"
)

const pieceHashSize = 20

// FileInfo describes a single file of a multi-file torrent.
type FileInfo struct {
	Path   []string `bencode:"path" json:"path"`
	Length int64    `bencode:"length" json:"length"`
	MD5Sum string   `bencode:"md5sum" json:"md5sum,omitempty"`
}

// Info is the typed view of a torrent info dictionary. Exactly one of Length
// (single-file mode) or Files (multi-file mode) is set.
type Info struct {
	Name        string     `bencode:"name"`
	PieceLength int64      `bencode:"piece length"`
	Pieces      string     `bencode:"pieces"`
	Length      int64      `bencode:"length"`
	Files       []FileInfo `bencode:"files"`
}

// MultiFile returns true if the torrent describes multiple files.
func (info *Info) MultiFile() bool {
	return len(info.Files) > 0
}

// NumPieces returns the number of pieces in the torrent.
func (info *Info) NumPieces() int {
	return len(info.Pieces) / pieceHashSize
}

// MetaInfo is a parsed .torrent file. The info dictionary is carried as the
// exact bytes it was parsed from; announce fields may be rewritten freely
// without disturbing the info hash.
type MetaInfo struct {
	Announce     string
	AnnounceList [][]string
	Info         Info

	// rawInfo is the canonical bencode image of the info dictionary.
	rawInfo []byte

	// extra holds any top-level keys other than announce, announce-list and
	// info, preserved byte-for-byte so that re-encoding a canonical torrent
	// is lossless.
	extra []bencode.DictEntry
}

// ParseMetaInfo decodes a .torrent file.
func ParseMetaInfo(b []byte) (*MetaInfo, error) {
	root, err := bencode.Decode(b)
	if err != nil {
		return nil, err
	}
	if root.Kind() != bencode.Dict {
		return nil, errors.New("root is not a dictionary")
	}
	infoVal, ok := root.Get("info")
	if !ok {
		return nil, errors.New("missing info dictionary")
	}
	if infoVal.Kind() != bencode.Dict {
		return nil, errors.New("info is not a dictionary")
	}

	mi := &MetaInfo{rawInfo: infoVal.Raw()}
	if err := bencodego.Unmarshal(bytes.NewReader(mi.rawInfo), &mi.Info); err != nil {
		return nil, fmt.Errorf("unmarshal info: %s", err)
	}
	if err := validateInfo(infoVal, &mi.Info); err != nil {
		return nil, err
	}

	for _, e := range root.Dict() {
		switch e.Key {
		case "announce":
			if e.Value.Kind() != bencode.Str {
				return nil, errors.New("announce is not a string")
			}
			mi.Announce = string(e.Value.Bytes())
		case "announce-list":
			tiers, err := parseAnnounceList(e.Value)
			if err != nil {
				return nil, err
			}
			mi.AnnounceList = tiers
		case "info":
		default:
			mi.extra = append(mi.extra, e)
		}
	}
	return mi, nil
}

func validateInfo(infoVal *bencode.Value, info *Info) error {
	if info.Name == "" {
		return errors.New("info: missing name")
	}
	if info.PieceLength <= 0 {
		return errors.New("info: piece length must be positive")
	}
	if len(info.Pieces) == 0 || len(info.Pieces)%pieceHashSize != 0 {
		return fmt.Errorf("info: pieces length %d is not a multiple of %d",
			len(info.Pieces), pieceHashSize)
	}
	_, hasLength := infoVal.Get("length")
	_, hasFiles := infoVal.Get("files")
	if hasLength == hasFiles {
		return errors.New("info: expected exactly one of length or files")
	}
	if hasFiles && len(info.Files) == 0 {
		return errors.New("info: empty files list")
	}
	for _, f := range info.Files {
		if len(f.Path) == 0 {
			return errors.New("info: file with empty path")
		}
	}
	return nil
}

func parseAnnounceList(v *bencode.Value) ([][]string, error) {
	if v.Kind() != bencode.List {
		return nil, errors.New("announce-list is not a list")
	}
	var tiers [][]string
	for _, tierVal := range v.List() {
		if tierVal.Kind() != bencode.List {
			return nil, errors.New("announce-list tier is not a list")
		}
		var tier []string
		for _, urlVal := range tierVal.List() {
			if urlVal.Kind() != bencode.Str {
				return nil, errors.New("announce-list url is not a string")
			}
			tier = append(tier, string(urlVal.Bytes()))
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// InfoHash returns the SHA1 of the info dictionary as it appeared on the
// wire. Announce rewrites never affect it.
func (mi *MetaInfo) InfoHash() InfoHash {
	return NewInfoHashFromBytes(mi.rawInfo)
}

// FileSize returns the total number of bytes described by the torrent.
func (mi *MetaInfo) FileSize() int64 {
	if !mi.Info.MultiFile() {
		return mi.Info.Length
	}
	var total int64
	for _, f := range mi.Info.Files {
		total += f.Length
	}
	return total
}

// Files returns the torrent contents as a file list. Single-file torrents are
// presented as one file named after the torrent.
func (mi *MetaInfo) Files() []FileInfo {
	if mi.Info.MultiFile() {
		return mi.Info.Files
	}
	return []FileInfo{{Path: []string{mi.Info.Name}, Length: mi.Info.Length}}
}

// ApplySiteConfig makes trackerURL the authoritative announce of the torrent.
// The site tracker becomes the first announce-list tier; any tiers the
// uploader supplied survive only if keepExtraTiers is set.
func (mi *MetaInfo) ApplySiteConfig(trackerURL string, keepExtraTiers bool) {
	mi.Announce = trackerURL
	tiers := [][]string{{trackerURL}}
	if keepExtraTiers {
		tiers = append(tiers, mi.AnnounceList...)
	}
	mi.AnnounceList = tiers
}

// Personalize points the torrent at a per-user announce URL.
func (mi *MetaInfo) Personalize(announceURL string) {
	mi.Announce = announceURL
	if mi.AnnounceList != nil {
		mi.AnnounceList = append([][]string{{announceURL}}, mi.AnnounceList...)
	}
}

// Encode serializes mi back to canonical bencode. The info dictionary is
// emitted byte-identical to the parsed input.
func (mi *MetaInfo) Encode() []byte {
	entries := make(map[string]*bencode.Value)
	if mi.Announce != "" {
		entries["announce"] = bencode.NewString(mi.Announce)
	}
	if mi.AnnounceList != nil {
		var tiers []*bencode.Value
		for _, tier := range mi.AnnounceList {
			var urls []*bencode.Value
			for _, u := range tier {
				urls = append(urls, bencode.NewString(u))
			}
			tiers = append(tiers, bencode.NewList(urls...))
		}
		entries["announce-list"] = bencode.NewList(tiers...)
	}
	entries["info"] = bencode.NewRaw(mi.rawInfo)
	for _, e := range mi.extra {
		entries[e.Key] = e.Value
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var dict []bencode.DictEntry
	for _, k := range keys {
		dict = append(dict, bencode.DictEntry{Key: k, Value: entries[k]})
	}
	return bencode.Encode(bencode.NewDict(dict...))
}
