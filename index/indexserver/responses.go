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
package indexserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sudisk/torrust/core"
	"github.com/sudisk/torrust/index/store"
	"github.com/sudisk/torrust/utils/handler"
)

// okResponse is the envelope every successful JSON response is wrapped in.
type okResponse struct {
	Data interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(okResponse{v}); err != nil {
		return handler.Errorf("encode response: %s", err)
	}
	return nil
}

// uploadResponse is the payload returned after a successful upload.
type uploadResponse struct {
	TorrentID int64 `json:"torrent_id"`
}

// TorrentResponse is a single torrent's full detail payload.
type TorrentResponse struct {
	store.TorrentListing
	Files      []core.FileInfo `json:"files"`
	Trackers   []string        `json:"trackers"`
	MagnetLink string          `json:"magnet_link"`
}

// magnetLink builds a magnet URI for a listing, embedding the trackers the
// requester is entitled to announce to.
func magnetLink(l *store.TorrentListing, h core.InfoHash, trackers []string) string {
	link := fmt.Sprintf("magnet:?xt=urn:btih:%s&dn=%s", h.Hex(), url.QueryEscape(l.Title))
	for _, t := range trackers {
		link += "&tr=" + url.QueryEscape(t)
	}
	return link
}
