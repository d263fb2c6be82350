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
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/sudisk/torrust/core"
	"github.com/sudisk/torrust/index/store"
	"github.com/sudisk/torrust/utils/log"
)

// uploadRequest holds the decoded fields of a torrent upload form.
type uploadRequest struct {
	title       string
	description string
	category    string
	torrent     []byte
}

// parseUploadRequest streams the multipart form, buffering only the torrent
// part, which is capped at maxSize bytes.
func parseUploadRequest(r *http.Request, maxSize int64) (*uploadRequest, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, badRequestf("parse multipart form: %s", err)
	}
	var req uploadRequest
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, badRequestf("read multipart form: %s", err)
		}
		switch part.FormName() {
		case "title", "description", "category":
			v, err := ioutil.ReadAll(io.LimitReader(part, 4096))
			if err != nil {
				return nil, badRequestf("read %s field: %s", part.FormName(), err)
			}
			switch part.FormName() {
			case "title":
				req.title = string(v)
			case "description":
				req.description = string(v)
			case "category":
				req.category = string(v)
			}
		case "torrent":
			if ct := part.Header.Get("Content-Type"); ct != "application/x-bittorrent" {
				return nil, invalidFileTypeError(ct)
			}
			b, err := ioutil.ReadAll(io.LimitReader(part, maxSize+1))
			if err != nil {
				return nil, badRequestf("read torrent file: %s", err)
			}
			if int64(len(b)) > maxSize {
				return nil, invalidTorrentFileError(
					fmt.Errorf("exceeds maximum size of %d bytes", maxSize))
			}
			req.torrent = b
		}
		part.Close()
	}
	if strings.TrimSpace(req.title) == "" {
		return nil, badRequestf("missing title field")
	}
	if req.category == "" {
		return nil, badRequestf("missing category field")
	}
	if req.torrent == nil {
		return nil, badRequestf("missing torrent field")
	}
	return &req, nil
}

func (s *Server) uploadTorrentHandler(w http.ResponseWriter, r *http.Request) error {
	u := s.user(r)
	if u == nil {
		return unauthorizedf("upload requires authentication")
	}
	req, err := parseUploadRequest(r, int64(s.config.MaxTorrentSize.Bytes()))
	if err != nil {
		return err
	}
	mi, err := core.ParseMetaInfo(req.torrent)
	if err != nil {
		return invalidTorrentFileError(err)
	}

	site := s.settings.Snapshot()
	mi.ApplySiteConfig(site.TrackerURL, site.KeepExtraTiers)

	categoryID, err := s.store.GetCategoryID(req.category)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidCategoryError(req.category)
		}
		return fmt.Errorf("get category: %s", err)
	}

	h := mi.InfoHash()

	// Stats are best effort. A cold tracker just means the listing starts
	// at zero until the next stats refresh.
	var seeders, leechers int32
	if stats, err := s.tracker.Stats(h); err != nil {
		log.With("info_hash", h.Hex()).Infof("Error fetching tracker stats: %s", err)
	} else {
		seeders, leechers = stats.Seeders, stats.Leechers
	}

	listing := &store.TorrentListing{
		Uploader:    u.Username,
		InfoHash:    h.Hex(),
		Title:       req.title,
		CategoryID:  categoryID,
		Description: req.description,
		FileSize:    mi.FileSize(),
		Seeders:     seeders,
		Leechers:    leechers,
	}
	id, err := s.store.CreateTorrent(listing, func(id int64) error {
		return s.torrents.Save(id, mi.Encode())
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return badRequestf("torrent with info hash %s already exists", h.Hex())
		}
		return fmt.Errorf("create torrent: %s", err)
	}

	if err := s.tracker.Whitelist(h); err != nil {
		log.With("info_hash", h.Hex()).Errorf("Error whitelisting torrent: %s", err)
	}

	return writeJSON(w, uploadResponse{TorrentID: id})
}
