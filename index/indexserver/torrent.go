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
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sudisk/torrust/core"
	"github.com/sudisk/torrust/index/store"
	"github.com/sudisk/torrust/index/torrentstore"
	"github.com/sudisk/torrust/utils/log"

	"github.com/go-chi/chi"
)

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, badRequestf("parse torrent id: %s", err)
	}
	return id, nil
}

// loadMetaInfo reads the stored .torrent blob for id.
func (s *Server) loadMetaInfo(id int64) (*core.MetaInfo, error) {
	b, err := s.torrents.Load(id)
	if err != nil {
		return nil, fmt.Errorf("load torrent file: %s", err)
	}
	mi, err := core.ParseMetaInfo(b)
	if err != nil {
		return nil, fmt.Errorf("parse torrent file: %s", err)
	}
	return mi, nil
}

// announceURLs flattens a torrent's trackers in tier order, deduplicated.
func announceURLs(mi *core.MetaInfo) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	add(mi.Announce)
	for _, tier := range mi.AnnounceList {
		for _, u := range tier {
			add(u)
		}
	}
	return urls
}

// prependTracker puts head first, dropping any duplicate further down.
func prependTracker(head string, urls []string) []string {
	result := []string{head}
	for _, u := range urls {
		if u != head {
			result = append(result, u)
		}
	}
	return result
}

func (s *Server) getTorrentHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	listing, err := s.store.GetTorrent(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return torrentNotFoundError(id)
		}
		return fmt.Errorf("get torrent: %s", err)
	}
	h, err := core.NewInfoHashFromHex(listing.InfoHash)
	if err != nil {
		return fmt.Errorf("parse stored info hash: %s", err)
	}

	resp := TorrentResponse{TorrentListing: *listing}

	// The stored file is the source of truth for files and trackers. A
	// missing blob degrades the detail view instead of failing it.
	if mi, err := s.loadMetaInfo(id); err != nil {
		log.With("torrent_id", id).Errorf("Error loading torrent file: %s", err)
	} else {
		resp.Files = mi.Files()
		resp.Trackers = announceURLs(mi)
	}

	// Authenticated users see their personal announce URL first so the
	// magnet link is directly usable. Anonymous users get the site tracker.
	head := s.settings.Snapshot().TrackerURL
	if u := s.user(r); u != nil {
		personal, err := s.tracker.PersonalAnnounceURL(u.Username)
		if err != nil {
			return trackerUnavailableError(err)
		}
		head = personal
	}
	resp.Trackers = prependTracker(head, resp.Trackers)

	if stats, err := s.tracker.Stats(h); err != nil {
		log.With("info_hash", h.Hex()).Infof("Error fetching tracker stats: %s", err)
	} else {
		resp.Seeders = stats.Seeders
		resp.Leechers = stats.Leechers
	}

	resp.MagnetLink = magnetLink(listing, h, resp.Trackers)

	return writeJSON(w, resp)
}

type updateTorrentRequest struct {
	Description string `json:"description"`
}

func (s *Server) updateTorrentHandler(w http.ResponseWriter, r *http.Request) error {
	u := s.user(r)
	if u == nil {
		return unauthorizedf("update requires authentication")
	}
	id, err := parseID(r)
	if err != nil {
		return err
	}
	var req updateTorrentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequestf("decode request body: %s", err)
	}
	listing, err := s.store.GetTorrent(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return torrentNotFoundError(id)
		}
		return fmt.Errorf("get torrent: %s", err)
	}
	if listing.Uploader != u.Username && !u.Administrator {
		return unauthorizedf("user %s may not update torrent %d", u.Username, id)
	}
	if err := s.store.UpdateTorrentDescription(id, req.Description); err != nil {
		return fmt.Errorf("update torrent: %s", err)
	}
	listing.Description = req.Description
	return writeJSON(w, listing)
}

func (s *Server) deleteTorrentHandler(w http.ResponseWriter, r *http.Request) error {
	u := s.user(r)
	if u == nil || !u.Administrator {
		return unauthorizedf("delete requires administrator")
	}
	id, err := parseID(r)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTorrent(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return torrentNotFoundError(id)
		}
		return fmt.Errorf("delete torrent: %s", err)
	}
	// The row is gone either way, so a stale blob only wastes disk.
	if err := s.torrents.Delete(id); err != nil {
		log.With("torrent_id", id).Errorf("Error deleting torrent file: %s", err)
	}
	return writeJSON(w, struct {
		TorrentID int64 `json:"torrent_id"`
	}{id})
}

func (s *Server) downloadTorrentHandler(w http.ResponseWriter, r *http.Request) error {
	u := s.user(r)
	if u == nil {
		return unauthorizedf("download requires authentication")
	}
	id, err := parseID(r)
	if err != nil {
		return err
	}
	b, err := s.torrents.Load(id)
	if err != nil {
		if errors.Is(err, torrentstore.ErrNotFound) {
			return torrentNotFoundError(id)
		}
		return fmt.Errorf("load torrent file: %s", err)
	}
	mi, err := core.ParseMetaInfo(b)
	if err != nil {
		return fmt.Errorf("parse stored torrent file: %s", err)
	}
	personal, err := s.tracker.PersonalAnnounceURL(u.Username)
	if err != nil {
		return trackerUnavailableError(err)
	}
	mi.Personalize(personal)

	w.Header().Set("Content-Type", "application/x-bittorrent")
	w.Header().Set(
		"Content-Disposition", fmt.Sprintf("attachment; filename=%d.torrent", id))
	if _, err := w.Write(mi.Encode()); err != nil {
		return fmt.Errorf("write response: %s", err)
	}
	return nil
}
