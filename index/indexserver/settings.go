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
	"net/http"
	"sync"
)

// SiteSettings are the site-wide values handlers need per request. Handlers
// take a value snapshot up front and never touch the lock again, so the lock
// is never held across database, tracker or filesystem calls.
type SiteSettings struct {
	TrackerURL     string
	KeepExtraTiers bool
}

// Settings guards read-mostly site settings.
type Settings struct {
	mu sync.RWMutex
	s  SiteSettings
}

// NewSettings creates a new Settings.
func NewSettings(s SiteSettings) *Settings {
	return &Settings{s: s}
}

// Snapshot returns a copy of the current settings.
func (s *Settings) Snapshot() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.s
}

// Update replaces the current settings.
func (s *Settings) Update(v SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = v
}

type siteSettingsResponse struct {
	TrackerURL     string `json:"tracker_url"`
	KeepExtraTiers bool   `json:"keep_extra_tiers"`
}

func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) error {
	u := s.user(r)
	if u == nil || !u.Administrator {
		return unauthorizedf("settings require administrator")
	}
	site := s.settings.Snapshot()
	return writeJSON(w, siteSettingsResponse{site.TrackerURL, site.KeepExtraTiers})
}

// updateSettingsHandler changes site settings for subsequent uploads. Already
// stored torrents keep the announce they were stamped with.
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) error {
	u := s.user(r)
	if u == nil || !u.Administrator {
		return unauthorizedf("settings require administrator")
	}
	var req siteSettingsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequestf("decode request body: %s", err)
	}
	if req.TrackerURL == "" {
		return badRequestf("missing tracker_url field")
	}
	s.settings.Update(SiteSettings{
		TrackerURL:     req.TrackerURL,
		KeepExtraTiers: req.KeepExtraTiers,
	})
	return writeJSON(w, req)
}
