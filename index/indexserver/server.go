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
	"fmt"
	"net/http"

	"github.com/sudisk/torrust/index/auth"
	"github.com/sudisk/torrust/index/store"
	"github.com/sudisk/torrust/index/torrentstore"
	"github.com/sudisk/torrust/index/trackerclient"
	"github.com/sudisk/torrust/lib/middleware"
	"github.com/sudisk/torrust/utils/handler"
	"github.com/sudisk/torrust/utils/listener"
	"github.com/sudisk/torrust/utils/log"

	"github.com/go-chi/chi"
	"github.com/uber-go/tally"
)

// Server defines the index HTTP server.
type Server struct {
	config   Config
	stats    tally.Scope
	store    *store.Store
	torrents *torrentstore.Store
	tracker  trackerclient.Client
	auth     auth.Authenticator
	settings *Settings
}

// New creates a new Server.
func New(
	config Config,
	stats tally.Scope,
	store *store.Store,
	torrents *torrentstore.Store,
	tracker trackerclient.Client,
	authn auth.Authenticator,
) *Server {

	config = config.applyDefaults()
	stats = stats.Tagged(map[string]string{
		"module": "indexserver",
	})
	settings := NewSettings(SiteSettings{
		TrackerURL:     config.TrackerURL,
		KeepExtraTiers: config.KeepExtraTiers,
	})
	return &Server{config, stats, store, torrents, tracker, authn, settings}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.LatencyTimer(s.stats))
	r.Use(middleware.HitCounter(s.stats))

	r.Get("/health", handler.Wrap(s.healthHandler))

	r.Post("/torrent/upload", handler.Wrap(s.uploadTorrentHandler))
	r.Get("/torrent/download/{id}", handler.Wrap(s.downloadTorrentHandler))
	r.Get("/torrent/{id}", handler.Wrap(s.getTorrentHandler))
	r.Put("/torrent/{id}", handler.Wrap(s.updateTorrentHandler))
	r.Delete("/torrent/{id}", handler.Wrap(s.deleteTorrentHandler))

	r.Get("/torrents", handler.Wrap(s.listTorrentsHandler))
	r.Get("/category", handler.Wrap(s.listCategoriesHandler))

	r.Get("/settings", handler.Wrap(s.getSettingsHandler))
	r.Put("/settings", handler.Wrap(s.updateSettingsHandler))

	return r
}

// ListenAndServe is a blocking call which runs s.
func (s *Server) ListenAndServe() error {
	log.Infof("Starting index server on %s", s.config.Listener)
	return listener.Serve(s.config.Listener, s.Handler())
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) error {
	if err := s.store.Ping(); err != nil {
		return handler.Errorf("database unavailable: %s", err).Status(http.StatusServiceUnavailable)
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func (s *Server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := s.store.Categories()
	if err != nil {
		return handler.Errorf("list categories: %s", err)
	}
	return writeJSON(w, categories)
}

// user resolves the requester, or nil when the request is anonymous.
func (s *Server) user(r *http.Request) *auth.User {
	u, err := s.auth.UserFromRequest(r)
	if err != nil {
		return nil
	}
	return u
}
