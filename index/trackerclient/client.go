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

// Package trackerclient talks to the private tracker's management API. It is
// deliberately narrow: the index only ever whitelists info hashes, reads
// per-torrent peer counts, and mints per-user announce URLs.
package trackerclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/sudisk/torrust/core"
	"github.com/sudisk/torrust/utils/backoff"
	"github.com/sudisk/torrust/utils/httputil"
)

const _timeout = 15 * time.Second

// Stats are live peer counts for a single torrent.
type Stats struct {
	Seeders  int32 `json:"seeders"`
	Leechers int32 `json:"leechers"`
}

// Client defines tracker operations required by the index.
type Client interface {
	Whitelist(h core.InfoHash) error
	Stats(h core.InfoHash) (Stats, error)
	PersonalAnnounceURL(username string) (string, error)
}

// Config defines HTTPClient configuration.
type Config struct {
	// AnnounceURL is the public announce endpoint stamped into torrents.
	AnnounceURL string `yaml:"announce_url"`

	// APIURL is the base URL of the tracker management API.
	APIURL string `yaml:"api_url"`

	// Token authenticates the index against the management API.
	Token string `yaml:"token"`

	Backoff backoff.Config `yaml:"backoff"`
}

// HTTPClient implements Client over the tracker's HTTP management API.
type HTTPClient struct {
	config  Config
	backoff *backoff.Backoff
}

// New creates a new HTTPClient.
func New(config Config) *HTTPClient {
	return &HTTPClient{config, backoff.New(config.Backoff)}
}

// Whitelist registers h with the tracker so peers may announce it.
func (c *HTTPClient) Whitelist(h core.InfoHash) error {
	_, err := httputil.Post(
		c.apiURL("whitelist", h.Hex()),
		httputil.SendTimeout(_timeout),
		httputil.SendRetry(c.backoff))
	if err != nil {
		return fmt.Errorf("whitelist %s: %s", h.Hex(), err)
	}
	return nil
}

// Stats returns live seeder / leecher counts for h.
func (c *HTTPClient) Stats(h core.InfoHash) (Stats, error) {
	resp, err := httputil.Get(
		c.apiURL("torrent", h.Hex()),
		httputil.SendTimeout(_timeout))
	if err != nil {
		return Stats{}, fmt.Errorf("torrent stats %s: %s", h.Hex(), err)
	}
	defer resp.Body.Close()
	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %s", err)
	}
	return stats, nil
}

// PersonalAnnounceURL mints an announce URL carrying a key bound to username,
// enabling per-user accounting on the tracker.
func (c *HTTPClient) PersonalAnnounceURL(username string) (string, error) {
	resp, err := httputil.Post(
		c.apiURL("key", username),
		httputil.SendTimeout(_timeout),
		httputil.SendRetry(c.backoff))
	if err != nil {
		return "", fmt.Errorf("personal key for %s: %s", username, err)
	}
	defer resp.Body.Close()
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode key: %s", err)
	}
	if body.Key == "" {
		return "", fmt.Errorf("tracker returned empty key for %s", username)
	}
	return fmt.Sprintf("%s/%s", c.config.AnnounceURL, body.Key), nil
}

func (c *HTTPClient) apiURL(parts ...string) string {
	u := c.config.APIURL + "/api"
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u + "?token=" + url.QueryEscape(c.config.Token)
}
