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
	"testing"

	"github.com/sudisk/torrust/core"
	"github.com/sudisk/torrust/index/auth"
	"github.com/sudisk/torrust/index/trackerclient"
	"github.com/sudisk/torrust/utils/httputil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func uploadFixture(
	t *testing.T, mocks *serverMocks, addr string, mi *core.MetaInfo) int64 {

	body, formType := uploadForm(
		t, "Test Torrent", "some description", "movie",
		mi.Encode(), "application/x-bittorrent")
	resp, err := httputil.Post(
		fmt.Sprintf("http://%s/torrent/upload", addr),
		httputil.SendBody(body),
		httputil.SendHeaders(map[string]string{"Content-Type": formType}))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result struct {
		Data uploadResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result.Data.TorrentID
}

func TestUploadTorrent(t *testing.T) {
	require := require.New(t)

	mocks, cleanup := newServerMocks(t)
	defer cleanup()

	mi := core.CustomMetaInfoFixture("http://uploader.example/announce", "ubuntu.iso")
	h := mi.InfoHash()

	mocks.expectUser(&auth.User{Username: "alice"})
	mocks.tracker.EXPECT().Stats(h).Return(trackerclient.Stats{Seeders: 5, Leechers: 2}, nil)
	mocks.tracker.EXPECT().Whitelist(h)

	addr := mocks.startServer()

	id := uploadFixture(t, mocks, addr, mi)
	require.NotZero(id)

	listing, err := mocks.store.GetTorrent(id)
	require.NoError(err)
	require.Equal("alice", listing.Uploader)
	require.Equal(h.Hex(), listing.InfoHash)
	require.Equal("Test Torrent", listing.Title)
	require.Equal(mi.FileSize(), listing.FileSize)
	require.Equal(int32(5), listing.Seeders)
	require.Equal(int32(2), listing.Leechers)

	// The stored blob carries the site tracker but the original info hash.
	b, err := mocks.torrents.Load(id)
	require.NoError(err)
	stored, err := core.ParseMetaInfo(b)
	require.NoError(err)
	require.Equal(_testTrackerURL, stored.Announce)
	require.Equal(h, stored.InfoHash())
}

func TestUploadTorrentStatsUnavailable(t *testing.T) {
	require := require.New(t)

	mocks, cleanup := newServerMocks(t)
	defer cleanup()

	mi := core.MetaInfoFixture()
	h := mi.InfoHash()

	mocks.expectUser(&auth.User{Username: "alice"})
	mocks.tracker.EXPECT().Stats(h).Return(
		trackerclient.Stats{}, errors.New("tracker down"))
	mocks.tracker.EXPECT().Whitelist(h).Return(errors.New("tracker down"))

	addr := mocks.startServer()

	id := uploadFixture(t, mocks, addr, mi)

	listing, err := mocks.store.GetTorrent(id)
	require.NoError(err)
	require.Zero(listing.Seeders)
	require.Zero(listing.Leechers)
}

func TestUploadTorrentDuplicate(t *testing.T) {
	require := require.New(t)

	mocks, cleanup := newServerMocks(t)
	defer cleanup()

	mi := core.MetaInfoFixture()

	mocks.expectUser(&auth.User{Username: "alice"})
	mocks.tracker.EXPECT().Stats(mi.InfoHash()).Return(trackerclient.Stats{}, nil).Times(2)
	mocks.tracker.EXPECT().Whitelist(mi.InfoHash())

	addr := mocks.startServer()

	uploadFixture(t, mocks, addr, mi)

	body, formType := uploadForm(
		t, "Test Torrent", "some description", "movie",
		mi.Encode(), "application/x-bittorrent")
	_, err := httputil.Post(
		fmt.Sprintf("http://%s/torrent/upload", addr),
		httputil.SendBody(body),
		httputil.SendHeaders(map[string]string{"Content-Type": formType}))
	require.Error(err)
	require.True(httputil.IsStatus(err, http.StatusBadRequest))
}

func TestUploadTorrentErrors(t *testing.T) {
	tests := []struct {
		desc     string
		user     *auth.User
		title    string
		category string
		torrent  []byte
		fileType string
		status   int
	}{
		{
			desc:   "anonymous",
			title:  "t", category: "movie",
			torrent:  core.MetaInfoFixture().Encode(),
			fileType: "application/x-bittorrent",
			status:   http.StatusUnauthorized,
		},
		{
			desc: "wrong file type",
			user: &auth.User{Username: "alice"},
			title: "t", category: "movie",
			torrent:  core.MetaInfoFixture().Encode(),
			fileType: "text/plain",
			status:   http.StatusBadRequest,
		},
		{
			desc: "missing title",
			user: &auth.User{Username: "alice"},
			category: "movie",
			torrent:  core.MetaInfoFixture().Encode(),
			fileType: "application/x-bittorrent",
			status:   http.StatusBadRequest,
		},
		{
			desc: "unknown category",
			user: &auth.User{Username: "alice"},
			title: "t", category: "haxx",
			torrent:  core.MetaInfoFixture().Encode(),
			fileType: "application/x-bittorrent",
			status:   http.StatusBadRequest,
		},
		{
			desc: "malformed torrent",
			user: &auth.User{Username: "alice"},
			title: "t", category: "movie",
			torrent:  []byte("not bencode at all"),
			fileType: "application/x-bittorrent",
			status:   http.StatusBadRequest,
		},
		{
			desc: "missing torrent",
			user: &auth.User{Username: "alice"},
			title: "t", category: "movie",
			fileType: "application/x-bittorrent",
			status:   http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			require := require.New(t)

			mocks, cleanup := newServerMocks(t)
			defer cleanup()

			mocks.expectUser(test.user)
			mocks.tracker.EXPECT().Stats(gomock.Any()).Return(
				trackerclient.Stats{}, nil).AnyTimes()
			mocks.tracker.EXPECT().Whitelist(gomock.Any()).AnyTimes()

			addr := mocks.startServer()

			body, formType := uploadForm(
				t, test.title, "d", test.category, test.torrent, test.fileType)
			_, err := httputil.Post(
				fmt.Sprintf("http://%s/torrent/upload", addr),
				httputil.SendBody(body),
				httputil.SendHeaders(map[string]string{"Content-Type": formType}))
			require.Error(err)
			require.True(httputil.IsStatus(err, test.status), "unexpected error: %s", err)
		})
	}
}

func TestUploadTorrentTooLarge(t *testing.T) {
	require := require.New(t)

	mocks, cleanup := newServerMocks(t)
	defer cleanup()

	mocks.config.MaxTorrentSize = 64

	mocks.expectUser(&auth.User{Username: "alice"})

	addr := mocks.startServer()

	body, formType := uploadForm(
		t, "t", "d", "movie",
		core.MultiFileMetaInfoFixture().Encode(), "application/x-bittorrent")
	_, err := httputil.Post(
		fmt.Sprintf("http://%s/torrent/upload", addr),
		httputil.SendBody(body),
		httputil.SendHeaders(map[string]string{"Content-Type": formType}))
	require.Error(err)
	require.True(httputil.IsStatus(err, http.StatusBadRequest))
}
