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
	"bytes"
	"errors"
	"io/ioutil"
	"mime/multipart"
	"net/textproto"
	"os"
	"testing"

	"github.com/sudisk/torrust/index/auth"
	"github.com/sudisk/torrust/index/store"
	"github.com/sudisk/torrust/index/torrentstore"
	mockauth "github.com/sudisk/torrust/mocks/index/auth"
	mocktrackerclient "github.com/sudisk/torrust/mocks/index/trackerclient"
	"github.com/sudisk/torrust/utils/testutil"

	"github.com/golang/mock/gomock"
	"github.com/uber-go/tally"
)

const _testTrackerURL = "http://tracker.test/announce"

var errNoUser = errors.New("no user")

type serverMocks struct {
	config   Config
	store    *store.Store
	torrents *torrentstore.Store
	tracker  *mocktrackerclient.MockClient
	auth     *mockauth.MockAuthenticator
	cleanup  *testutil.Cleanup
}

func newServerMocks(t *testing.T) (*serverMocks, func()) {
	var cleanup testutil.Cleanup
	defer cleanup.Recover()

	ctrl := gomock.NewController(t)
	cleanup.Add(ctrl.Finish)

	s, c := store.Fixture()
	cleanup.Add(c)

	dir, err := ioutil.TempDir("", "torrentstore-test-")
	if err != nil {
		panic(err)
	}
	cleanup.Add(func() { os.RemoveAll(dir) })

	return &serverMocks{
		config: Config{
			TrackerURL: _testTrackerURL,
		},
		store:    s,
		torrents: torrentstore.New(dir),
		tracker:  mocktrackerclient.NewMockClient(ctrl),
		auth:     mockauth.NewMockAuthenticator(ctrl),
		cleanup:  &cleanup,
	}, cleanup.Run
}

func (m *serverMocks) server() *Server {
	return New(
		m.config,
		tally.NewTestScope("testing", nil),
		m.store,
		m.torrents,
		m.tracker,
		m.auth)
}

func (m *serverMocks) startServer() string {
	addr, stop := testutil.StartServer(m.server().Handler())
	m.cleanup.Add(stop)
	return addr
}

// expectUser makes every authentication attempt resolve to u. A nil u means
// anonymous requests.
func (m *serverMocks) expectUser(u *auth.User) {
	if u == nil {
		m.auth.EXPECT().UserFromRequest(gomock.Any()).Return(
			nil, errNoUser).AnyTimes()
		return
	}
	m.auth.EXPECT().UserFromRequest(gomock.Any()).Return(u, nil).AnyTimes()
}

// uploadForm builds a multipart upload body. contentType overrides the
// torrent part's declared type.
func uploadForm(
	t *testing.T,
	title, description, category string,
	torrent []byte,
	contentType string) (body *bytes.Buffer, formType string) {

	body = new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range map[string]string{
		"title":       title,
		"description": description,
		"category":    category,
	} {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if torrent != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="torrent"; filename="test.torrent"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(torrent); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}
