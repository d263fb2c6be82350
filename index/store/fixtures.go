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
package store

import (
	"fmt"

	"github.com/sudisk/torrust/core"
	"github.com/sudisk/torrust/localdb"
	"github.com/sudisk/torrust/utils/randutil"
	"github.com/sudisk/torrust/utils/testutil"

	"github.com/andres-erbsen/clock"
)

// Fixture returns a Store backed by a temporary SQLite database.
func Fixture() (*Store, func()) {
	var cleanup testutil.Cleanup
	defer cleanup.Recover()

	db, c := localdb.Fixture()
	cleanup.Add(c)

	return New(db, clock.New()), cleanup.Run
}

// TorrentListingFixture returns a listing with a random info hash, using one
// of the seeded category ids.
func TorrentListingFixture(s *Store) *TorrentListing {
	id, err := s.GetCategoryID("movie")
	if err != nil {
		panic(err)
	}
	return &TorrentListing{
		Uploader:    "alice",
		InfoHash:    core.InfoHashFixture().Hex(),
		Title:       fmt.Sprintf("torrent-%s", randutil.Text(6)),
		CategoryID:  id,
		Description: "a test torrent",
		FileSize:    12345,
	}
}
