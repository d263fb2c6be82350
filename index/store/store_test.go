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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndGetTorrent(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	fixture := TorrentListingFixture(s)
	id, err := s.CreateTorrent(fixture, nil)
	require.NoError(err)
	require.True(id > 0)

	got, err := s.GetTorrent(id)
	require.NoError(err)
	require.Equal(fixture.Uploader, got.Uploader)
	require.Equal(fixture.InfoHash, got.InfoHash)
	require.Equal(fixture.Title, got.Title)
	require.Equal(fixture.FileSize, got.FileSize)
	require.False(got.UploadDate.IsZero())
}

func TestGetTorrentNotFound(t *testing.T) {
	s, cleanup := Fixture()
	defer cleanup()

	_, err := s.GetTorrent(999)
	require.Equal(t, ErrNotFound, err)
}

func TestCreateTorrentConflict(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	fixture := TorrentListingFixture(s)
	_, err := s.CreateTorrent(fixture, nil)
	require.NoError(err)

	dup := TorrentListingFixture(s)
	dup.InfoHash = fixture.InfoHash
	_, err = s.CreateTorrent(dup, nil)
	require.Equal(ErrConflict, err)
}

func TestCreateTorrentRollsBackOnSaveError(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	saveErr := errors.New("disk full")
	var saved int64
	_, err := s.CreateTorrent(TorrentListingFixture(s), func(id int64) error {
		saved = id
		return saveErr
	})
	require.Equal(saveErr, err)
	require.True(saved > 0)

	// The insert must not have been committed.
	_, err = s.GetTorrent(saved)
	require.Equal(ErrNotFound, err)
}

func TestUpdateTorrentDescription(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	id, err := s.CreateTorrent(TorrentListingFixture(s), nil)
	require.NoError(err)

	require.NoError(s.UpdateTorrentDescription(id, "new description"))

	got, err := s.GetTorrent(id)
	require.NoError(err)
	require.Equal("new description", got.Description)

	require.Equal(ErrNotFound, s.UpdateTorrentDescription(id+1, "x"))
}

func TestDeleteTorrent(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	id, err := s.CreateTorrent(TorrentListingFixture(s), nil)
	require.NoError(err)

	require.NoError(s.DeleteTorrent(id))
	_, err = s.GetTorrent(id)
	require.Equal(ErrNotFound, err)

	require.Equal(ErrNotFound, s.DeleteTorrent(id))
}

func TestGetCategoryID(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	id, err := s.GetCategoryID("movie")
	require.NoError(err)
	require.True(id > 0)

	_, err = s.GetCategoryID("no such category")
	require.Equal(ErrNotFound, err)
}

func TestVerifyCategories(t *testing.T) {
	require := require.New(t)

	s, cleanup := Fixture()
	defer cleanup()

	verified, err := s.VerifyCategories([]string{"movie", "bogus", "app"})
	require.NoError(err)
	require.ElementsMatch([]string{"movie", "app"}, verified)

	verified, err = s.VerifyCategories(nil)
	require.NoError(err)
	require.Empty(verified)

	// Injection attempts are just unknown category names.
	verified, err = s.VerifyCategories([]string{"movie' OR 1=1--"})
	require.NoError(err)
	require.Empty(verified)
}
