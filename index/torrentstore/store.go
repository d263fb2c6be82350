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

// Package torrentstore persists encoded .torrent files on local disk, keyed
// by torrent id. Paths are built from ids only; no user-controlled component
// ever participates.
package torrentstore

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/satori/go.uuid"
)

// ErrNotFound is returned when no torrent file exists for an id.
var ErrNotFound = errors.New("torrent file not found")

// Store stores torrent files under a single upload directory.
type Store struct {
	dir string
}

// New creates a new Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir}
}

// Save atomically writes the torrent file for id. Readers never observe a
// partial file: content is written to a temporary file in the same directory
// and renamed into place.
func (s *Store) Save(id int64, b []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create upload dir: %s", err)
	}
	tmp := filepath.Join(s.dir, fmt.Sprintf(".%d.%s.tmp", id, uuid.NewV4().String()))
	if err := ioutil.WriteFile(tmp, b, 0644); err != nil {
		return fmt.Errorf("write temp file: %s", err)
	}
	if err := os.Rename(tmp, s.path(id)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %s", err)
	}
	return nil
}

// Load reads the torrent file for id. Returns ErrNotFound if it does not
// exist.
func (s *Store) Load(id int64) ([]byte, error) {
	b, err := ioutil.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read torrent file: %s", err)
	}
	return b, nil
}

// Delete removes the torrent file for id. Removing a file which does not
// exist is not an error.
func (s *Store) Delete(id int64) error {
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove torrent file: %s", err)
	}
	return nil
}

func (s *Store) path(id int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.torrent", id))
}
