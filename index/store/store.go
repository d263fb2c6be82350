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

// Package store persists torrent listings and categories in the index
// database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andres-erbsen/clock"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Store errors.
var (
	ErrNotFound = errors.New("torrent not found")
	ErrConflict = errors.New("torrent already exists")
)

// TorrentListing is a single row of the torrust_torrents table.
type TorrentListing struct {
	TorrentID   int64     `db:"torrent_id" json:"torrent_id"`
	Uploader    string    `db:"uploader" json:"uploader"`
	InfoHash    string    `db:"info_hash" json:"info_hash"`
	Title       string    `db:"title" json:"title"`
	CategoryID  int       `db:"category_id" json:"category_id"`
	Description string    `db:"description" json:"description"`
	UploadDate  time.Time `db:"upload_date" json:"upload_date"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	Seeders     int32     `db:"seeders" json:"seeders"`
	Leechers    int32     `db:"leechers" json:"leechers"`
}

// Category is a single row of the torrust_categories table.
type Category struct {
	CategoryID int    `db:"category_id" json:"category_id"`
	Name       string `db:"name" json:"name"`
}

// Store provides access to torrent listings.
type Store struct {
	db  *sqlx.DB
	clk clock.Clock
}

// New creates a new Store.
func New(db *sqlx.DB, clk clock.Clock) *Store {
	return &Store{db, clk}
}

// Ping checks database connectivity.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// CreateTorrent inserts t and invokes save with the assigned torrent id
// within the same transaction. The row is committed only if save succeeds,
// so a failed blob write never leaves an orphaned row behind. Returns
// ErrConflict if a torrent with the same info hash already exists.
func (s *Store) CreateTorrent(t *TorrentListing, save func(id int64) error) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %s", err)
	}
	res, err := tx.Exec(`
		INSERT INTO torrust_torrents (
			uploader, info_hash, title, category_id, description,
			upload_date, file_size, seeders, leechers
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Uploader, t.InfoHash, t.Title, t.CategoryID, t.Description,
		s.clk.Now().UTC(), t.FileSize, t.Seeders, t.Leechers)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("insert torrent: %s", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("last insert id: %s", err)
	}
	if save != nil {
		if err := save(id); err != nil {
			tx.Rollback()
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %s", err)
	}
	return id, nil
}

// GetTorrent returns the listing for id. Returns ErrNotFound if no such
// torrent exists.
func (s *Store) GetTorrent(id int64) (*TorrentListing, error) {
	var t TorrentListing
	if err := s.db.Get(&t, `
		SELECT * FROM torrust_torrents WHERE torrent_id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select torrent: %s", err)
	}
	return &t, nil
}

// UpdateTorrentDescription replaces the description of id. Returns
// ErrNotFound if no row was affected.
func (s *Store) UpdateTorrentDescription(id int64, description string) error {
	res, err := s.db.Exec(`
		UPDATE torrust_torrents SET description = ? WHERE torrent_id = ?`,
		description, id)
	if err != nil {
		return fmt.Errorf("update torrent: %s", err)
	}
	return checkAffected(res)
}

// DeleteTorrent removes the listing for id. Returns ErrNotFound if no row
// was affected.
func (s *Store) DeleteTorrent(id int64) error {
	res, err := s.db.Exec(`
		DELETE FROM torrust_torrents WHERE torrent_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete torrent: %s", err)
	}
	return checkAffected(res)
}

// GetCategoryID resolves a category name. Returns ErrNotFound for unknown
// names.
func (s *Store) GetCategoryID(name string) (int, error) {
	var id int
	if err := s.db.Get(&id, `
		SELECT category_id FROM torrust_categories WHERE name = ?`, name); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("select category: %s", err)
	}
	return id, nil
}

// Categories returns all categories ordered by name.
func (s *Store) Categories() ([]Category, error) {
	var cs []Category
	if err := s.db.Select(&cs, `
		SELECT category_id, name FROM torrust_categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select categories: %s", err)
	}
	return cs, nil
}

// VerifyCategories filters names down to those which exist in the category
// table. Unknown names are silently dropped; user input never reaches SQL
// unverified.
func (s *Store) VerifyCategories(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
		SELECT name FROM torrust_categories WHERE name IN (?)`, names)
	if err != nil {
		return nil, fmt.Errorf("expand category query: %s", err)
	}
	var verified []string
	if err := s.db.Select(&verified, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("verify categories: %s", err)
	}
	return verified, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %s", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if se, ok := err.(sqlite3.Error); ok {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
