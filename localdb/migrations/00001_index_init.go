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
package migrations

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(up00001, down00001)
}

func up00001(tx *sql.Tx) error {
	if _, err := tx.Exec(
		`CREATE TABLE IF NOT EXISTS torrust_categories (
		category_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name        text NOT NULL UNIQUE
	);`); err != nil {
		return err
	}
	_, err := tx.Exec(
		`CREATE TABLE IF NOT EXISTS torrust_torrents (
		torrent_id  INTEGER PRIMARY KEY AUTOINCREMENT,
		uploader    text      NOT NULL,
		info_hash   text      NOT NULL UNIQUE,
		title       text      NOT NULL,
		category_id integer   NOT NULL,
		description text      NOT NULL DEFAULT '',
		upload_date timestamp NOT NULL,
		file_size   integer   NOT NULL,
		seeders     integer   NOT NULL DEFAULT 0,
		leechers    integer   NOT NULL DEFAULT 0,
		FOREIGN KEY(category_id) REFERENCES torrust_categories(category_id)
	);`)
	return err
}

func down00001(tx *sql.Tx) error {
	if _, err := tx.Exec(`DROP TABLE torrust_torrents;`); err != nil {
		return err
	}
	_, err := tx.Exec(`DROP TABLE torrust_categories;`)
	return err
}
