// Copyright (c) 2016-2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package localdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		source := filepath.Join(t.TempDir(), "test.db")

		db, err := New(Config{Source: source})
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Ping())

		// Verify migrations ran.
		var tables []string
		err = db.Select(&tables, `
			SELECT name FROM sqlite_master
			WHERE type='table' AND name NOT LIKE 'goose_%' AND name NOT LIKE 'sqlite_%'
			ORDER BY name`)
		require.NoError(t, err)
		assert.Contains(t, tables, "torrust_torrents")
		assert.Contains(t, tables, "torrust_categories")

		// Default categories are seeded.
		var n int
		require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM torrust_categories`))
		assert.True(t, n > 0)
	})

	t.Run("error invalid path", func(t *testing.T) {
		tmpfile := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(tmpfile, []byte("x"), 0644))

		db, err := New(Config{Source: filepath.Join(tmpfile, "db.sqlite")})
		assert.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "ensure db source present")
	})

	t.Run("max open conns is one", func(t *testing.T) {
		source := filepath.Join(t.TempDir(), "test.db")

		db, err := New(Config{Source: source})
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	})
}
