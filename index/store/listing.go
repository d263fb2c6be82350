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

	"github.com/jmoiron/sqlx"
)

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

// sortOrders is the closed set of accepted sort keys. Anything else falls
// back to defaultSortOrder.
var sortOrders = map[string]string{
	"uploaded_ASC":  "upload_date ASC",
	"uploaded_DESC": "upload_date DESC",
	"seeders_ASC":   "seeders ASC",
	"seeders_DESC":  "seeders DESC",
	"leechers_ASC":  "leechers ASC",
	"leechers_DESC": "leechers DESC",
	"name_ASC":      "title ASC",
	"name_DESC":     "title DESC",
	"size_ASC":      "file_size ASC",
	"size_DESC":     "file_size DESC",
}

const defaultSortOrder = "upload_date DESC"

// Filter selects and orders a page of torrent listings.
type Filter struct {
	Page       int
	PageSize   int
	Sort       string
	Categories []string
	Search     string
}

func (f Filter) applyDefaults() Filter {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	return f
}

func (f Filter) order() string {
	if o, ok := sortOrders[f.Sort]; ok {
		return o
	}
	return defaultSortOrder
}

// ListResult is a single page of listings plus the total row count under the
// same predicates.
type ListResult struct {
	Total   uint32           `json:"total"`
	Results []TorrentListing `json:"results"`
}

// ListTorrents returns the page of listings selected by filter. Total is
// computed over the identical predicate set, so paging through all pages
// yields exactly Total rows.
func (s *Store) ListTorrents(filter Filter) (*ListResult, error) {
	filter = filter.applyDefaults()

	// Only category names verified against the category table participate in
	// the query, and even those are bound as parameters. Unknown names are
	// dropped individually; a filter which verifies to nothing matches
	// nothing rather than degrading to an unfiltered listing.
	verified, err := s.VerifyCategories(filter.Categories)
	if err != nil {
		return nil, err
	}
	if len(filter.Categories) > 0 && len(verified) == 0 {
		return &ListResult{Total: 0, Results: []TorrentListing{}}, nil
	}

	base := `SELECT tt.* FROM torrust_torrents tt`
	var args []interface{}
	if len(verified) > 0 {
		join, joinArgs, err := sqlx.In(`
			INNER JOIN torrust_categories tc
			ON tt.category_id = tc.category_id AND tc.name IN (?)`, verified)
		if err != nil {
			return nil, fmt.Errorf("expand category filter: %s", err)
		}
		base += " " + join
		args = append(args, joinArgs...)
	}
	base += ` WHERE tt.title LIKE ?`
	args = append(args, searchPattern(filter.Search))

	var total uint32
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM (%s)`, base)
	if err := s.db.Get(&total, s.db.Rebind(countQuery), args...); err != nil {
		return nil, fmt.Errorf("count torrents: %s", err)
	}

	query := fmt.Sprintf(`%s ORDER BY %s LIMIT ?, ?`, base, filter.order())
	args = append(args, filter.Page*filter.PageSize, filter.PageSize)

	results := []TorrentListing{}
	if err := s.db.Select(&results, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select torrents: %s", err)
	}
	return &ListResult{Total: total, Results: results}, nil
}

func searchPattern(search string) string {
	if search == "" {
		return "%"
	}
	return "%" + search + "%"
}
