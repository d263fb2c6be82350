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
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sudisk/torrust/index/store"
)

// parseListFilter decodes list query parameters. Unknown sort values fall
// through to the store's default ordering.
func parseListFilter(r *http.Request) (store.Filter, error) {
	var f store.Filter
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return f, badRequestf("parse page: %s", err)
		}
		f.Page = page
	}
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return f, badRequestf("parse page_size: %s", err)
		}
		f.PageSize = size
	}
	f.Sort = q.Get("sort")
	f.Search = q.Get("search")
	if v := q.Get("categories"); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				f.Categories = append(f.Categories, c)
			}
		}
	}
	return f, nil
}

func (s *Server) listTorrentsHandler(w http.ResponseWriter, r *http.Request) error {
	f, err := parseListFilter(r)
	if err != nil {
		return err
	}
	result, err := s.store.ListTorrents(f)
	if err != nil {
		return fmt.Errorf("list torrents: %s", err)
	}
	return writeJSON(w, result)
}
