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
	"net/http"

	"github.com/sudisk/torrust/utils/handler"
)

func badRequestf(format string, args ...interface{}) *handler.Error {
	return handler.Errorf(format, args...).Status(http.StatusBadRequest)
}

func unauthorizedf(format string, args ...interface{}) *handler.Error {
	return handler.Errorf(format, args...).Status(http.StatusUnauthorized)
}

func invalidCategoryError(name string) *handler.Error {
	return handler.Errorf("invalid category: %s", name).Status(http.StatusBadRequest)
}

func invalidFileTypeError(contentType string) *handler.Error {
	return handler.Errorf("invalid file type: %s", contentType).Status(http.StatusBadRequest)
}

func invalidTorrentFileError(err error) *handler.Error {
	return handler.Errorf("invalid torrent file: %s", err).Status(http.StatusBadRequest)
}

func torrentNotFoundError(id int64) *handler.Error {
	return handler.Errorf("torrent %d not found", id).Status(http.StatusNotFound)
}

func trackerUnavailableError(err error) *handler.Error {
	return handler.Errorf("tracker unavailable: %s", err).Status(http.StatusBadGateway)
}
