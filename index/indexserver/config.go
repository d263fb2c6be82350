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
	"github.com/c2h5oh/datasize"

	"github.com/sudisk/torrust/utils/listener"
)

// Config defines index server configuration.
type Config struct {
	Listener listener.Config `yaml:"listener"`

	// TrackerURL is the site tracker announce URL stamped into every
	// uploaded torrent.
	TrackerURL string `yaml:"tracker_url"`

	// MaxTorrentSize bounds the size of uploaded .torrent files.
	MaxTorrentSize datasize.ByteSize `yaml:"max_torrent_size"`

	// KeepExtraTiers preserves uploader-supplied announce-list tiers behind
	// the site tracker instead of dropping them.
	KeepExtraTiers bool `yaml:"keep_extra_tiers"`
}

func (c Config) applyDefaults() Config {
	if c.MaxTorrentSize == 0 {
		c.MaxTorrentSize = 2 * datasize.MB
	}
	return c
}
