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
package cmd

import (
	"github.com/andres-erbsen/clock"
	"github.com/spf13/cobra"

	"github.com/sudisk/torrust/index/auth"
	"github.com/sudisk/torrust/index/indexserver"
	"github.com/sudisk/torrust/index/store"
	"github.com/sudisk/torrust/index/torrentstore"
	"github.com/sudisk/torrust/index/trackerclient"
	"github.com/sudisk/torrust/localdb"
	"github.com/sudisk/torrust/metrics"
	"github.com/sudisk/torrust/utils/configutil"
	"github.com/sudisk/torrust/utils/log"
)

var (
	configFile string
	cluster    string

	rootCmd = &cobra.Command{
		Short: "torrust-index accepts torrent uploads and serves them back as listings and personalized downloads.",
		Run: func(rootCmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFile, "config", "", "", "configuration file path")
	rootCmd.PersistentFlags().StringVarP(
		&cluster, "cluster", "", "", "cluster name")
}

// Execute runs the index server.
func Execute() {
	rootCmd.Execute()
}

func run() {
	var config Config
	if err := configutil.Load(configFile, &config); err != nil {
		panic(err)
	}
	config = config.applyDefaults()
	log.ConfigureLogger(config.ZapLogging)

	stats, closer, err := metrics.New(config.Metrics, cluster)
	if err != nil {
		log.Fatalf("Failed to init metrics: %s", err)
	}
	defer closer.Close()

	go metrics.EmitVersion(stats)

	db, err := localdb.New(config.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer db.Close()

	server := indexserver.New(
		config.IndexServer,
		stats,
		store.New(db, clock.New()),
		torrentstore.New(config.UploadDir),
		trackerclient.New(config.Tracker),
		auth.NewHeaderAuthenticator())

	log.Fatal(server.ListenAndServe())
}
