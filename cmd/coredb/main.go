// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// coredb is the CLI launcher for the engine: serve starts the REST
// listener, compact reclaims tombstoned rows in a single namespace.
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solidcoredata/coredb/config"
	"github.com/solidcoredata/coredb/dataframe"
	"github.com/solidcoredata/coredb/internal/start"
	"github.com/solidcoredata/coredb/namespace"
	"github.com/solidcoredata/coredb/rest"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "coredb",
		Short: "coredb embeds a typed, expression-driven row store",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	root.AddCommand(serveCmd(), compactCmd())

	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the REST listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return start.Start(cmd.Context(), 5*time.Second, func(ctx context.Context) error {
				return start.RunAll(ctx,
					func(ctx context.Context) error { return rest.Serve(ctx, cfg.ListenAddress, cfg.Home) },
				)
			})
		},
	}
}

func compactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compact <db.schema.name>",
		Short: "compact a namespace's row file, reclaiming deleted rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ns, err := namespace.Parse(args[0])
			if err != nil {
				return err
			}
			df, err := dataframe.Open(cfg.Home, ns)
			if err != nil {
				return err
			}
			defer df.Close()
			return df.Compact()
		},
	}
}
