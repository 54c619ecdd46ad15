// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/playadb/internal/database"
)

func updatesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "updates",
		Short: "Show the import status of each data type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.tracker.GetUpdateInfo(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	}
}

// storeStats is the output of the stats command.
type storeStats struct {
	Path          string                 `json:"path"`
	SchemaVersion int                    `json:"schema_version"`
	Counts        *database.RecordCounts `json:"counts"`
}

func statsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show schema version and row counts of the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := a.db.GetRecordCounts(cmd.Context())
			if err != nil {
				return err
			}
			version, err := a.db.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, storeStats{Path: a.db.GetDatabasePath(), SchemaVersion: version, Counts: counts})
		},
	}
}
