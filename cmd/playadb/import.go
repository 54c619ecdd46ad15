// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"github.com/spf13/cobra"

	playaimport "github.com/tomtom215/playadb/internal/import"
	"github.com/tomtom215/playadb/internal/logging"
)

func importCommand(a *app) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored directory with the export in the data directory",
		Long: `Import reads the art, camp and event export files and replaces the stored
directory in one transaction. A malformed record aborts the import and leaves
the previous directory in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			importCfg := a.cfg.Import
			if dataDir != "" {
				importCfg.DataDir = dataDir
			}

			importer := playaimport.NewImporter(a.db, a.tracker, playaimport.NewDirSource(&importCfg))
			stats, err := importer.ImportFromPlayaAPI(cmd.Context())
			if err != nil {
				return err
			}

			for _, u := range stats.UnresolvedHosts {
				logging.Warn().Str("event_uid", u.EventUID).Str("host", u.Host.String()).Msg("Unresolved event host")
			}
			return a.print(cmd, stats.ToSummary())
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", "", "export directory (overrides IMPORT_DATA_DIR)")
	return cmd
}
