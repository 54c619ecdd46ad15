// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/playadb/internal/config"
	"github.com/tomtom215/playadb/internal/database"
	"github.com/tomtom215/playadb/internal/favorites"
	"github.com/tomtom215/playadb/internal/logging"
	"github.com/tomtom215/playadb/internal/models"
	playaquery "github.com/tomtom215/playadb/internal/query"
	"github.com/tomtom215/playadb/internal/updates"
)

// app holds the handles shared by every subcommand. They are opened in the
// root PersistentPreRunE and closed in PersistentPostRunE.
type app struct {
	dbPath  string
	compact bool

	cfg       *config.Config
	db        *database.DB
	engine    *playaquery.Engine
	favorites *favorites.Service
	tracker   *updates.Tracker
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "playadb",
		Short: "Festival directory storage and query engine",
		Long: `PlayaDB imports the yearly art, camp and event directory into a local
DuckDB store and answers schedule, map and search queries against it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "database file (overrides PLAYADB_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&a.compact, "compact", false, "print JSON on one line")

	rootCmd.AddCommand(
		importCommand(a),
		artCommand(a),
		campsCommand(a),
		eventsCommand(a),
		getCommand(a),
		occurrencesCommand(a),
		hostedCommand(a),
		searchCommand(a),
		suggestCommand(a),
		regionCommand(a),
		nearCommand(a),
		favoriteCommand(a),
		updatesCommand(a),
		statsCommand(a),
	)
	return rootCmd
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	loc, err := cfg.Festival.Location()
	if err != nil {
		return err
	}

	db, err := database.New(&cfg.Database, &cfg.Index)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	logging.Debug().Str("db_path", db.GetDatabasePath()).Msg("Database opened")

	a.cfg = cfg
	a.db = db
	a.engine = playaquery.New(db, loc)
	a.favorites = favorites.NewService(db)
	a.tracker = updates.NewTracker(db)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
	return err
}

// print writes v as JSON to the command's output.
func (a *app) print(cmd *cobra.Command, v any) error {
	var (
		data []byte
		err  error
	)
	if a.compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return writeLine(cmd.OutOrStdout(), data)
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// parseRef reads a "<type> <uid>" argument pair.
func parseRef(typeArg, uid string) (models.EntityRef, error) {
	objectType, err := models.ParseObjectType(typeArg)
	if err != nil {
		return models.EntityRef{}, err
	}
	ref := models.EntityRef{UID: uid, Type: objectType}
	return ref, ref.Validate()
}

// parseDay accepts YYYY-MM-DD or "today" (the current festival-local date).
func parseDay(s string, now time.Time) (time.Time, error) {
	if strings.EqualFold(s, "today") {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: use YYYY-MM-DD or today", s)
	}
	return day, nil
}
