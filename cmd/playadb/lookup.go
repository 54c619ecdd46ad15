// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/playadb/internal/models"
)

func searchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "search <words...>",
		Short:   "Find objects whose name, artist, description or contact match every word",
		Example: `  playadb search temple`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.engine.SearchObjects(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.print(cmd, found)
		},
	}
}

func suggestCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Complete a search word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := a.engine.Suggest(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return a.print(cmd, words)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum suggestions")
	return cmd
}

func regionCommand(a *app) *cobra.Command {
	var r models.Region

	cmd := &cobra.Command{
		Use:     "region --min-lat LAT --min-lon LON --max-lat LAT --max-lon LON",
		Short:   "List objects inside a lat/lon rectangle",
		Example: `  playadb region --min-lat=40.78 --min-lon=-119.22 --max-lat=40.80 --max-lon=-119.19`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.engine.FetchObjectsIn(cmd.Context(), r)
			if err != nil {
				return err
			}
			return a.print(cmd, found)
		},
	}

	cmd.Flags().Float64Var(&r.MinLat, "min-lat", 0, "southern edge")
	cmd.Flags().Float64Var(&r.MinLon, "min-lon", 0, "western edge")
	cmd.Flags().Float64Var(&r.MaxLat, "max-lat", 0, "northern edge")
	cmd.Flags().Float64Var(&r.MaxLon, "max-lon", 0, "eastern edge")
	for _, name := range []string{"min-lat", "min-lon", "max-lat", "max-lon"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func nearCommand(a *app) *cobra.Command {
	var (
		c      models.Coordinate
		radius float64
	)

	cmd := &cobra.Command{
		Use:     "near --lat LAT --lon LON [--radius M]",
		Short:   "List objects within a radius of a point",
		Example: `  playadb near --lat=40.7864 --lon=-119.2065 --radius 250`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.engine.FetchObjectsNear(cmd.Context(), c, radius)
			if err != nil {
				return err
			}
			return a.print(cmd, found)
		},
	}

	cmd.Flags().Float64Var(&c.Lat, "lat", 0, "latitude of the center")
	cmd.Flags().Float64Var(&c.Lon, "lon", 0, "longitude of the center")
	cmd.Flags().Float64Var(&radius, "radius", 100, "radius in meters")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
