// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func artCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "art",
		Short: "List art installations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			art, err := a.engine.FetchArt(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, art)
		},
	}
}

func campsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "camps",
		Short: "List theme camps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			camps, err := a.engine.FetchCamps(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, camps)
		},
	}
}

func eventsCommand(a *app) *cobra.Command {
	var (
		day      string
		schedule bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events, optionally only those on one festival day",
		Example: `  playadb events
  playadb events --day 2025-08-28
  playadb events --day today --schedule`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if day == "" {
				if schedule {
					return fmt.Errorf("--schedule requires --day")
				}
				events, err := a.engine.FetchEvents(ctx)
				if err != nil {
					return err
				}
				return a.print(cmd, events)
			}

			on, err := parseDay(day, time.Now().In(a.engine.Location()))
			if err != nil {
				return err
			}
			if schedule {
				pairs, err := a.engine.FetchEventOccurrencesOn(ctx, on)
				if err != nil {
					return err
				}
				return a.print(cmd, pairs)
			}
			events, err := a.engine.FetchEventsOn(ctx, on)
			if err != nil {
				return err
			}
			return a.print(cmd, events)
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "festival day (YYYY-MM-DD or today)")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "print one entry per occurrence, ordered by start time")
	return cmd
}

func getCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <art|camp|event> <uid>",
		Short: "Show one directory object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			obj, err := a.engine.FetchObject(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if obj == nil {
				return fmt.Errorf("%s not found", ref)
			}
			return a.print(cmd, obj)
		},
	}
}

func occurrencesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "occurrences <event-uid>",
		Short: "List the scheduled times of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			occs, err := a.engine.FetchOccurrences(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, occs)
		},
	}
}

func hostedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hosted <camp|art> <uid>",
		Short: "List the events hosted by a camp or located at an art installation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			events, err := a.engine.FetchEventsHostedBy(cmd.Context(), ref)
			if err != nil {
				return err
			}
			return a.print(cmd, events)
		},
	}
}
