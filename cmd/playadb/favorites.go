// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"github.com/spf13/cobra"
)

func favoriteCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Manage favorite art, camps and events",
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <art|camp|event> <uid>",
		Short: "Flip the favorite flag of an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			on, err := a.favorites.ToggleFavorite(cmd.Context(), ref)
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]any{"ref": ref, "favorite": on})
		},
	}

	var refsOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorite objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if refsOnly {
				refs, err := a.favorites.FavoriteRefs(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(cmd, refs)
			}
			favs, err := a.favorites.GetFavorites(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, favs)
		},
	}
	listCmd.Flags().BoolVar(&refsOnly, "refs", false, "list flagged references, including objects no longer in the directory")

	cmd.AddCommand(toggleCmd, listCmd)
	return cmd
}
