// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

// Package favorites stores the user's favorite flags for art, camps and
// events.
//
// A flag outlives re-imports: when an object disappears from the directory
// its flag is kept, GetFavorites skips it and FavoriteRefs still lists it.
package favorites
