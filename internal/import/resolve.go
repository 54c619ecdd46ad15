// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaimport

import (
	"github.com/tomtom215/playadb/internal/models"
)

// resolveHosts checks every event's host reference against the camps and
// art of the same directory and copies the host GPS onto the event.
//
// An event whose host has no GPS keeps an unset GPS. An event whose host
// uid is unknown loses its host reference and GPS and is reported.
func resolveHosts(dir *Directory) []UnresolvedHostError {
	campGPS := make(map[string]*models.Coordinate, len(dir.Camps))
	for i := range dir.Camps {
		campGPS[dir.Camps[i].UID] = dir.Camps[i].GPS
	}
	artGPS := make(map[string]*models.Coordinate, len(dir.Art))
	for i := range dir.Art {
		artGPS[dir.Art[i].UID] = dir.Art[i].GPS
	}

	var unresolved []UnresolvedHostError
	for i := range dir.Events {
		event := &dir.Events[i]
		event.GPS = nil

		host, ok := event.HostRef()
		if !ok {
			continue
		}

		hosts := campGPS
		if host.Type == models.ObjectTypeArt {
			hosts = artGPS
		}

		gps, found := hosts[host.UID]
		if !found {
			unresolved = append(unresolved, UnresolvedHostError{EventUID: event.UID, Host: host})
			event.HostedByCamp = nil
			event.LocatedAtArt = nil
			continue
		}
		if gps != nil {
			c := *gps
			event.GPS = &c
		}
	}
	return unresolved
}
