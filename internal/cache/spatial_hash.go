// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package cache

import (
	"math"
	"sync"
)

const (
	earthRadiusM = 6_371_000.0

	// metersPerDegree is the length of one degree of latitude, and of
	// longitude at the equator.
	metersPerDegree = earthRadiusM * math.Pi / 180

	// minLonScale bounds the longitude cell span near the poles.
	minLonScale = 0.01
)

// SpatialHashGrid divides geographic space into square cells so that
// rectangle and radius queries only visit the cells they overlap.
//
// The grid is rebuilt wholesale with Replace; queries may run concurrently.
//
// Time Complexity:
//   - Replace: O(n)
//   - QueryRect: O(c + k) where c = cells overlapped, k = entries in them
//   - QueryNearby: O(c + k)
type SpatialHashGrid struct {
	mu       sync.RWMutex
	cells    map[CellKey]*Cell        // Grid cells containing entries
	cellSize float64                  // Cell size in degrees
	entries  map[string]*SpatialEntry // Index by ID, last write wins
}

// CellKey represents a grid cell coordinate.
type CellKey struct {
	X, Y int
}

// Cell contains all entries in a grid cell.
type Cell struct {
	entries []*SpatialEntry
}

// SpatialEntry represents an entry in the spatial grid.
type SpatialEntry struct {
	ID      string
	Lat     float64
	Lon     float64
	Data    any
	cellKey CellKey
}

// NewSpatialHashGrid creates a new spatial hash grid.
// cellSizeM is the approximate cell edge in meters; the festival city spans a
// few kilometers so the default is 100m.
func NewSpatialHashGrid(cellSizeM float64) *SpatialHashGrid {
	if cellSizeM <= 0 {
		cellSizeM = 100
	}

	return &SpatialHashGrid{
		cells:    make(map[CellKey]*Cell),
		cellSize: cellSizeM / metersPerDegree,
		entries:  make(map[string]*SpatialEntry),
	}
}

// getCellKey returns the cell key for a lat/lon coordinate.
func (g *SpatialHashGrid) getCellKey(lat, lon float64) CellKey {
	// Normalize longitude to [-180, 180]
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}

	return CellKey{
		X: int(math.Floor(lon / g.cellSize)),
		Y: int(math.Floor(lat / g.cellSize)),
	}
}

// insertUnlocked adds or moves an entry (caller must hold lock).
func (g *SpatialHashGrid) insertUnlocked(id string, lat, lon float64, data any) {
	if existing, ok := g.entries[id]; ok {
		g.removeFromCellUnlocked(existing)
	}

	cellKey := g.getCellKey(lat, lon)
	entry := &SpatialEntry{
		ID:      id,
		Lat:     lat,
		Lon:     lon,
		Data:    data,
		cellKey: cellKey,
	}

	cell, exists := g.cells[cellKey]
	if !exists {
		cell = &Cell{entries: make([]*SpatialEntry, 0, 4)}
		g.cells[cellKey] = cell
	}
	cell.entries = append(cell.entries, entry)
	g.entries[id] = entry
}

// removeFromCellUnlocked removes an entry from its cell (caller must hold lock).
func (g *SpatialHashGrid) removeFromCellUnlocked(entry *SpatialEntry) {
	cell, exists := g.cells[entry.cellKey]
	if !exists {
		return
	}

	for i, e := range cell.entries {
		if e.ID == entry.ID {
			// Swap with last and truncate
			cell.entries[i] = cell.entries[len(cell.entries)-1]
			cell.entries = cell.entries[:len(cell.entries)-1]
			break
		}
	}

	if len(cell.entries) == 0 {
		delete(g.cells, entry.cellKey)
	}
}

// QueryRect returns every entry whose coordinate lies inside the rectangle,
// edges included. Only cells overlapping the rectangle are visited.
func (g *SpatialHashGrid) QueryRect(minLat, minLon, maxLat, maxLon float64) []*SpatialEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	lo := g.getCellKey(minLat, minLon)
	hi := g.getCellKey(maxLat, maxLon)

	// A huge rectangle over a sparse grid is cheaper to answer by scanning entries.
	span := (int64(hi.X-lo.X) + 1) * (int64(hi.Y-lo.Y) + 1)
	if span > int64(len(g.entries)) {
		var results []*SpatialEntry
		for _, entry := range g.entries {
			if inRect(entry, minLat, minLon, maxLat, maxLon) {
				entryCopy := *entry
				results = append(results, &entryCopy)
			}
		}
		return results
	}

	var results []*SpatialEntry
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			cell, exists := g.cells[CellKey{X: x, Y: y}]
			if !exists {
				continue
			}
			for _, entry := range cell.entries {
				if inRect(entry, minLat, minLon, maxLat, maxLon) {
					entryCopy := *entry
					results = append(results, &entryCopy)
				}
			}
		}
	}
	return results
}

func inRect(e *SpatialEntry, minLat, minLon, maxLat, maxLon float64) bool {
	return e.Lat >= minLat && e.Lat <= maxLat && e.Lon >= minLon && e.Lon <= maxLon
}

// QueryNearby returns all entries within radiusM meters of the given point.
// The cell window is sized per axis: a degree of longitude shrinks with
// cos(lat), so the east-west span needs more cells than the north-south one.
func (g *SpatialHashGrid) QueryNearby(lat, lon, radiusM float64) []*SpatialEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	latCells := int(math.Ceil(radiusM/metersPerDegree/g.cellSize)) + 1
	lonScale := math.Max(math.Cos(lat*math.Pi/180), minLonScale)
	lonCells := int(math.Ceil(radiusM/(metersPerDegree*lonScale)/g.cellSize)) + 1
	centerCell := g.getCellKey(lat, lon)

	var results []*SpatialEntry
	for dx := -lonCells; dx <= lonCells; dx++ {
		for dy := -latCells; dy <= latCells; dy++ {
			cell, exists := g.cells[CellKey{X: centerCell.X + dx, Y: centerCell.Y + dy}]
			if !exists {
				continue
			}

			for _, entry := range cell.entries {
				if haversineDistance(lat, lon, entry.Lat, entry.Lon) <= radiusM {
					entryCopy := *entry
					results = append(results, &entryCopy)
				}
			}
		}
	}

	return results
}

// Size returns the total number of entries.
func (g *SpatialHashGrid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Replace swaps the grid contents for the given entries in one critical
// section, so concurrent queries see either the old or the new generation.
func (g *SpatialHashGrid) Replace(entries []SpatialEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cells = make(map[CellKey]*Cell)
	g.entries = make(map[string]*SpatialEntry, len(entries))
	for _, e := range entries {
		g.insertUnlocked(e.ID, e.Lat, e.Lon, e.Data)
	}
}

// haversineDistance calculates the distance between two lat/lon points in meters.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}
