package domain

import (
	"sort"
	"time"
)

type CachedLocation struct {
	DeviceID   DeviceID
	Coordinate Coordinate
	UpdatedAt  time.Time
}

// LocationCache keeps the last known coordinate per device for the lifetime
// of the process. Entries never expire on their own.
type LocationCache struct {
	entries map[DeviceID]CachedLocation
}

func NewLocationCache() *LocationCache {
	return &LocationCache{entries: map[DeviceID]CachedLocation{}}
}

func (c *LocationCache) Get(id DeviceID) (Coordinate, bool) {
	entry, ok := c.entries[id]
	if !ok {
		return Coordinate{}, false
	}
	return entry.Coordinate, true
}

// Set overwrites any previous entry for id.
func (c *LocationCache) Set(id DeviceID, coordinate Coordinate, at time.Time) {
	c.entries[id] = CachedLocation{DeviceID: id, Coordinate: coordinate, UpdatedAt: at}
}

func (c *LocationCache) Evict(id DeviceID) bool {
	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	return true
}

func (c *LocationCache) Len() int {
	return len(c.entries)
}

// Entries returns a snapshot sorted by device id.
func (c *LocationCache) Entries() []CachedLocation {
	entries := make([]CachedLocation, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DeviceID < entries[j].DeviceID
	})
	return entries
}
