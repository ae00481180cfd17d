// Package recent keeps the short list of recently analysed listings.
package recent

import (
	"sync"
	"time"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/rs/zerolog/log"
)

// MaxItems is the most entries the cache keeps.
const MaxItems = 5

// Item is a listing the user analysed.
type Item struct {
	ItemName        string  `json:"item_name"`
	Price           float64 `json:"price"`
	DaysListed      int     `json:"days"`
	InterestedCount int     `json:"interested"`
	ViewCount       *int    `json:"views,omitempty"`
	Timestamp       int64   `json:"timestamp"` // Unix milliseconds
}

// Input converts the item back into a listing input for re-analysis.
func (i Item) Input() backend.ListingInput {
	return backend.ListingInput{
		ItemName:        i.ItemName,
		Price:           i.Price,
		DaysListed:      i.DaysListed,
		InterestedCount: i.InterestedCount,
		ViewCount:       i.ViewCount,
	}.Clone()
}

// Time returns the item's timestamp as a time.Time.
func (i Item) Time() time.Time {
	return time.UnixMilli(i.Timestamp)
}

// Cache is a bounded, most-recent-first list of items, unique by item name,
// persisted to local state on every change.
type Cache struct {
	state *storage.State
	now   func() time.Time
	mu    sync.Mutex
}

func New(state *storage.State) *Cache {
	return &Cache{state: state, now: time.Now}
}

// Add records input as the most recent item. An existing entry with the same
// name (exact, case-sensitive) is replaced rather than duplicated.
func (c *Cache) Add(input backend.ListingInput) {
	c.mu.Lock()
	defer c.mu.Unlock()

	in := input.Clone()
	item := Item{
		ItemName:        in.ItemName,
		Price:           in.Price,
		DaysListed:      in.DaysListed,
		InterestedCount: in.InterestedCount,
		ViewCount:       in.ViewCount,
		Timestamp:       c.now().UnixMilli(),
	}

	items := []Item{item}
	for _, existing := range c.load() {
		if existing.ItemName != item.ItemName {
			items = append(items, existing)
		}
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}

	c.save(items)
}

// List returns the cached items, most recent first.
func (c *Cache) List() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Delete removes the item at index in List order. Out-of-range indexes are
// ignored.
func (c *Cache) Delete(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load()
	if index < 0 || index >= len(items) {
		return
	}
	items = append(items[:index], items[index+1:]...)
	c.save(items)
}

// load reads the persisted list. Whatever is stored, the returned list
// respects the cache invariants.
func (c *Cache) load() []Item {
	stored, ok := storage.Load[[]Item](c.state, storage.KeyRecentItems)
	if !ok {
		return []Item{}
	}

	items := make([]Item, 0, min(len(stored), MaxItems))
	seen := make(map[string]bool)
	for _, item := range stored {
		if seen[item.ItemName] {
			continue
		}
		seen[item.ItemName] = true
		items = append(items, item)
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

func (c *Cache) save(items []Item) {
	if !c.state.Set(storage.KeyRecentItems, items) {
		log.Debug().Int("count", len(items)).Msg("recent items not persisted")
	}
}
