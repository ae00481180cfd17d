package storage

import (
	"slices"
	"strings"
)

// WatchedMarkets returns the watched item names in sorted order.
func (s *State) WatchedMarkets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchedMarkets()
}

func (s *State) watchedMarkets() []string {
	names, _ := Load[[]string](s, KeyWatchedMarkets)
	slices.Sort(names)
	return slices.Compact(names)
}

// IsWatched reports whether name is in the watched set.
func (s *State) IsWatched(name string) bool {
	return slices.Contains(s.WatchedMarkets(), strings.TrimSpace(name))
}

// AddWatchedMarket adds name to the watched set. Returns false if the name was
// already watched or could not be persisted.
func (s *State) AddWatchedMarket(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.watchedMarkets()
	if slices.Contains(names, name) {
		return false
	}
	names = append(names, name)
	slices.Sort(names)
	return s.Set(KeyWatchedMarkets, names)
}

// RemoveWatchedMarket removes name from the watched set. Returns false if the
// name was not watched or the change could not be persisted.
func (s *State) RemoveWatchedMarket(name string) bool {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.watchedMarkets()
	i := slices.Index(names, name)
	if i < 0 {
		return false
	}
	names = slices.Delete(names, i, i+1)
	return s.Set(KeyWatchedMarkets, names)
}
