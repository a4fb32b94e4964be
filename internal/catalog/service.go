package catalog

import "sort"

// Service serves read-only views over the flattened catalog.
type Service struct {
	items  []Item
	byName map[string]Item
}

// NewService constructs a Service over a loaded item list.
func NewService(items []Item) *Service {
	byName := make(map[string]Item, len(items))
	for _, item := range items {
		if _, ok := byName[item.Name]; !ok {
			byName[item.Name] = item
		}
	}
	return &Service{items: items, byName: byName}
}

// Items returns catalog items, optionally filtered by source and category.
func (s *Service) Items(source, category string) []Item {
	result := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if source != "" && item.Source != source {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Sources returns the distinct brand sources, sorted.
func (s *Service) Sources() []string {
	return s.distinct(func(i Item) string { return i.Source })
}

// Categories returns the distinct categories for a source, sorted.
// An empty source returns categories across the whole catalog.
func (s *Service) Categories(source string) []string {
	set := make(map[string]struct{})
	for _, item := range s.items {
		if source != "" && item.Source != source {
			continue
		}
		set[item.Category] = struct{}{}
	}
	return sortedKeys(set)
}

// Lookup finds an item by exact name match.
func (s *Service) Lookup(name string) (Item, bool) {
	item, ok := s.byName[name]
	return item, ok
}

func (s *Service) distinct(key func(Item) string) []string {
	set := make(map[string]struct{})
	for _, item := range s.items {
		set[key(item)] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
