package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
)

//go:embed menu.json
var menuJSON []byte

// Load parses the bundled menu data into a flat item list. Rows with an empty
// name or a negative price are dropped, as are duplicate names within the
// same source brand. The first occurrence wins.
func Load(logger *slog.Logger) ([]Item, error) {
	var menu rawMenu
	if err := json.Unmarshal(menuJSON, &menu); err != nil {
		return nil, fmt.Errorf("catalog: parse menu data: %w", err)
	}

	seen := make(map[string]struct{})
	var items []Item
	for _, cat := range menu.Categories {
		for _, raw := range cat.Items {
			if raw.NameEn == "" || raw.Price < 0 {
				if logger != nil {
					logger.Warn("dropping invalid menu row",
						slog.String("category", cat.Category),
						slog.String("name", raw.NameEn))
				}
				continue
			}
			key := raw.Source + "\x00" + raw.NameEn
			if _, dup := seen[key]; dup {
				if logger != nil {
					logger.Warn("dropping duplicate menu row",
						slog.String("source", raw.Source),
						slog.String("name", raw.NameEn))
				}
				continue
			}
			seen[key] = struct{}{}
			items = append(items, Item{
				Name:        raw.NameEn,
				NameAr:      raw.NameAr,
				Unit:        raw.Unit,
				Price:       raw.Price,
				Source:      raw.Source,
				Category:    cat.Category,
				Description: raw.Description,
				PrepTime:    raw.PrepTime,
				Ingredients: raw.Ingredients,
				Allergens:   raw.Allergens,
				Dietary:     raw.Dietary,
				Rating:      raw.Rating,
			})
		}
	}
	return items, nil
}
