package catalog

// Item is a sellable menu entry with price, unit and descriptive metadata.
// Items are immutable once loaded from the bundled menu data.
type Item struct {
	Name        string   `json:"name"`
	NameAr      string   `json:"name_ar"`
	Unit        string   `json:"unit"`
	Price       float64  `json:"price"`
	Source      string   `json:"source"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	PrepTime    string   `json:"prep_time,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	Rating      string   `json:"rating,omitempty"`
}

type rawMenu struct {
	Categories []rawCategory `json:"categories"`
}

type rawCategory struct {
	Category string    `json:"category"`
	Items    []rawItem `json:"items"`
}

type rawItem struct {
	NameEn      string   `json:"name_en"`
	NameAr      string   `json:"name_ar"`
	Unit        string   `json:"unit"`
	Price       float64  `json:"price"`
	Source      string   `json:"source"`
	Description string   `json:"description"`
	PrepTime    string   `json:"prep_time"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
	Dietary     []string `json:"dietary"`
	Rating      string   `json:"rating"`
}
