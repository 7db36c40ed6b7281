package pricing

// Item is one priced entry of a static catalog.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int64  `json:"price"`
}

// Catalog holds the static price tables of the catalog estimator.
type Catalog struct {
	Types        []Item
	CoreFeatures []Item
	AddOns       []Item
}

// DefaultCatalog returns the built-in site types and features.
func DefaultCatalog() Catalog {
	return Catalog{
		Types: []Item{
			{ID: "ecommerce", Label: "E-commerce", Price: 50000},
			{ID: "business", Label: "Business/Corporate", Price: 25000},
			{ID: "portfolio", Label: "Portfolio", Price: 15000},
			{ID: "blog", Label: "Blog/News", Price: 20000},
			{ID: "custom", Label: "Custom Application", Price: 75000},
		},
		CoreFeatures: []Item{
			{ID: "responsive", Label: "Responsive Design", Price: 0},
			{ID: "seo-basic", Label: "Basic SEO", Price: 1500},
			{ID: "cms", Label: "CMS Integration", Price: 5000},
		},
		AddOns: []Item{
			{ID: "payments", Label: "Online Payments", Price: 7000},
			{ID: "multi-language", Label: "Multi-language", Price: 6000},
			{ID: "analytics", Label: "Analytics Setup", Price: 2500},
			{ID: "chatbot", Label: "Chatbot", Price: 8000},
			{ID: "content", Label: "Content Writing (per 5 pages)", Price: 6000},
		},
	}
}

// Type looks up a site type by id.
func (c Catalog) Type(id string) (Item, bool) {
	return find(c.Types, id)
}

// Feature looks up a feature by id in the core and add-on tables.
func (c Catalog) Feature(id string) (Item, bool) {
	if it, ok := find(c.CoreFeatures, id); ok {
		return it, true
	}
	return find(c.AddOns, id)
}

// Features returns the core features followed by the add-ons.
func (c Catalog) Features() []Item {
	out := make([]Item, 0, len(c.CoreFeatures)+len(c.AddOns))
	out = append(out, c.CoreFeatures...)
	return append(out, c.AddOns...)
}

func find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
