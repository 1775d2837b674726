package category

// Category is one entry of the fixed expense category set, with the display
// color the presentation layer uses for charts and chips.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultColor is the neutral fallback used for unknown category names.
const DefaultColor = "#94a3b8"

var catalog = []Category{
	{Name: "Food & Drinks", Color: "#f87171"},
	{Name: "Transportation", Color: "#60a5fa"},
	{Name: "Housing & Rent", Color: "#34d399"},
	{Name: "Entertainment", Color: "#a78bfa"},
	{Name: "Shopping", Color: "#fbbf24"},
	{Name: "Health", Color: "#f472b6"},
	{Name: "Utilities", Color: "#2dd4bf"},
	{Name: "Education", Color: "#818cf8"},
	{Name: "Other", Color: DefaultColor},
}

// All returns the catalog in display order.
func All() []Category {
	result := make([]Category, len(catalog))
	copy(result, catalog)
	return result
}

// Names returns the category names in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.Name
	}
	return names
}

// IsValid reports whether name is a member of the fixed category set.
func IsValid(name string) bool {
	for _, c := range catalog {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ColorFor returns the display color for name, or DefaultColor when the
// name is not in the catalog.
func ColorFor(name string) string {
	for _, c := range catalog {
		if c.Name == name {
			return c.Color
		}
	}
	return DefaultColor
}
