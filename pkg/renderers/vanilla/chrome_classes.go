package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassRoot        ChromeClass = "datatable"
	ClassTitle       ChromeClass = "datatable-title"
	ClassActionBar   ChromeClass = "datatable-action-bar"
	ClassTable       ChromeClass = "datatable-table"
	ClassHeader      ChromeClass = "datatable-header"
	ClassSorted      ChromeClass = "datatable-sorted"
	ClassCell        ChromeClass = "datatable-cell"
	ClassAction      ChromeClass = "datatable-action"
	ClassButton      ChromeClass = "datatable-button"
	ClassPagination  ChromeClass = "datatable-pagination"
	ClassFilters     ChromeClass = "datatable-filters"
	ClassPersonalize ChromeClass = "datatable-personalization"
	ClassExport      ChromeClass = "datatable-export"
	ClassEmpty       ChromeClass = "datatable-empty"
)

// Classes maps template keys to chrome classes. Themes read them through
// the "classes" global; overrides replace single entries.
type Classes map[string]string

// DefaultClasses returns the chrome classes used by the built-in themes.
func DefaultClasses() Classes {
	return Classes{
		"root":            string(ClassRoot),
		"title":           string(ClassTitle),
		"action_bar":      string(ClassActionBar),
		"table":           string(ClassTable),
		"header":          string(ClassHeader),
		"sorted":          string(ClassSorted),
		"cell":            string(ClassCell),
		"action":          string(ClassAction),
		"button":          string(ClassButton),
		"pagination":      string(ClassPagination),
		"filters":         string(ClassFilters),
		"personalization": string(ClassPersonalize),
		"export_form":     string(ClassExport),
		"empty":           string(ClassEmpty),
	}
}

func (c Classes) merge(overrides Classes) Classes {
	out := make(Classes, len(c)+len(overrides))
	for key, value := range c {
		out[key] = value
	}
	for key, value := range overrides {
		if cleaned := sanitizeClassList(value); cleaned != "" {
			out[key] = cleaned
		}
	}
	return out
}
