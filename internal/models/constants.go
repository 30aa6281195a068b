package models

// Category is the fixed item category enumeration.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryTools       Category = "tools"
	CategorySports      Category = "sports"
	CategoryMusic       Category = "music"
	CategoryGames       Category = "games"
	CategoryBooks       Category = "books"
	CategoryVehicles    Category = "vehicles"
	CategoryFashion     Category = "fashion"
	CategoryParty       Category = "party"
	CategoryHome        Category = "home"
	CategoryOther       Category = "other"
)

// Display labels follow the product locale (pt-BR).
var categoryLabels = map[Category]string{
	CategoryElectronics: "Eletrônicos",
	CategoryTools:       "Ferramentas",
	CategorySports:      "Esportes",
	CategoryMusic:       "Instrumentos Musicais",
	CategoryGames:       "Jogos",
	CategoryBooks:       "Livros",
	CategoryVehicles:    "Veículos",
	CategoryFashion:     "Moda",
	CategoryParty:       "Festa",
	CategoryHome:        "Casa",
	CategoryOther:       "Outros",
}

// Categories returns the enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryTools,
		CategorySports,
		CategoryMusic,
		CategoryGames,
		CategoryBooks,
		CategoryVehicles,
		CategoryFashion,
		CategoryParty,
		CategoryHome,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label, falling back to "Outros" for unknown values.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}
