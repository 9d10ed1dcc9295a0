package record

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// Category - рубрика пользовательской публикации.
type Category string

const (
	CategoryWebDevelopment Category = "Web Development"
	CategorySoftware       Category = "Software"
	CategoryProgramming    Category = "Programming"
	CategoryHealthcare     Category = "Healthcare"
	CategoryTravel         Category = "Travel"
	CategoryHistory        Category = "History"
	CategoryGeoPolitics    Category = "Geo-Politics"
	CategoryOther          Category = "Other"
)

var categories = []Category{
	CategoryWebDevelopment,
	CategorySoftware,
	CategoryProgramming,
	CategoryHealthcare,
	CategoryTravel,
	CategoryHistory,
	CategoryGeoPolitics,
	CategoryOther,
}

func (Category) Schema(huma.Registry) *huma.Schema {
	enum := make([]any, len(categories))
	for i, c := range categories {
		enum[i] = string(c)
	}
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        enum,
		Description: "Рубрика публикации",
		Examples:    []any{string(CategorySoftware)},
	}
}

// Validate проверяет, что рубрика входит в допустимый список.
func (c Category) Validate() error {
	for _, known := range categories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("неизвестная рубрика: %q", string(c))
}

func (c Category) String() string {
	return string(c)
}
