package domain

// Category is one of the fixed product categories of the storefront.
type Category string

const (
	CategoryAlfajores  Category = "alfajores"
	CategoryChocolates Category = "chocolates"
	CategoryPacks      Category = "packs"
	CategoryOtros      Category = "otros"
)

// Valid reports whether the category is part of the fixed enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryAlfajores, CategoryChocolates, CategoryPacks, CategoryOtros:
		return true
	}
	return false
}

// Product is an immutable catalog entry. Price is in integral Chilean pesos.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
	IsNew       bool     `json:"isNew,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Portions    string   `json:"portions,omitempty"`
}
