package stock

import "github.com/trezcool/masomo-dashboard/core/query"

// Uncategorized names the category of products whose category is unknown.
const Uncategorized = "Uncategorized"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	CategoryID   string  `json:"category_id"`
	Quantity     int     `json:"quantity"`
	ReorderPoint int     `json:"reorder_point"`
	UnitPrice    float64 `json:"unit_price"`
}

// LowStock reports whether the on-hand quantity is at or below the reorder point.
func (p Product) LowStock() bool { return p.Quantity <= p.ReorderPoint }

func (p Product) Value() float64 { return float64(p.Quantity) * p.UnitPrice }

// Catalog is the loaded product collection with its category lookup.
type Catalog struct {
	Products   []Product
	Categories []Category
	index      query.Index[string, Category]
}

func NewCatalog(products []Product, categories []Category) Catalog {
	return Catalog{
		Products:   products,
		Categories: categories,
		index:      query.NewIndex(categories, func(c Category) string { return c.ID }),
	}
}

// Category resolves id, falling back to Uncategorized.
func (c Catalog) Category(id string) Category {
	if cat, ok := c.index.Get(id); ok {
		return cat
	}
	return Category{ID: id, Name: Uncategorized}
}

// Row is a product joined with its category.
type Row struct {
	Product  Product  `json:"product"`
	Category Category `json:"category"`
	LowStock bool     `json:"low_stock"`
	Value    float64  `json:"value"`
}

// Rows joins every product with its category, preserving product order.
func (c Catalog) Rows() []Row {
	rows := make([]Row, 0, len(c.Products))
	for _, p := range c.Products {
		rows = append(rows, Row{
			Product:  p,
			Category: c.Category(p.CategoryID),
			LowStock: p.LowStock(),
			Value:    query.Round(p.Value(), 2),
		})
	}
	return rows
}
