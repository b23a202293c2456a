package stock

import (
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/query"
)

// Filter keys
const (
	FilterCategory = "category"
	FilterStock    = "stock"
)

// Stock levels
const (
	LevelLow = "low"
	LevelOK  = "ok"
)

var Policy = query.Policy[Row]{
	SearchFields: []query.Field[Row]{
		func(r Row) string { return r.Product.Name },
		func(r Row) string { return r.Product.SKU },
	},
	Categories: map[string]query.Field[Row]{
		FilterCategory: func(r Row) string { return r.Category.Name },
		FilterStock:    level,
	},
	Values: map[string][]string{FilterStock: {LevelLow, LevelOK}},
}

func level(r Row) string {
	if r.LowStock {
		return LevelLow
	}
	return LevelOK
}

var comparators = map[string]query.Comparator[Row]{
	"name":     func(a, b Row) int { return query.CompareStrings(a.Product.Name, b.Product.Name) },
	"quantity": func(a, b Row) int { return query.CompareNumbers(a.Product.Quantity, b.Product.Quantity) },
	"value":    func(a, b Row) int { return query.CompareNumbers(a.Value, b.Value) },
}

var Columns = []csvexport.Column[Row]{
	{Header: "Name", Value: func(r Row) string { return r.Product.Name }},
	{Header: "Category", Value: func(r Row) string { return r.Category.Name }},
	{Header: "Quantity", Value: func(r Row) string { return csvexport.Int(r.Product.Quantity) }},
}

type Summary struct {
	Products        int     `json:"products"`
	Units           int     `json:"units"`
	InventoryValue  float64 `json:"inventory_value"`
	LowStock        int     `json:"low_stock"`
	LowStockPercent float64 `json:"low_stock_percent"`
}

func Summarize(rows []Row) Summary {
	var sum Summary
	for _, r := range rows {
		sum.Products++
		sum.Units += r.Product.Quantity
		sum.InventoryValue += r.Value
		if r.LowStock {
			sum.LowStock++
		}
	}
	sum.InventoryValue = query.Round(sum.InventoryValue, 2)
	sum.LowStockPercent = query.Percent(sum.LowStock, sum.Products)
	return sum
}

type CategoryBreakdown struct {
	Category string  `json:"category"`
	Products int     `json:"products"`
	Units    int     `json:"units"`
	Value    float64 `json:"value"`
	LowStock int     `json:"low_stock"`
}

func breakdown(name string, rows []Row) CategoryBreakdown {
	sum := Summarize(rows)
	return CategoryBreakdown{
		Category: name,
		Products: sum.Products,
		Units:    sum.Units,
		Value:    sum.InventoryValue,
		LowStock: sum.LowStock,
	}
}

// ByCategory breaks rows down per category name, in first-seen order.
func ByCategory(rows []Row) []CategoryBreakdown {
	groups := query.GroupBy(rows, func(r Row) string { return r.Category.Name })
	out := make([]CategoryBreakdown, 0, len(groups))
	for _, g := range groups {
		out = append(out, breakdown(g.Key, g.Items))
	}
	return out
}

// CategoryOverview lists every known category, empty ones included, followed by
// Uncategorized when some products reference an unknown category.
func CategoryOverview(c Catalog) []CategoryBreakdown {
	rows := c.Rows()
	byName := make(map[string][]Row)
	for _, r := range rows {
		byName[r.Category.Name] = append(byName[r.Category.Name], r)
	}
	out := make([]CategoryBreakdown, 0, len(c.Categories)+1)
	seen := false
	for _, cat := range c.Categories {
		out = append(out, breakdown(cat.Name, byName[cat.Name]))
		seen = seen || cat.Name == Uncategorized
	}
	if orphans, ok := byName[Uncategorized]; ok && !seen {
		out = append(out, breakdown(Uncategorized, orphans))
	}
	return out
}

type View struct {
	Items   []Row               `json:"items"`
	Summary Summary             `json:"summary"`
	Groups  []CategoryBreakdown `json:"groups"`
}

func Derive(c Catalog, req query.Request) (View, error) {
	if err := Policy.Validate(req.Criteria); err != nil {
		return View{}, err
	}
	items, err := query.Sort(query.Filter(c.Rows(), Policy, req.Criteria), req.Ordering, comparators)
	if err != nil {
		return View{}, err
	}
	return View{
		Items:   items,
		Summary: Summarize(items),
		Groups:  ByCategory(items),
	}, nil
}
