// Package catalog holds the static product reference data used by the
// inference engine: products grouped by category, and the industry and
// equipment mapping tables. The catalog is built once at startup and never
// mutated.
package catalog

// Product is one sellable product with its match keywords and use cases.
type Product struct {
	Code     string
	Name     string
	Keywords []string
	UseCases []string
}

// Category groups products. Iteration order over Categories and their
// Products is fixed, which makes inference output deterministic.
type Category struct {
	Name     string
	Products []Product
}

// IndustryMapping maps an industry name to product codes, in priority order.
type IndustryMapping struct {
	Industry string
	Products []string
}

// EquipmentMapping maps an equipment phrase to product codes.
type EquipmentMapping struct {
	Phrase   string
	Products []string
}

// Catalog is the immutable product reference data.
type Catalog struct {
	Categories []Category
	Industries []IndustryMapping
	Equipment  []EquipmentMapping

	// Vocabulary is the fixed term list the extractor scans article text
	// against when deciding whether a candidate is product-related.
	Vocabulary []string
}

// ProductInfo is the result of a code lookup.
type ProductInfo struct {
	Code     string
	Name     string
	Category string
	Keywords []string
	UseCases []string
}

// Find scans categories for a product code.
func (c *Catalog) Find(code string) (ProductInfo, bool) {
	for _, cat := range c.Categories {
		for _, p := range cat.Products {
			if p.Code == code {
				return ProductInfo{
					Code:     p.Code,
					Name:     p.Name,
					Category: cat.Name,
					Keywords: p.Keywords,
					UseCases: p.UseCases,
				}, true
			}
		}
	}
	return ProductInfo{}, false
}

// IndustryProducts returns the product codes mapped to an industry name,
// or nil when the industry is unknown. Matching is exact on the lowercased
// industry key.
func (c *Catalog) IndustryProducts(industry string) []string {
	for _, m := range c.Industries {
		if m.Industry == industry {
			return m.Products
		}
	}
	return nil
}
