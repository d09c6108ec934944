package filter

import (
	"github.com/outfitly/stylist/internal/domain/product"
)

// row is a terse fixture constructor.
func row(gender, name, desc, detail, price, colors, sizes string) product.Product {
	return product.New(product.Product{
		Gender:              gender,
		Name:                name,
		Description:         desc,
		DetailedDescription: detail,
		RawPrice:            price,
		Colors:              colors,
		Sizes:               sizes,
	})
}

// fixtureRows is a small catalog exercising every stage: both genders,
// synonym-reachable categories, a parse-proof price.
func fixtureRows() []product.Product {
	return []product.Product{
		row("Men", "Nike Sportswear Club", "Men's Pullover Hoodie", "Fleece hoodie in black", "$49.99", "Black/White", "S, M, L"),
		row("Women", "Nike Sportswear", "Women's Hoodie", "Oversized fleece hoodie", "$55.00", "Pink", "XS, S, M"),
		row("Men", "Nike Dri-FIT", "Men's Training Pants", "Tapered woven trousers", "$65.00", "Navy", "M, L, XL"),
		row("Women", "Nike Yoga", "Women's High-Waisted Leggings", "Soft leggings", "1,299.00", "Black", "S, M"),
		row("Men", "Nike Club", "Men's Woven Jacket", "Lightweight coat", "N/A", "Gray", "L, XL"),
		row("Women", "Nike Air", "Women's Cropped Top", "Ribbed blouse", "$25.00", "White/Cream", "XS, S"),
	}
}

// fixtureStore adapts fixture rows to the CatalogReader contract.
type fixtureStore struct {
	rows []product.Product
}

func (s *fixtureStore) Rows() []product.Product { return s.rows }
func (s *fixtureStore) Empty() bool             { return len(s.rows) == 0 }

func defaultStore() *fixtureStore {
	return &fixtureStore{rows: fixtureRows()}
}
