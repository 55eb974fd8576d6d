package fixture

import (
	"fmt"
	"strings"
	"time"

	"suxxus-store/internal/money"
	"suxxus-store/internal/product"
)

// Seed data mirrors the demo apparel catalog: a handful of flagship
// products plus generated fill so every category has enough rows to
// exercise filtering, facets and sorting.

var seedCategories = []string{
	"New Launches",
	"Shirts",
	"Polo Neck T-Shirts",
	"Round Neck T-Shirts",
	"Joggers",
	"Jeans",
	"Trousers",
	"Shorts",
}

var (
	seedSizes  = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL"}
	seedColors = []string{"Black", "White", "Gray", "Navy", "Blue", "Red", "Green", "Purple"}
	seedTags   = map[string][]string{
		"New Launches":        {"new", "premium", "cotton"},
		"Shirts":              {"formal", "office"},
		"Polo Neck T-Shirts":  {"polo", "casual", "cotton"},
		"Round Neck T-Shirts": {"organic", "basic", "cotton"},
		"Joggers":             {"athletic", "performance"},
		"Jeans":               {"denim", "casual"},
		"Trousers":            {"formal", "office"},
		"Shorts":              {"summer", "casual"},
	}
)

const seedVendor = "SUXXUS"

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func usd(amount string) money.Money {
	return money.MustParse(amount, "USD")
}

// seedProducts builds the fixture catalog, perCategory products per
// category, prices staggered so the observed price range is wide.
func seedProducts(perCategory int) []*product.Product {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	products := make([]*product.Product, 0, len(seedCategories)*perCategory)

	id := 1
	for ci, category := range seedCategories {
		for i := 1; i <= perCategory; i++ {
			basePrice := 29 + ci*10 + i*2
			color := seedColors[i%len(seedColors)]
			size := seedSizes[i%len(seedSizes)]
			title := fmt.Sprintf("%s Style %d", category, i)
			created := base.Add(time.Duration(id) * 24 * time.Hour)

			price := usd(fmt.Sprintf("%d.99", basePrice))
			compareAt := usd(fmt.Sprintf("%d.99", basePrice+20))
			available := i%9 != 0 // a few sold-out rows per category

			p := &product.Product{
				ID:          fmt.Sprintf("gid://suxxus/Product/%d", id),
				Handle:      fmt.Sprintf("%s-style-%d", slugify(category), i),
				Title:       title,
				Description: fmt.Sprintf("Premium %s style %d with modern design and comfort fit.", strings.ToLower(category), i),
				Images: []product.Image{
					{URL: fmt.Sprintf("https://cdn.suxxus.test/%s/%d.jpg", slugify(category), i), AltText: title},
					{URL: fmt.Sprintf("https://cdn.suxxus.test/%s/%d-alt.jpg", slugify(category), i)},
				},
				Variants: []*product.Variant{
					{
						ID:             fmt.Sprintf("gid://suxxus/ProductVariant/%d", id),
						Title:          color + " / " + size,
						Price:          price,
						CompareAtPrice: &compareAt,
						Available:      available,
						SelectedOptions: []product.SelectedOption{
							{Name: "Color", Value: color},
							{Name: "Size", Value: size},
						},
					},
				},
				Options: []product.Option{
					{Name: "Color", Values: seedColors},
					{Name: "Size", Values: seedSizes},
				},
				Tags:        seedTags[category],
				ProductType: category,
				Vendor:      seedVendor,
				PriceRange:  product.PriceRange{Min: price, Max: price},
				CreatedAt:   created,
				UpdatedAt:   created,
			}
			products = append(products, p)
			id++
		}
	}
	return products
}
