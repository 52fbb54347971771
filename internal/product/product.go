package product

import "time"

// Sizes offered on the product page.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// AllowedCategories is the storefront's fixed category list.
var AllowedCategories = []string{"Sarees", "Kurtis", "Western", "Men", "Kids", "Jewellery", "Bags", "Footwear"}

// Product is a catalog entry. Prices are whole rupees.
type Product struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Price         int64      `json:"price"`
	OriginalPrice int64      `json:"originalPrice"`
	Discount      int        `json:"discount"`
	Category      string     `json:"category"`
	StockQuantity int        `json:"stockQuantity"`
	Rating        float64    `json:"rating"`
	Reviews       int        `json:"reviews"`
	Image         string     `json:"image"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Input is the admin-editable part of a product.
type Input struct {
	Title         string  `json:"title"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"originalPrice"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stockQuantity"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	Image         string  `json:"image"`
	Description   string  `json:"description"`
}

// Validate returns every field problem at once, keyed by json field name.
func (in Input) Validate() map[string]string {
	errs := map[string]string{}
	if in.Title == "" {
		errs["title"] = "title is required"
	}
	if in.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if in.OriginalPrice < 0 {
		errs["originalPrice"] = "originalPrice must be >= 0"
	}
	if in.StockQuantity < 0 {
		errs["stockQuantity"] = "stockQuantity must be >= 0"
	}
	if in.Rating < 0 || in.Rating > 5 {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if in.Category != "" && !isAllowedCategory(in.Category) {
		errs["category"] = "invalid category"
	}
	return errs
}

// DiscountPercent derives the badge percentage from the two prices.
func DiscountPercent(price, original int64) int {
	if original <= 0 || price >= original {
		return 0
	}
	return int((original - price) * 100 / original)
}

func isAllowedCategory(c string) bool {
	for _, a := range AllowedCategories {
		if a == c {
			return true
		}
	}
	return false
}

func (in Input) apply(p Product) Product {
	p.Title = in.Title
	p.Price = in.Price
	p.OriginalPrice = in.OriginalPrice
	if p.OriginalPrice == 0 {
		p.OriginalPrice = in.Price
	}
	p.Discount = DiscountPercent(p.Price, p.OriginalPrice)
	p.Category = in.Category
	p.StockQuantity = in.StockQuantity
	p.Rating = in.Rating
	p.Reviews = in.Reviews
	p.Image = in.Image
	p.Description = in.Description
	return p
}
