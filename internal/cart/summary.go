package cart

import "github.com/shopspring/decimal"

var displayDiscountRate = decimal.NewFromFloat(0.10)

// Summary is the price breakdown shown next to the cart. It is display only;
// orders always store the undiscounted total.
type Summary struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Delivery int64 `json:"delivery"`
	Total    int64 `json:"total"`
}

// Summarize applies a flat 10% discount rounded half up to whole rupees.
func Summarize(total int64) Summary {
	sub := decimal.NewFromInt(total)
	discount := sub.Mul(displayDiscountRate).Round(0).IntPart()
	return Summary{
		Subtotal: total,
		Discount: discount,
		Delivery: 0,
		Total:    total - discount,
	}
}
