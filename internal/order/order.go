package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a cart line frozen at purchase time.
type Item struct {
	ProductID     string `json:"productId" bson:"productId"`
	Title         string `json:"title" bson:"title"`
	Price         int64  `json:"price" bson:"price"`
	OriginalPrice int64  `json:"originalPrice" bson:"originalPrice"`
	Quantity      int    `json:"quantity" bson:"quantity"`
	Size          string `json:"selectedSize" bson:"selectedSize"`
	Image         string `json:"image" bson:"image"`
}

// ShippingAddress is a copy of the address chosen at checkout.
type ShippingAddress struct {
	Name     string `json:"name" bson:"name"`
	Phone    string `json:"phone" bson:"phone"`
	HouseNo  string `json:"houseNo" bson:"houseNo"`
	RoadName string `json:"roadName" bson:"roadName"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	PinCode  string `json:"pinCode" bson:"pinCode"`
}

// Order is immutable after creation except for Status and UpdatedAt.
type Order struct {
	ID              string          `json:"id" bson:"_id"`
	Reference       string          `json:"reference" bson:"reference"`
	UserID          string          `json:"userId" bson:"userId"`
	UserEmail       string          `json:"userEmail" bson:"userEmail"`
	Items           []Item          `json:"items" bson:"items"`
	TotalAmount     int64           `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	Status          Status          `json:"status" bson:"status"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Draft is what checkout submits; the service assigns identity, status and timestamps.
type Draft struct {
	UserID          string
	UserEmail       string
	Items           []Item
	TotalAmount     int64
	PaymentMethod   string
	ShippingAddress ShippingAddress
}

// newReference builds the short human-facing order number.
func newReference(id string) string {
	return "STY-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:10])
}

func (d Draft) build(now time.Time) Order {
	id := uuid.NewString()
	return Order{
		ID:              id,
		Reference:       newReference(id),
		UserID:          d.UserID,
		UserEmail:       d.UserEmail,
		Items:           append([]Item(nil), d.Items...),
		TotalAmount:     d.TotalAmount,
		PaymentMethod:   d.PaymentMethod,
		ShippingAddress: d.ShippingAddress,
		Status:          StatusOrdered,
		CreatedAt:       now,
	}
}

// ItemCount is the total quantity across lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
