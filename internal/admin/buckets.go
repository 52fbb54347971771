package admin

import (
	"errors"
	"strings"

	"github.com/wichananm65/styliqo-backend/internal/order"
)

var ErrUnknownBucket = errors.New("unknown order bucket")

// Bucket names shown as tabs in the order console.
const (
	BucketOrdered        = "Ordered"
	BucketShipped        = "Shipped"
	BucketOutForDelivery = "Out for Delivery"
	BucketDelivered      = "Delivered"
	BucketDeclined       = "Declined"
)

var BucketNames = []string{BucketOrdered, BucketShipped, BucketOutForDelivery, BucketDelivered, BucketDeclined}

var bucketByStatus = map[order.Status]string{
	order.StatusOrdered:        BucketOrdered,
	order.StatusShipping:       BucketShipped,
	order.StatusOutForDelivery: BucketOutForDelivery,
	order.StatusDelivered:      BucketDelivered,
	order.StatusDeclined:       BucketDeclined,
}

// BucketOf returns the tab an order with status s belongs to. Unrecognized
// statuses fall in no bucket.
func BucketOf(s order.Status) (string, bool) {
	b, ok := bucketByStatus[s]
	return b, ok
}

// ParseBucket accepts bucket names and any status spelling.
func ParseBucket(raw string) (string, error) {
	for _, b := range BucketNames {
		if strings.EqualFold(strings.TrimSpace(raw), b) {
			return b, nil
		}
	}
	if s, err := order.ParseStatus(raw); err == nil {
		b, _ := BucketOf(s)
		return b, nil
	}
	return "", ErrUnknownBucket
}

// Bucket is one tab of the console.
type Bucket struct {
	Name   string        `json:"name"`
	Count  int           `json:"count"`
	Orders []order.Order `json:"orders"`
}

// GroupOrders splits orders into every bucket, keeping each newest first.
func GroupOrders(orders []order.Order) []Bucket {
	sorted := append([]order.Order(nil), orders...)
	order.SortNewestFirst(sorted)

	idx := make(map[string]int, len(BucketNames))
	out := make([]Bucket, len(BucketNames))
	for i, name := range BucketNames {
		idx[name] = i
		out[i] = Bucket{Name: name, Orders: []order.Order{}}
	}
	for _, o := range sorted {
		name, ok := BucketOf(o.Status)
		if !ok {
			continue
		}
		b := &out[idx[name]]
		b.Orders = append(b.Orders, o)
		b.Count++
	}
	return out
}
