package admin

import "github.com/wichananm65/styliqo-backend/internal/order"

// Stats is the dashboard summary.
type Stats struct {
	Revenue   int64          `json:"revenue"`
	Orders    int            `json:"orders"`
	Customers int            `json:"customers"`
	Items     int            `json:"items"`
	Buckets   map[string]int `json:"buckets"`
}

// ComputeStats totals orders. Declined orders count towards their bucket but
// not towards revenue or items sold.
func ComputeStats(orders []order.Order, customers int) Stats {
	st := Stats{Orders: len(orders), Customers: customers, Buckets: make(map[string]int, len(BucketNames))}
	for _, name := range BucketNames {
		st.Buckets[name] = 0
	}
	for _, o := range orders {
		if b, ok := BucketOf(o.Status); ok {
			st.Buckets[b]++
		}
		if o.Status == order.StatusDeclined {
			continue
		}
		st.Revenue += o.TotalAmount
		st.Items += o.ItemCount()
	}
	return st
}
