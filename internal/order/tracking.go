package order

// TrackingSteps are the stages shown on the customer's order page.
var TrackingSteps = []string{"Ordered", "Shipped", "Out for Delivery", "Delivered"}

// Tracking is the read-only progress view of an order. Current is 1-based.
type Tracking struct {
	Steps    []string `json:"steps"`
	Current  int      `json:"current"`
	Declined bool     `json:"declined"`
	Label    string   `json:"label"`
}

func Track(s Status) Tracking {
	t := Tracking{Steps: TrackingSteps, Current: 1, Label: Label(s)}
	switch s {
	case StatusShipping:
		t.Current = 2
	case StatusOutForDelivery:
		t.Current = 3
	case StatusDelivered:
		t.Current = 4
	case StatusDeclined:
		t.Declined = true
	}
	return t
}
