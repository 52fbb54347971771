package order

// Presentation strings. Nothing in the state machine reads these.

var statusLabels = map[Status]string{
	StatusOrdered:        "Ordered",
	StatusShipping:       "Shipped",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusDeclined:       "Declined",
}

// Label is the customer-facing name of s.
func Label(s Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ActionLabel is the admin button caption for applying a from s.
func ActionLabel(s Status, a Action) string {
	switch a {
	case ActionAccept:
		return "Accept"
	case ActionDecline:
		return "Decline"
	case ActionAdvance:
		if s == StatusOutForDelivery {
			return "Mark Delivered"
		}
		return "Out for Delivery"
	}
	return string(a)
}
