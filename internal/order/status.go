package order

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the canonical lifecycle state of an order.
type Status string

const (
	StatusOrdered        Status = "Ordered"
	StatusShipping       Status = "Shipping"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusDeclined       Status = "Declined"
)

// Action is an admin-triggered transition.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionAdvance Action = "advance"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrUnknownAction     = errors.New("unknown order action")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Statuses lists the canonical states in lifecycle order.
var Statuses = []Status{StatusOrdered, StatusShipping, StatusOutForDelivery, StatusDelivered, StatusDeclined}

// aliases maps every spelling found in stored orders to its canonical state.
// Keys are lower-cased with inner whitespace collapsed.
var aliases = map[string]Status{
	"ordered":          StatusOrdered,
	"upcoming":         StatusOrdered,
	"approved":         StatusOrdered,
	"packing":          StatusOrdered,
	"pending":          StatusOrdered,
	"processing":       StatusOrdered,
	"shipping":         StatusShipping,
	"shipped":          StatusShipping,
	"out for delivery": StatusOutForDelivery,
	"delivered":        StatusDelivered,
	"declined":         StatusDeclined,
}

var transitions = map[Status]map[Action]Status{
	StatusOrdered: {
		ActionAccept:  StatusShipping,
		ActionDecline: StatusDeclined,
	},
	StatusShipping: {
		ActionAdvance: StatusOutForDelivery,
	},
	StatusOutForDelivery: {
		ActionAdvance: StatusDelivered,
	},
}

func aliasKey(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// ParseStatus collapses legacy synonyms to a canonical Status.
func ParseStatus(raw string) (Status, error) {
	if s, ok := aliases[aliasKey(raw)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// NormalizeStatus is ParseStatus for values read back from storage: an
// unrecognized value is kept verbatim so it still shows up, with no actions.
func NormalizeStatus(raw string) Status {
	if s, err := ParseStatus(raw); err == nil {
		return s
	}
	return Status(strings.TrimSpace(raw))
}

func ParseAction(raw string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(raw))); a {
	case ActionAccept, ActionDecline, ActionAdvance:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// Valid reports whether s is one of the canonical states.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal is true for Delivered and Declined.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusDeclined
}

// Next returns the state reached by applying a to from.
func Next(from Status, a Action) (Status, error) {
	to, ok := transitions[from][a]
	if !ok {
		return from, fmt.Errorf("%w: %s from %q", ErrInvalidTransition, a, from)
	}
	return to, nil
}

// AllowedActions lists the actions valid from s in a stable order.
func AllowedActions(s Status) []Action {
	out := make([]Action, 0, 2)
	for _, a := range []Action{ActionAccept, ActionAdvance, ActionDecline} {
		if _, ok := transitions[s][a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Reachable lists the states one admin transition away from s.
func Reachable(s Status) []Status {
	out := make([]Status, 0, 2)
	for _, a := range AllowedActions(s) {
		out = append(out, transitions[s][a])
	}
	return out
}
