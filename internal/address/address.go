package address

import (
	"strings"
	"time"
)

// Address is an append-only shipping address owned by one user.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	HouseNo   string    `json:"houseNo"`
	RoadName  string    `json:"roadName"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	PinCode   string    `json:"pinCode"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input is the user-entered part of an Address.
type Input struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	HouseNo  string `json:"houseNo"`
	RoadName string `json:"roadName"`
	City     string `json:"city"`
	State    string `json:"state"`
	PinCode  string `json:"pinCode"`
}

// Validate reports every blank field, keyed by json name.
func (in Input) Validate() map[string]string {
	errs := map[string]string{}
	fields := []struct {
		key, value string
	}{
		{"name", in.Name},
		{"phone", in.Phone},
		{"houseNo", in.HouseNo},
		{"roadName", in.RoadName},
		{"city", in.City},
		{"state", in.State},
		{"pinCode", in.PinCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errs[f.key] = f.key + " is required"
		}
	}
	return errs
}

func (in Input) toAddress(id, userID string, now time.Time) Address {
	return Address{
		ID:        id,
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		HouseNo:   strings.TrimSpace(in.HouseNo),
		RoadName:  strings.TrimSpace(in.RoadName),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		PinCode:   strings.TrimSpace(in.PinCode),
		CreatedAt: now,
	}
}
