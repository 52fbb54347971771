package checkout

import (
	"context"
	"strings"
	"time"
)

const (
	ModeCOD    = "cod"
	ModeOnline = "online"

	MethodCOD        = "cod"
	MethodUPI        = "upi"
	MethodCard       = "card"
	MethodNetBanking = "netbanking"
)

// DefaultUPIDelay is how long the simulated UPI check takes.
const DefaultUPIDelay = 1500 * time.Millisecond

// Payment is the shopper's chosen way to pay.
type Payment struct {
	Mode   string `json:"mode"`
	Method string `json:"method,omitempty"`
}

// NewPayment validates a mode/method pair. Cash on delivery ignores method.
func NewPayment(mode, method string) (Payment, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	method = strings.ToLower(strings.TrimSpace(method))
	switch mode {
	case ModeCOD:
		return Payment{Mode: ModeCOD}, nil
	case ModeOnline:
		switch method {
		case MethodUPI, MethodCard, MethodNetBanking:
			return Payment{Mode: ModeOnline, Method: method}, nil
		}
	}
	return Payment{}, ErrInvalidPayment
}

// StoredMethod is the value written to the order's paymentMethod field.
func (p Payment) StoredMethod() string {
	if p.Mode == ModeCOD {
		return MethodCOD
	}
	return p.Method
}

// UPIVerifier checks a UPI id. No payment network is contacted: after Delay
// an id is valid when it contains "@".
type UPIVerifier struct {
	Delay time.Duration
}

func NewUPIVerifier(delay time.Duration) *UPIVerifier {
	return &UPIVerifier{Delay: delay}
}

func (v *UPIVerifier) Verify(ctx context.Context, upiID string) (bool, error) {
	if v.Delay > 0 {
		t := time.NewTimer(v.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return strings.Contains(upiID, "@"), nil
}
