package checkout

import (
	"sync"

	"github.com/wichananm65/styliqo-backend/internal/address"
	"github.com/wichananm65/styliqo-backend/internal/cart"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
)

// Step is a checkout stage. Steps only move forward.
type Step int

const (
	StepAddress      Step = 1
	StepPayment      Step = 2
	StepConfirmation Step = 3
)

func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// Flow is one shopper's checkout in progress.
type Flow struct {
	mu sync.Mutex

	step        Step
	addresses   []address.Address
	addrErr     error
	selectedID  string
	showForm    bool
	payment     Payment
	upiID       string
	upiVerified bool
	placing     bool
	placed      *order.Order

	unsubscribe realtime.Unsubscribe
}

func newFlow() *Flow {
	return &Flow{step: StepAddress, payment: Payment{Mode: ModeCOD}}
}

// setAddresses is the address feed callback.
func (f *Flow) setAddresses(list []address.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addresses = list
	f.addrErr = nil
	if len(list) == 0 {
		f.showForm = true
	}
}

func (f *Flow) setAddressError(err error) {
	f.mu.Lock()
	f.addrErr = err
	f.mu.Unlock()
}

// selected returns the chosen address from the current list. Caller holds mu.
func (f *Flow) selected() (address.Address, bool) {
	return f.find(f.selectedID)
}

// find looks up an address by id. Caller holds mu.
func (f *Flow) find(id string) (address.Address, bool) {
	for _, a := range f.addresses {
		if a.ID == id {
			return a, true
		}
	}
	return address.Address{}, false
}

func (f *Flow) release() {
	f.mu.Lock()
	unsub := f.unsubscribe
	f.unsubscribe = nil
	f.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// State is the client-facing view of a Flow.
type State struct {
	Step              Step              `json:"step"`
	StepName          string            `json:"stepName"`
	Addresses         []address.Address `json:"addresses"`
	AddressError      string            `json:"addressError,omitempty"`
	SelectedAddressID string            `json:"selectedAddressId,omitempty"`
	ShowAddressForm   bool              `json:"showAddressForm"`
	Payment           Payment           `json:"payment"`
	UPIID             string            `json:"upiId,omitempty"`
	UPIVerified       bool              `json:"upiVerified"`
	Items             []cart.Item       `json:"items"`
	Summary           cart.Summary      `json:"summary"`
	Order             *order.Order      `json:"order,omitempty"`
}

func (f *Flow) state(c *cart.Store) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := State{
		Step:              f.step,
		StepName:          f.step.String(),
		Addresses:         append([]address.Address{}, f.addresses...),
		SelectedAddressID: f.selectedID,
		ShowAddressForm:   f.showForm,
		Payment:           f.payment,
		UPIID:             f.upiID,
		UPIVerified:       f.upiVerified,
		Items:             c.Items(),
		Summary:           cart.Summarize(c.TotalPrice()),
	}
	if f.addrErr != nil {
		st.AddressError = f.addrErr.Error()
	}
	if f.placed != nil {
		o := *f.placed
		st.Order = &o
	}
	return st
}
