package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/address"
	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/cart"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
)

const (
	GuestUID   = "guest"
	GuestEmail = "guest@example.com"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoCheckout        = errors.New("no checkout in progress")
	ErrWrongStep         = errors.New("not allowed at this checkout step")
	ErrNoAddressSelected = errors.New("select a shipping address first")
	ErrUnknownAddress    = errors.New("address not found")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrInvalidUPI        = errors.New("invalid UPI id")
	ErrUPINotVerified    = errors.New("verify the UPI id before placing the order")
	ErrPlacing           = errors.New("order placement already in progress")
)

// AddressBook is the part of the address service checkout needs.
type AddressBook interface {
	Subscribe(userID string, onData func([]address.Address), onErr func(error)) realtime.Unsubscribe
	AddAddress(ctx context.Context, userID string, in address.Input) (address.Address, error)
}

type OrderPlacer interface {
	Create(ctx context.Context, d order.Draft) (order.Order, error)
}

// Carts resolves the caller's cart.
type Carts interface {
	Cart(id auth.Identity) *cart.Store
}

// Service runs one Flow per shopper.
type Service struct {
	addresses AddressBook
	orders    OrderPlacer
	carts     Carts
	upi       *UPIVerifier
	log       logrus.FieldLogger

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewService(addresses AddressBook, orders OrderPlacer, carts Carts, upi *UPIVerifier, log logrus.FieldLogger) *Service {
	return &Service{
		addresses: addresses,
		orders:    orders,
		carts:     carts,
		upi:       upi,
		log:       log,
		flows:     make(map[string]*Flow),
	}
}

// Begin starts checkout, or resumes the one in progress. An empty cart is
// refused unless the shopper is looking at a confirmation.
func (s *Service) Begin(id auth.Identity) (State, error) {
	c := s.carts.Cart(id)

	s.mu.Lock()
	f, ok := s.flows[id.UID]
	if ok {
		f.mu.Lock()
		done := f.step == StepConfirmation
		f.mu.Unlock()
		switch {
		case done && c.Len() == 0:
			s.mu.Unlock()
			return f.state(c), nil
		case !done && c.Len() > 0:
			s.mu.Unlock()
			return f.state(c), nil
		}
		delete(s.flows, id.UID)
	}
	if c.Len() == 0 {
		s.mu.Unlock()
		if ok {
			f.release()
		}
		return State{}, ErrEmptyCart
	}
	nf := newFlow()
	s.flows[id.UID] = nf
	s.mu.Unlock()

	if ok {
		f.release()
	}
	unsub := s.addresses.Subscribe(id.UID, nf.setAddresses, nf.setAddressError)
	nf.mu.Lock()
	nf.unsubscribe = unsub
	nf.mu.Unlock()
	return nf.state(c), nil
}

// State returns the current checkout without changing it.
func (s *Service) State(id auth.Identity) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	return f.state(s.carts.Cart(id)), nil
}

func (s *Service) SelectAddress(id auth.Identity, addressID string) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	if f.step != StepAddress {
		f.mu.Unlock()
		return State{}, ErrWrongStep
	}
	if _, ok := f.find(addressID); !ok {
		f.mu.Unlock()
		return State{}, ErrUnknownAddress
	}
	f.selectedID = addressID
	f.mu.Unlock()
	return f.state(s.carts.Cart(id)), nil
}

// ShowAddressForm toggles the new-address form.
func (s *Service) ShowAddressForm(id auth.Identity, show bool) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	f.showForm = show
	f.mu.Unlock()
	return f.state(s.carts.Cart(id)), nil
}

// AddAddress saves a new address, selects it and collapses the form.
func (s *Service) AddAddress(ctx context.Context, id auth.Identity, in address.Input) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	step := f.step
	f.mu.Unlock()
	if step != StepAddress {
		return State{}, ErrWrongStep
	}

	created, err := s.addresses.AddAddress(ctx, id.UID, in)
	if err != nil {
		return State{}, err
	}

	f.mu.Lock()
	if _, ok := f.find(created.ID); !ok {
		// the feed may lag behind the write
		f.addresses = append([]address.Address{created}, f.addresses...)
	}
	f.selectedID = created.ID
	f.showForm = false
	f.mu.Unlock()
	return f.state(s.carts.Cart(id)), nil
}

// ProceedToPayment needs a selected address.
func (s *Service) ProceedToPayment(id auth.Identity) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	if f.step != StepAddress {
		f.mu.Unlock()
		return State{}, ErrWrongStep
	}
	if _, ok := f.selected(); !ok {
		f.mu.Unlock()
		return State{}, ErrNoAddressSelected
	}
	f.step = StepPayment
	f.mu.Unlock()
	return f.state(s.carts.Cart(id)), nil
}

// SelectPayment picks cash on delivery or an online method. Changing the
// method drops any earlier UPI verification.
func (s *Service) SelectPayment(id auth.Identity, mode, method string) (State, error) {
	p, err := NewPayment(mode, method)
	if err != nil {
		return State{}, err
	}
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	if f.step != StepPayment {
		f.mu.Unlock()
		return State{}, ErrWrongStep
	}
	if p != f.payment {
		f.upiID = ""
		f.upiVerified = false
	}
	f.payment = p
	f.mu.Unlock()
	return f.state(s.carts.Cart(id)), nil
}

// VerifyUPI runs the simulated check and records the outcome.
func (s *Service) VerifyUPI(ctx context.Context, id auth.Identity, upiID string) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	if f.step != StepPayment || f.payment.Method != MethodUPI {
		f.mu.Unlock()
		return State{}, ErrWrongStep
	}
	f.upiID = upiID
	f.upiVerified = false
	f.mu.Unlock()

	ok, err := s.upi.Verify(ctx, upiID)
	if err != nil {
		return State{}, err
	}

	f.mu.Lock()
	// a newer id may have been submitted meanwhile
	if f.upiID == upiID {
		f.upiVerified = ok
	}
	f.mu.Unlock()
	if !ok {
		return f.state(s.carts.Cart(id)), ErrInvalidUPI
	}
	return f.state(s.carts.Cart(id)), nil
}

// PlaceOrder submits the cart snapshot. The cart is cleared and the flow
// confirmed only after the order is stored; on failure both are left as they were.
func (s *Service) PlaceOrder(ctx context.Context, id auth.Identity) (State, error) {
	f, err := s.flow(id.UID)
	if err != nil {
		return State{}, err
	}
	c := s.carts.Cart(id)

	f.mu.Lock()
	if f.step != StepPayment {
		f.mu.Unlock()
		return State{}, ErrWrongStep
	}
	if f.placing {
		f.mu.Unlock()
		return State{}, ErrPlacing
	}
	addr, ok := f.selected()
	if !ok {
		f.mu.Unlock()
		return State{}, ErrNoAddressSelected
	}
	if f.payment.Method == MethodUPI && !f.upiVerified {
		f.mu.Unlock()
		return State{}, ErrUPINotVerified
	}
	items, total := c.Snapshot()
	if len(items) == 0 {
		f.mu.Unlock()
		return State{}, ErrEmptyCart
	}
	draft := assemble(id, items, total, f.payment, addr)
	f.placing = true
	f.mu.Unlock()

	placed, err := s.orders.Create(ctx, draft)

	f.mu.Lock()
	f.placing = false
	if err != nil {
		f.mu.Unlock()
		s.log.WithError(err).WithField("user_id", id.UID).Warn("checkout: order placement failed")
		return State{}, err
	}
	f.step = StepConfirmation
	f.placed = &placed
	f.mu.Unlock()

	c.Clear()
	f.release()
	return f.state(c), nil
}

// Reset drops the shopper's checkout. Wired to session close.
func (s *Service) Reset(uid string) {
	s.mu.Lock()
	f, ok := s.flows[uid]
	delete(s.flows, uid)
	s.mu.Unlock()
	if ok {
		f.release()
	}
}

func (s *Service) flow(uid string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[uid]
	if !ok {
		return nil, ErrNoCheckout
	}
	return f, nil
}

// assemble builds the order draft, filling every field with a safe default.
func assemble(id auth.Identity, items []cart.Item, total int64, p Payment, a address.Address) order.Draft {
	d := order.Draft{
		UserID:        id.UID,
		UserEmail:     id.Email,
		Items:         make([]order.Item, 0, len(items)),
		TotalAmount:   total,
		PaymentMethod: p.StoredMethod(),
		ShippingAddress: order.ShippingAddress{
			Name:     a.Name,
			Phone:    a.Phone,
			HouseNo:  a.HouseNo,
			RoadName: a.RoadName,
			City:     a.City,
			State:    a.State,
			PinCode:  a.PinCode,
		},
	}
	if d.UserID == "" {
		d.UserID = GuestUID
	}
	if d.UserEmail == "" {
		d.UserEmail = GuestEmail
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = MethodCOD
	}
	for _, it := range items {
		size := it.Size
		if size == "" {
			size = cart.DefaultSize
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		d.Items = append(d.Items, order.Item{
			ProductID:     it.ProductID,
			Title:         it.Title,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Quantity:      qty,
			Size:          size,
			Image:         it.Image,
		})
	}
	return d
}
