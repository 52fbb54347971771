package admin

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/user"
)

// Users lists registered profiles.
type Users interface {
	List(ctx context.Context) ([]user.User, error)
}

// Customer is one row of the admin customer list. Synthesized rows come from
// orders placed by accounts with no profile record.
type Customer struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	Orders      int       `json:"orders"`
	Synthesized bool      `json:"synthesized"`
}

type Directory struct {
	users      Users
	orders     Orders
	adminEmail string
}

func NewDirectory(users Users, orders Orders, adminEmail string) *Directory {
	return &Directory{users: users, orders: orders, adminEmail: adminEmail}
}

func (d *Directory) Customers(ctx context.Context) ([]Customer, error) {
	users, err := d.users.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := d.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return MergeCustomers(users, orders, d.adminEmail), nil
}

// MergeCustomers joins profiles with customers known only from their orders.
// A synthesized customer takes its name, email and date from their oldest
// order. The admin account is left out.
func MergeCustomers(users []user.User, orders []order.Order, adminEmail string) []Customer {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.UserID]++
	}

	out := make([]Customer, 0, len(users))
	known := make(map[string]struct{}, len(users))
	for _, u := range users {
		known[u.UID] = struct{}{}
		if isAdminEmail(u.Email, adminEmail) {
			continue
		}
		role := u.Role
		if role == "" {
			role = auth.RoleCustomer
		}
		out = append(out, Customer{
			UID: u.UID, DisplayName: u.DisplayName, Email: u.Email, Role: role,
			CreatedAt: u.CreatedAt, Orders: counts[u.UID],
		})
	}

	oldest := append([]order.Order(nil), orders...)
	sort.SliceStable(oldest, func(i, j int) bool { return oldest[i].CreatedAt.Before(oldest[j].CreatedAt) })
	for _, o := range oldest {
		if o.UserID == "" {
			continue
		}
		if _, ok := known[o.UserID]; ok {
			continue
		}
		known[o.UserID] = struct{}{}
		if isAdminEmail(o.UserEmail, adminEmail) {
			continue
		}
		out = append(out, Customer{
			UID:         o.UserID,
			DisplayName: synthesizedName(o),
			Email:       o.UserEmail,
			Role:        auth.RoleCustomer,
			CreatedAt:   o.CreatedAt,
			Orders:      counts[o.UserID],
			Synthesized: true,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func synthesizedName(o order.Order) string {
	if name := strings.TrimSpace(o.ShippingAddress.Name); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(o.UserEmail, "@"); ok && local != "" {
		return local
	}
	return "Unknown"
}

func isAdminEmail(email, adminEmail string) bool {
	return adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), adminEmail)
}
