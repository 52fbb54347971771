package admin

import (
	"context"
	"testing"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/user"
)

func TestMergeCustomers(t *testing.T) {
	users := []user.User{
		{UID: "u-1", Email: "u-1@example.com", DisplayName: "Asha", Role: auth.RoleCustomer, CreatedAt: base},
		{UID: "admin", Email: "admin@gmail.com", DisplayName: "Admin", Role: auth.RoleAdmin, CreatedAt: base},
	}

	noName := seedOrder("o6", "u-4", order.StatusOrdered, 6)
	noName.ShippingAddress.Name = ""
	anonymous := seedOrder("o7", "u-5", order.StatusOrdered, 7)
	anonymous.ShippingAddress.Name = " "
	anonymous.UserEmail = ""
	adminOrder := seedOrder("o8", "admin-2", order.StatusOrdered, 8)
	adminOrder.UserEmail = "Admin@Gmail.com"

	orders := append(seededOrders(), noName, anonymous, adminOrder)
	// a later order from u-2 must not change when they became a customer
	later := seedOrder("o9", "u-2", order.StatusOrdered, 9)
	later.ShippingAddress.Name = "Someone Else"
	orders = append(orders, later)

	got := MergeCustomers(users, orders, "admin@gmail.com")
	byUID := map[string]Customer{}
	for _, c := range got {
		byUID[c.UID] = c
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 customers, got %+v", got)
	}
	if _, ok := byUID["admin"]; ok {
		t.Fatalf("admin must be excluded")
	}
	if _, ok := byUID["admin-2"]; ok {
		t.Fatalf("orders by the admin email must be excluded")
	}
	if c := byUID["u-1"]; c.Synthesized || c.DisplayName != "Asha" || c.Orders != 2 {
		t.Fatalf("unexpected profile customer: %+v", c)
	}
	if c := byUID["u-2"]; !c.Synthesized || c.DisplayName != "Asha" || c.Orders != 3 || !c.CreatedAt.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("unexpected synthesized customer: %+v", c)
	}
	if c := byUID["u-4"]; c.DisplayName != "u-4" || c.Role != auth.RoleCustomer {
		t.Fatalf("expected email local part, got %+v", c)
	}
	if c := byUID["u-5"]; c.DisplayName != "Unknown" {
		t.Fatalf("expected Unknown, got %+v", c)
	}
	if got[0].UID != "u-5" || got[len(got)-1].UID != "u-1" {
		t.Fatalf("expected newest first, got %s .. %s", got[0].UID, got[len(got)-1].UID)
	}
}

func TestDirectoryCustomers(t *testing.T) {
	users := user.NewService(user.NewInMemoryRepository(nil), "admin@gmail.com")
	d := NewDirectory(users, newOrderService(seededOrders()), "admin@gmail.com")
	got, err := d.Customers(context.Background())
	if err != nil || len(got) != 3 {
		t.Fatalf("expected 3 synthesized customers, got %+v %v", got, err)
	}
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(seededOrders(), 3)
	if st.Orders != 5 || st.Customers != 3 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.Revenue != 4*2598 || st.Items != 8 {
		t.Fatalf("declined orders must not count towards revenue: %+v", st)
	}
	if st.Buckets[BucketOrdered] != 2 || st.Buckets[BucketDeclined] != 1 || st.Buckets[BucketOutForDelivery] != 0 {
		t.Fatalf("unexpected buckets: %+v", st.Buckets)
	}
}
