package address

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/logging"
)

var home = Input{Name: "Asha", Phone: "9876543210", HouseNo: "12B", RoadName: "MG Road", City: "Pune", State: "Maharashtra", PinCode: "411001"}

type countingRepo struct {
	Repository
	creates int
}

func (r *countingRepo) Create(ctx context.Context, a Address) (Address, error) {
	r.creates++
	return r.Repository.Create(ctx, a)
}

func newTestService(repo Repository) *Service {
	s := NewService(repo, logging.Discard(), time.Second)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return s
}

func TestAddAddressValidatesBeforeWriting(t *testing.T) {
	repo := &countingRepo{Repository: NewInMemoryRepository(nil)}
	svc := newTestService(repo)

	in := home
	in.City = "  "
	in.PinCode = ""
	_, err := svc.AddAddress(context.Background(), "u-1", in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 2 || ve.Fields["city"] == "" || ve.Fields["pinCode"] == "" {
		t.Fatalf("unexpected field errors %v", ve.Fields)
	}
	if repo.creates != 0 {
		t.Fatalf("repository called for invalid input")
	}
}

func TestAddAddressNewestFirstAndFeed(t *testing.T) {
	svc := newTestService(NewInMemoryRepository(nil))
	ctx := context.Background()

	var snapshots [][]Address
	unsub := svc.Subscribe("u-1", func(a []Address) { snapshots = append(snapshots, a) }, func(error) {})
	defer unsub()

	first, err := svc.AddAddress(ctx, "u-1", home)
	if err != nil || first.ID == "" {
		t.Fatalf("add failed: %v %+v", err, first)
	}
	office := home
	office.HouseNo = "Tower 3"
	second, _ := svc.AddAddress(ctx, "u-1", office)
	svc.AddAddress(ctx, "u-2", home)

	list, _ := svc.ListAddresses(ctx, "u-1")
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if len(snapshots) != 3 {
		t.Fatalf("expected initial snapshot plus two updates, got %d", len(snapshots))
	}
	if len(snapshots[0]) != 0 || len(snapshots[2]) != 2 {
		t.Fatalf("unexpected snapshots %v", snapshots)
	}
}

func TestOfflineRepository(t *testing.T) {
	svc := newTestService(OfflineRepository{})
	list, err := svc.ListAddresses(context.Background(), "u-1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}
	if _, err := svc.AddAddress(context.Background(), "u-1", home); !backend.IsUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
