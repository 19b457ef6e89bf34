package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

func newDonationFixture() (*DonationService, *stubDonationRepo, *stubUserRepo) {
	donations := newStubDonationRepo()
	users := newStubUserRepo()
	svc := NewDonationService(donations, users, testLogger())
	return svc, donations, users
}

func TestDonationService_Create_Defaults(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "alice", Email: "alice@example.com"})

	base := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	d, err := svc.Create(context.Background(), ports.CreateDonationInput{
		BloodType: "o+",
		Amount:    2,
	}, "alice")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if d.BloodType != "O+" {
		t.Fatalf("blood type not canonicalised: %q", d.BloodType)
	}
	if !d.Available {
		t.Fatalf("donation must default to available")
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !d.DonationDate.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, d.DonationDate)
	}
	if d.DonorUsername != "alice" || d.DonorID == "" {
		t.Fatalf("donor not attached: %+v", d)
	}
}

func TestDonationService_Create_ExplicitValues(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "bob"})

	date := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	d, err := svc.Create(context.Background(), ports.CreateDonationInput{
		BloodType:    "AB-",
		Amount:       1,
		DonationDate: date,
		Available:    boolPtr(false),
	}, "bob")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if d.Available {
		t.Fatalf("explicit available=false was ignored")
	}
	if !d.DonationDate.Equal(date) {
		t.Fatalf("explicit date was ignored")
	}
}

func TestDonationService_Create_Validation(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "carol"})
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateDonationInput{BloodType: "X+", Amount: 1}, "carol"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blood type, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateDonationInput{BloodType: "A+", Amount: 0}, "carol"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for amount, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateDonationInput{BloodType: "A+", Amount: 1}, "ghost"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestDonationService_Update_Patch(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "dave"})
	ctx := context.Background()

	d, err := svc.Create(ctx, ports.CreateDonationInput{BloodType: "A+", Amount: 1, Location: "north"}, "dave")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, d.ID, domain.DonationPatch{
		Amount:   intPtr(3),
		Location: strPtr("south"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Amount != 3 || updated.Location != "south" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.BloodType != "A+" {
		t.Fatalf("untouched field changed: %q", updated.BloodType)
	}

	if _, err := svc.Update(ctx, d.ID, domain.DonationPatch{Amount: intPtr(-1)}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-positive amount, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", domain.DonationPatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDonationService_Update_UnknownDonorID(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "erin"})
	ctx := context.Background()

	d, err := svc.Create(ctx, ports.CreateDonationInput{BloodType: "B+", Amount: 1}, "erin")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Update(ctx, d.ID, domain.DonationPatch{DonorID: strPtr("nope")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown donor id, got %v", err)
	}
}

func TestDonationService_MarkUsed_Idempotent(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "frank"})
	ctx := context.Background()

	d, err := svc.Create(ctx, ports.CreateDonationInput{BloodType: "O-", Amount: 1}, "frank")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, err := svc.MarkUsed(ctx, d.ID)
	if err != nil {
		t.Fatalf("MarkUsed returned error: %v", err)
	}
	if first.Available {
		t.Fatalf("donation still available after MarkUsed")
	}

	second, err := svc.MarkUsed(ctx, d.ID)
	if err != nil {
		t.Fatalf("second MarkUsed must succeed, got %v", err)
	}
	if second.Available {
		t.Fatalf("second MarkUsed flipped availability back")
	}
}

func TestDonationService_CanDonate(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		age       *int
		daysSince int // days since last donation; -1 means no prior donations
		want      bool
	}{
		{"no history, no age", nil, -1, true},
		{"age in range, no history", intPtr(30), -1, true},
		{"too young", intPtr(17), -1, false},
		{"too old", intPtr(66), -1, false},
		{"boundary ages", intPtr(18), -1, true},
		{"cooldown active", intPtr(30), 55, false},
		{"cooldown boundary", intPtr(30), 56, true},
		{"cooldown passed", intPtr(30), 57, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, donations, users := newDonationFixture()
			svc.now = func() time.Time { return base }
			user := users.mustAdd(&domain.User{Username: "gina", Age: tc.age})

			if tc.daysSince >= 0 {
				_, _ = donations.Insert(context.Background(), &domain.Donation{
					BloodType:    "A+",
					Amount:       1,
					DonationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -tc.daysSince),
					DonorID:      user.ID,
				})
			}

			got, err := svc.CanDonate(context.Background(), "gina")
			if err != nil {
				t.Fatalf("CanDonate returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDonationService_CanDonate_UsesMaxDateNotStorageOrder(t *testing.T) {
	svc, donations, users := newDonationFixture()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	user := users.mustAdd(&domain.User{Username: "hugo", Age: intPtr(40)})
	ctx := context.Background()

	// An old donation first, then a recent one. Whatever order the store
	// returns, the recent one governs the cooldown.
	_, _ = donations.Insert(ctx, &domain.Donation{BloodType: "A+", Amount: 1, DonorID: user.ID,
		DonationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	_, _ = donations.Insert(ctx, &domain.Donation{BloodType: "A+", Amount: 1, DonorID: user.ID,
		DonationDate: time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC)})

	got, err := svc.CanDonate(ctx, "hugo")
	if err != nil {
		t.Fatalf("CanDonate returned error: %v", err)
	}
	if got {
		t.Fatalf("recent donation must block eligibility regardless of listing order")
	}
}

func TestDonationService_CanDonate_UnknownUserFailsClosed(t *testing.T) {
	svc, _, _ := newDonationFixture()

	got, err := svc.CanDonate(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unknown user must not be an error, got %v", err)
	}
	if got {
		t.Fatalf("unknown user must not be eligible")
	}
}

func TestDonationService_Queries(t *testing.T) {
	svc, donations, users := newDonationFixture()
	user := users.mustAdd(&domain.User{Username: "iris"})
	ctx := context.Background()

	_, _ = donations.Insert(ctx, &domain.Donation{BloodType: "A+", Amount: 1, Available: true, DonorID: user.ID})
	_, _ = donations.Insert(ctx, &domain.Donation{BloodType: "A+", Amount: 1, Available: false, DonorID: user.ID})
	_, _ = donations.Insert(ctx, &domain.Donation{BloodType: "B-", Amount: 1, Available: true, DonorID: "someone-else"})

	available, err := svc.Available(ctx)
	if err != nil || len(available) != 2 {
		t.Fatalf("expected 2 available, got %d (err %v)", len(available), err)
	}

	byType, err := svc.ByBloodType(ctx, "a+")
	if err != nil || len(byType) != 1 {
		t.Fatalf("expected 1 available A+, got %d (err %v)", len(byType), err)
	}

	if _, err := svc.ByBloodType(ctx, "bad"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	mine, err := svc.ByUser(ctx, "iris")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 for iris, got %d (err %v)", len(mine), err)
	}

	count, err := svc.AvailableCountByBloodType(ctx, "A+")
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d (err %v)", count, err)
	}
}

func TestDonationService_Donors(t *testing.T) {
	svc, _, users := newDonationFixture()
	users.mustAdd(&domain.User{Username: "kim", Role: domain.RoleDonor})
	users.mustAdd(&domain.User{Username: "lee", Role: domain.RoleDonor})
	users.mustAdd(&domain.User{Username: "admin", Role: domain.RoleAdmin})
	users.mustAdd(&domain.User{Username: "plain", Role: domain.RoleUser})

	donors, err := svc.Donors(context.Background())
	if err != nil {
		t.Fatalf("Donors returned error: %v", err)
	}
	if len(donors) != 2 {
		t.Fatalf("expected 2 donors, got %d", len(donors))
	}
	for _, d := range donors {
		if d.Role != domain.RoleDonor {
			t.Fatalf("non-donor in directory: %+v", d)
		}
	}
}
