package groupinvitestore_test

import (
	"strings"
	"testing"
	"time"

	groupinvitestore "github.com/instephq/instep/internal/app/store/groupinvites"
	"github.com/instephq/instep/internal/domain/models"
	"github.com/instephq/instep/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupinvitestore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inv, err := store.Create(ctx, models.GroupInvite{
		GroupID:         "g1",
		GoalID:          "run-5k",
		CreatedByUserID: "u1",
		CreatedByRole:   models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if inv.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if !strings.HasPrefix(inv.InviteCode, "TG-") {
		t.Errorf("InviteCode: got %q, want TG- prefix", inv.InviteCode)
	}
	if inv.MaxUses != groupinvitestore.MaxUsesMember {
		t.Errorf("MaxUses: got %d, want %d", inv.MaxUses, groupinvitestore.MaxUsesMember)
	}
	if inv.Status != models.InviteActive {
		t.Errorf("Status: got %q, want active", inv.Status)
	}
	if inv.UsesCount != 0 {
		t.Errorf("UsesCount: got %d, want 0", inv.UsesCount)
	}
	wantExpiry := time.Now().Add(groupinvitestore.DefaultExpiry)
	if inv.ExpiresAt.Before(wantExpiry.Add(-time.Hour)) || inv.ExpiresAt.After(wantExpiry.Add(time.Hour)) {
		t.Errorf("ExpiresAt: got %v", inv.ExpiresAt)
	}
}

func TestStore_Create_GuideUses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupinvitestore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inv, err := store.Create(ctx, models.GroupInvite{
		GroupID:         "g1",
		GoalID:          "run-5k",
		CreatedByUserID: "u1",
		CreatedByRole:   models.RoleGuide,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inv.MaxUses != groupinvitestore.MaxUsesGuide {
		t.Errorf("MaxUses: got %d, want %d", inv.MaxUses, groupinvitestore.MaxUsesGuide)
	}
}

func TestStore_FindByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupinvitestore.New(db, 0)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	week := time.Now().Add(7 * 24 * time.Hour)
	fixtures.CreateInvite(ctx, "g1", "run-5k", "u1", models.RoleMember, "TG-ABCDE", week, 5, 0)

	inv, err := store.FindByCode(ctx, "TG-ABCDE")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if inv.GroupID != "g1" {
		t.Errorf("GroupID: got %q, want g1", inv.GroupID)
	}

	if _, err := store.FindByCode(ctx, "TG-ZZZZZ"); err != groupinvitestore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_IncUsesAndDisable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupinvitestore.New(db, 0)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inv, err := store.Create(ctx, models.GroupInvite{
		GroupID:         "g1",
		GoalID:          "run-5k",
		CreatedByUserID: "u1",
		CreatedByRole:   models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.IncUses(ctx, inv.ID); err != nil {
		t.Fatalf("IncUses failed: %v", err)
	}
	if err := store.IncUses(ctx, inv.ID); err != nil {
		t.Fatalf("IncUses failed: %v", err)
	}
	if err := store.Disable(ctx, inv.ID); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}

	got, err := store.GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.UsesCount != 2 {
		t.Errorf("UsesCount: got %d, want 2", got.UsesCount)
	}
	if got.Status != models.InviteDisabled {
		t.Errorf("Status: got %q, want disabled", got.Status)
	}

	if err := store.IncUses(ctx, "missing"); err != groupinvitestore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
