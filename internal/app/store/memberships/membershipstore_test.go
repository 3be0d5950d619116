package membershipstore_test

import (
	"testing"

	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	"github.com/instephq/instep/internal/app/system/indexes"
	"github.com/instephq/instep/internal/domain/models"
	"github.com/instephq/instep/internal/testutil"
)

func TestStore_CreateAndLookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Create(ctx, models.Membership{
		UserID:  "u1",
		GroupID: "g1",
		GoalID:  "run-5k",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if m.Role != models.RoleMember {
		t.Errorf("Role default: got %q, want member", m.Role)
	}
	if m.JoinedAt.IsZero() {
		t.Error("expected JoinedAt to be set")
	}

	byGoal, err := store.GetByUserGoal(ctx, "u1", "run-5k")
	if err != nil {
		t.Fatalf("GetByUserGoal failed: %v", err)
	}
	if byGoal.GroupID != "g1" {
		t.Errorf("GroupID: got %q, want g1", byGoal.GroupID)
	}

	byGroup, err := store.GetByUserGroup(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("GetByUserGroup failed: %v", err)
	}
	if byGroup.ID != m.ID {
		t.Errorf("expected same membership")
	}

	if _, err := store.GetByUserGoal(ctx, "u2", "run-5k"); err != membershipstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.Membership{UserID: "u1", GroupID: "g1", GoalID: "run-5k"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Membership{UserID: "u1", GroupID: "g1", GoalID: "run-5k"})
	if err != membershipstore.ErrDuplicate {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
}

func TestStore_SetRoleAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, uid := range []string{"u1", "u2", "u3"} {
		if _, err := store.Create(ctx, models.Membership{UserID: uid, GroupID: "g1", GoalID: "run-5k"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := store.SetRole(ctx, "u1", "g1", models.RoleGuide); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	m, err := store.GetByUserGroup(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("GetByUserGroup failed: %v", err)
	}
	if m.Role != models.RoleGuide {
		t.Errorf("Role: got %q, want guide", m.Role)
	}

	count, err := store.CountByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("CountByGroup failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count: got %d, want 3", count)
	}

	ms, err := store.ListByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(ms) != 3 {
		t.Errorf("ListByGroup length: got %d, want 3", len(ms))
	}

	if err := store.SetRole(ctx, "u9", "g1", models.RoleGuide); err != membershipstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
