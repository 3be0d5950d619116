package groupassign_test

import (
	"testing"

	"github.com/instephq/instep/internal/app/service/groupassign"
	chatstore "github.com/instephq/instep/internal/app/store/chat"
	goalstore "github.com/instephq/instep/internal/app/store/goals"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	userstore "github.com/instephq/instep/internal/app/store/users"
	"github.com/instephq/instep/internal/domain/models"
	"github.com/instephq/instep/internal/testutil"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newService(db *mongo.Database) *groupassign.Service {
	return groupassign.New(
		goalstore.New(db),
		groupstore.New(db),
		membershipstore.New(db),
		userstore.New(db),
		chatstore.New(db),
		groupassign.DefaultScanLimit,
		zap.NewNop(),
	)
}

func TestAssignUserToGroup_CreatesFirstGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)

	groupID, err := svc.AssignUserToGroup(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("AssignUserToGroup failed: %v", err)
	}
	if groupID == "" {
		t.Fatal("expected a group ID")
	}

	g, err := groupstore.New(db).GetByID(ctx, groupID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if g.Name != "Run a 5K Group" {
		t.Errorf("Name: got %q, want %q", g.Name, "Run a 5K Group")
	}
	if g.MemberCount != 1 {
		t.Errorf("MemberCount: got %d, want 1", g.MemberCount)
	}
	if g.MaxMembers != 10 {
		t.Errorf("MaxMembers: got %d, want 10", g.MaxMembers)
	}
	if !g.IsActive {
		t.Error("expected new group to be active")
	}

	m, err := membershipstore.New(db).GetByUserGoal(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("expected membership: %v", err)
	}
	if m.GroupID != groupID {
		t.Errorf("membership group: got %q, want %q", m.GroupID, groupID)
	}
	if m.Role != models.RoleMember {
		t.Errorf("Role: got %q, want %q", m.Role, models.RoleMember)
	}
}

func TestAssignUserToGroup_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)

	first, err := svc.AssignUserToGroup(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	second, err := svc.AssignUserToGroup(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("second assign failed: %v", err)
	}
	if second != first {
		t.Errorf("expected same group, got %q then %q", first, second)
	}

	count, err := membershipstore.New(db).CountByGroup(ctx, first)
	if err != nil {
		t.Fatalf("CountByGroup failed: %v", err)
	}
	if count != 1 {
		t.Errorf("membership count: got %d, want 1", count)
	}
}

func TestAssignUserToGroup_ReusesOpenGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	g1 := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 5, 10)

	groupID, err := svc.AssignUserToGroup(ctx, "u2", goal.ID)
	if err != nil {
		t.Fatalf("AssignUserToGroup failed: %v", err)
	}
	if groupID != g1.ID {
		t.Errorf("expected reuse of %q, got %q", g1.ID, groupID)
	}

	// Joining through assignment leaves the cached counter alone
	after, err := groupstore.New(db).GetByID(ctx, g1.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if after.MemberCount != 5 {
		t.Errorf("MemberCount: got %d, want 5", after.MemberCount)
	}

	if _, err := membershipstore.New(db).GetByUserGroup(ctx, "u2", g1.ID); err != nil {
		t.Errorf("expected membership in reused group: %v", err)
	}
}

func TestAssignUserToGroup_FullGroupsSpawnNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	full := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 10, 10)

	groupID, err := svc.AssignUserToGroup(ctx, "u3", goal.ID)
	if err != nil {
		t.Fatalf("AssignUserToGroup failed: %v", err)
	}
	if groupID == full.ID {
		t.Error("full group must not be joined")
	}

	g, err := groupstore.New(db).GetByID(ctx, groupID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if g.MemberCount != 1 {
		t.Errorf("new group MemberCount: got %d, want 1", g.MemberCount)
	}
}

func TestAssignUserToGroup_OtherGoalGroupsIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	other := fixtures.CreateGoal(ctx, "read-12", "Read 12 Books",
		models.Milestone{ID: "m1", Title: "First book", Percentage: 10})
	otherGroup := fixtures.CreateGroup(ctx, other.ID, "Read 12 Books Group", 1, 10)

	groupID, err := svc.AssignUserToGroup(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("AssignUserToGroup failed: %v", err)
	}
	if groupID == otherGroup.ID {
		t.Error("assigned to a group for a different goal")
	}
}

func TestPromoteToGuide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	group := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 2, 10)
	fixtures.CreateMembership(ctx, "u1", group.ID, goal.ID, models.RoleMember)
	fixtures.CreateMembership(ctx, "u2", group.ID, goal.ID, models.RoleMember)

	if svc.IsUserGuide(ctx, "u1", group.ID) {
		t.Error("u1 should not be a guide yet")
	}
	if guide := svc.GetGroupGuide(ctx, group.ID); guide != nil {
		t.Errorf("expected no guide, got %q", guide.UserID)
	}

	if err := svc.PromoteToGuide(ctx, "u1", group.ID); err != nil {
		t.Fatalf("PromoteToGuide failed: %v", err)
	}

	if !svc.IsUserGuide(ctx, "u1", group.ID) {
		t.Error("u1 should be a guide after promotion")
	}
	if svc.IsUserGuide(ctx, "u2", group.ID) {
		t.Error("u2 should still be a member")
	}
	guide := svc.GetGroupGuide(ctx, group.ID)
	if guide == nil || guide.UserID != "u1" {
		t.Errorf("GetGroupGuide: got %+v, want u1", guide)
	}
}

func TestPromoteToGuide_NoMembershipIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := svc.PromoteToGuide(ctx, "nobody", "no-group"); err != nil {
		t.Errorf("expected nil for missing membership, got %v", err)
	}
}

func TestGetGroupMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	group := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 2, 10)
	fixtures.CreateMembership(ctx, "u1", group.ID, goal.ID, models.RoleMember)
	fixtures.CreateMembership(ctx, "u2", group.ID, goal.ID, models.RoleMember)

	members := svc.GetGroupMembers(ctx, group.ID)
	if len(members) != 2 {
		t.Fatalf("members: got %d, want 2", len(members))
	}

	if got := svc.GetGroupMembers(ctx, "no-group"); len(got) != 0 {
		t.Errorf("empty group: got %d members, want 0", len(got))
	}
}

func TestAssignUserToGroup_UpdatesCurrentAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	fixtures.CreateUser(ctx, "u1", "Jordan")

	groupID, err := svc.AssignUserToGroup(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("AssignUserToGroup failed: %v", err)
	}

	u, err := userstore.New(db).GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if u.CurrentGoalID != goal.ID || u.CurrentGroupID != groupID {
		t.Errorf("current assignment: goal=%q group=%q", u.CurrentGoalID, u.CurrentGroupID)
	}
}
