package invites_test

import (
	"net/http"
	"testing"

	"github.com/instephq/instep/internal/app/features/invites"
	"github.com/instephq/instep/internal/app/service/inviteexchange"
	chatstore "github.com/instephq/instep/internal/app/store/chat"
	groupinvitestore "github.com/instephq/instep/internal/app/store/groupinvites"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	invitestore "github.com/instephq/instep/internal/app/store/invites"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	redemptionstore "github.com/instephq/instep/internal/app/store/redemptions"
	userstore "github.com/instephq/instep/internal/app/store/users"
	"github.com/instephq/instep/internal/domain/models"
	"github.com/instephq/instep/internal/testutil"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *invites.Handler {
	memberships := membershipstore.New(db)
	groups := groupstore.New(db)
	users := userstore.New(db)
	svc := inviteexchange.New(
		groupinvitestore.New(db, 0),
		groups,
		memberships,
		redemptionstore.New(db),
		users,
		chatstore.New(db),
		zap.NewNop(),
	)
	return invites.NewHandler(svc, invitestore.New(db), memberships, groups, users, zap.NewNop())
}

func TestCreate_RequiresMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	group := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 2, 10)

	req := testutil.NewJSONRequest(t, "POST", "/v1/invites", map[string]string{
		"userId":  "outsider",
		"groupId": group.ID,
	})
	rec := testutil.NewRecorder()
	h.Create(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestCreate_ReturnsInvite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	group := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 2, 10)
	fixtures.CreateMembership(ctx, "u1", group.ID, goal.ID, models.RoleMember)

	req := testutil.NewJSONRequest(t, "POST", "/v1/invites", map[string]string{
		"userId":  "u1",
		"groupId": group.ID,
	})
	rec := testutil.NewRecorder()
	h.Create(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var inv models.GroupInvite
	rec.DecodeJSON(t, &inv)
	if inv.InviteCode == "" {
		t.Error("expected an invite code")
	}
	if inv.MaxUses != 5 {
		t.Errorf("MaxUses: got %d, want 5", inv.MaxUses)
	}
}

func TestValidate_BadCodeStillOK(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	req := testutil.NewRequest("GET", "/v1/invites/validate?code=TG-NOPEX")
	rec := testutil.NewRecorder()
	h.Validate(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var v inviteexchange.Validation
	rec.DecodeJSON(t, &v)
	if v.Valid {
		t.Error("expected invalid")
	}
	if v.Message == "" {
		t.Error("expected a user-facing message")
	}
}

func TestRespond_AcceptJoinsGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	group := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 2, 10)

	inv, err := invitestore.New(db).Create(ctx, models.Invite{
		GoalID:      goal.ID,
		GroupID:     group.ID,
		UserID:      "u2",
		InviterType: "guide",
		Message:     "come join us",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/v1/invites/"+inv.ID+"/respond", map[string]bool{"accept": true})
	req = testutil.WithChiURLParam(req, "inviteID", inv.ID)
	rec := testutil.NewRecorder()
	h.Respond(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	if _, err := membershipstore.New(db).GetByUserGroup(ctx, "u2", group.ID); err != nil {
		t.Errorf("expected membership after accept: %v", err)
	}

	g, err := groupstore.New(db).GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if g.MemberCount != 3 {
		t.Errorf("MemberCount: got %d, want 3", g.MemberCount)
	}

	got, err := invitestore.New(db).GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != invitestore.StatusAccepted {
		t.Errorf("Status: got %q, want accepted", got.Status)
	}

	// Answering again conflicts
	req2 := testutil.NewJSONRequest(t, "POST", "/v1/invites/"+inv.ID+"/respond", map[string]bool{"accept": false})
	req2 = testutil.WithChiURLParam(req2, "inviteID", inv.ID)
	rec2 := testutil.NewRecorder()
	h.Respond(rec2, req2)
	rec2.AssertStatus(t, http.StatusConflict)
}
