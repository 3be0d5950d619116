package goalassign_test

import (
	"testing"
	"time"

	"github.com/instephq/instep/internal/app/service/goalassign"
	chatstore "github.com/instephq/instep/internal/app/store/chat"
	checkinstore "github.com/instephq/instep/internal/app/store/checkins"
	goalstore "github.com/instephq/instep/internal/app/store/goals"
	usergoalstore "github.com/instephq/instep/internal/app/store/usergoals"
	"github.com/instephq/instep/internal/app/system/goalkey"
	"github.com/instephq/instep/internal/app/system/progresscache"
	"github.com/instephq/instep/internal/domain/models"
	"github.com/instephq/instep/internal/testutil"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newService(db *mongo.Database) *goalassign.Service {
	return goalassign.New(
		goalstore.New(db),
		usergoalstore.New(db),
		checkinstore.New(db),
		chatstore.New(db),
		progresscache.NewLRU(16),
		zap.NewNop(),
	)
}

func TestStartGoal_CreatesProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)

	rec, err := svc.StartGoal(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("StartGoal failed: %v", err)
	}

	if rec.ID != goalkey.UserGoal("u1", goal.ID) {
		t.Errorf("ID: got %q, want composite key", rec.ID)
	}
	if rec.CurrentMilestoneID != "m1" {
		t.Errorf("CurrentMilestoneID: got %q, want %q", rec.CurrentMilestoneID, "m1")
	}
	if rec.ProgressPercent != 0 {
		t.Errorf("ProgressPercent: got %d, want 0", rec.ProgressPercent)
	}
	if len(rec.Timeline) != 2 {
		t.Fatalf("Timeline length: got %d, want 2", len(rec.Timeline))
	}
	for _, e := range rec.Timeline {
		if e.CompletedAt != nil {
			t.Errorf("milestone %s: expected no completion time yet", e.MilestoneID)
		}
	}
	if rec.StartDate.IsZero() {
		t.Error("expected StartDate to be set")
	}
}

func TestStartGoal_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)

	first, err := svc.StartGoal(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("first StartGoal failed: %v", err)
	}
	second, err := svc.StartGoal(ctx, "u1", goal.ID)
	if err != nil {
		t.Fatalf("second StartGoal failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected same record, got %q and %q", first.ID, second.ID)
	}
	if !second.StartDate.Equal(first.StartDate) {
		t.Error("expected StartDate to be unchanged on repeat start")
	}
}

func TestStartGoal_UnknownGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := svc.StartGoal(ctx, "u1", "no-such-goal"); err == nil {
		t.Error("expected error for unknown goal")
	}
}

func TestSubmitCheckIn_NoteOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	if _, err := svc.StartGoal(ctx, "u1", goal.ID); err != nil {
		t.Fatalf("StartGoal failed: %v", err)
	}

	res := svc.SubmitCheckIn(ctx, goalassign.CheckInInput{
		UserID: "u1",
		GoalID: goal.ID,
		Note:   "feeling good today",
	})
	if !res.Success {
		t.Error("expected Success")
	}
	if res.MilestoneCompleted {
		t.Error("note-only check-in should not complete a milestone")
	}
	if res.CheckInID == "" {
		t.Error("expected check-in to be persisted")
	}

	// Progress untouched
	rec := svc.GetProgress(ctx, "u1", goal.ID)
	if rec == nil {
		t.Fatal("expected progress record")
	}
	if rec.ProgressPercent != 0 || rec.CurrentMilestoneID != "m1" {
		t.Errorf("progress changed: percent=%d current=%s", rec.ProgressPercent, rec.CurrentMilestoneID)
	}
}

func TestSubmitCheckIn_CompletesMilestone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	group := fixtures.CreateGroup(ctx, goal.ID, "Run a 5K Group", 1, 10)
	if _, err := svc.StartGoal(ctx, "u1", goal.ID); err != nil {
		t.Fatalf("StartGoal failed: %v", err)
	}

	res := svc.SubmitCheckIn(ctx, goalassign.CheckInInput{
		UserID:      "u1",
		GoalID:      goal.ID,
		GroupID:     group.ID,
		Note:        "walked the full kilometer",
		MilestoneID: "m1",
	})
	if !res.Success {
		t.Error("expected Success")
	}
	if !res.MilestoneCompleted {
		t.Fatal("expected milestone to be completed")
	}
	if res.MilestoneCompletedName != "Walk 1km" {
		t.Errorf("MilestoneCompletedName: got %q, want %q", res.MilestoneCompletedName, "Walk 1km")
	}
	if res.ProgressPercent != 25 {
		t.Errorf("ProgressPercent: got %d, want 25", res.ProgressPercent)
	}

	rec := svc.GetProgress(ctx, "u1", goal.ID)
	if rec == nil {
		t.Fatal("expected progress record")
	}
	if rec.CurrentMilestoneID != "m2" {
		t.Errorf("CurrentMilestoneID: got %q, want %q", rec.CurrentMilestoneID, "m2")
	}
	if rec.ProgressPercent != 25 {
		t.Errorf("stored ProgressPercent: got %d, want 25", rec.ProgressPercent)
	}
	if rec.Timeline[0].CompletedAt == nil {
		t.Error("expected m1 timeline entry to carry a completion time")
	}
	if rec.Timeline[1].CompletedAt != nil {
		t.Error("m2 should not be completed yet")
	}

	// A milestone message lands in the group chat
	msgs, err := chatstore.New(db).ListByGroup(ctx, group.ID, 10)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	found := false
	for _, m := range msgs {
		if m.Type == models.MessageMilestone && m.Milestone != nil && m.Milestone.MilestoneID == "m1" {
			found = true
			if m.Milestone.MilestoneTitle != "Walk 1km" {
				t.Errorf("MilestoneTitle: got %q, want %q", m.Milestone.MilestoneTitle, "Walk 1km")
			}
		}
	}
	if !found {
		t.Error("expected milestone celebration message in group chat")
	}
}

func TestSubmitCheckIn_LastMilestoneKeepsPointer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	if _, err := svc.StartGoal(ctx, "u1", goal.ID); err != nil {
		t.Fatalf("StartGoal failed: %v", err)
	}

	svc.SubmitCheckIn(ctx, goalassign.CheckInInput{UserID: "u1", GoalID: goal.ID, MilestoneID: "m1"})
	res := svc.SubmitCheckIn(ctx, goalassign.CheckInInput{UserID: "u1", GoalID: goal.ID, MilestoneID: "m2"})
	if !res.MilestoneCompleted {
		t.Fatal("expected final milestone to complete")
	}
	if res.ProgressPercent != 50 {
		t.Errorf("ProgressPercent: got %d, want 50", res.ProgressPercent)
	}

	rec := svc.GetProgress(ctx, "u1", goal.ID)
	if rec.CurrentMilestoneID != "m2" {
		t.Errorf("pointer past the last milestone: got %q, want %q", rec.CurrentMilestoneID, "m2")
	}
}

func TestSubmitCheckIn_UnknownMilestone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	if _, err := svc.StartGoal(ctx, "u1", goal.ID); err != nil {
		t.Fatalf("StartGoal failed: %v", err)
	}

	res := svc.SubmitCheckIn(ctx, goalassign.CheckInInput{
		UserID:      "u1",
		GoalID:      goal.ID,
		MilestoneID: "m99",
	})
	if !res.Success {
		t.Error("check-in itself still succeeds")
	}
	if res.MilestoneCompleted {
		t.Error("unknown milestone must not complete")
	}
}

func TestGetCheckIns_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	goal := fixtures.RunGoal(ctx)
	if _, err := svc.StartGoal(ctx, "u1", goal.ID); err != nil {
		t.Fatalf("StartGoal failed: %v", err)
	}

	svc.SubmitCheckIn(ctx, goalassign.CheckInInput{UserID: "u1", GoalID: goal.ID, Note: "day one"})
	time.Sleep(5 * time.Millisecond)
	svc.SubmitCheckIn(ctx, goalassign.CheckInInput{UserID: "u1", GoalID: goal.ID, Note: "day two"})
	svc.SubmitCheckIn(ctx, goalassign.CheckInInput{UserID: "u2", GoalID: goal.ID, Note: "someone else"})

	cis := svc.GetCheckIns(ctx, "u1", goal.ID, 10)
	if len(cis) != 2 {
		t.Fatalf("got %d check-ins, want 2", len(cis))
	}
	if cis[0].Note != "day two" || cis[1].Note != "day one" {
		t.Errorf("order: got [%q, %q], want newest first", cis[0].Note, cis[1].Note)
	}

	if got := svc.GetCheckIns(ctx, "u9", goal.ID, 10); len(got) != 0 {
		t.Errorf("unknown user: got %d check-ins, want 0", len(got))
	}
}

func TestGetAvailableGoals_FiltersLive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.RunGoal(ctx)
	draft := models.GoalDefinition{ID: "read-12", Name: "Read 12 Books", Status: "draft"}
	if err := goalstore.New(db).Insert(ctx, draft); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	goals := svc.GetAvailableGoals(ctx)
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	if goals[0].ID != "run-5k" {
		t.Errorf("got %q, want run-5k", goals[0].ID)
	}
}

func TestGetProgress_NoneStarted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newService(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if rec := svc.GetProgress(ctx, "u1", "run-5k"); rec != nil {
		t.Errorf("expected nil, got %+v", rec)
	}
}
