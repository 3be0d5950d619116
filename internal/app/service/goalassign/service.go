// internal/app/service/goalassign/service.go

// Package goalassign manages a user's relationship with a goal: starting
// it, reading progress, and recording check-ins with milestone completion.
package goalassign

import (
	"context"
	"time"

	chatstore "github.com/instephq/instep/internal/app/store/chat"
	checkinstore "github.com/instephq/instep/internal/app/store/checkins"
	goalstore "github.com/instephq/instep/internal/app/store/goals"
	usergoalstore "github.com/instephq/instep/internal/app/store/usergoals"
	"github.com/instephq/instep/internal/app/system/goalkey"
	"github.com/instephq/instep/internal/app/system/progresscache"
	"github.com/instephq/instep/internal/app/system/sanitize"
	"github.com/instephq/instep/internal/domain/models"

	"go.uber.org/zap"
)

// Service coordinates goal starts, progress reads and check-ins.
//
// Reads and listings never propagate backend errors to the caller; a user
// tapping through the app gets an empty screen, not an error page. Writes
// that the caller must know about (StartGoal) return errors.
type Service struct {
	goals     *goalstore.Store
	userGoals *usergoalstore.Store
	checkIns  *checkinstore.Store
	chat      *chatstore.Store
	fallback  progresscache.Cache
	log       *zap.Logger
}

func New(
	goals *goalstore.Store,
	userGoals *usergoalstore.Store,
	checkIns *checkinstore.Store,
	chat *chatstore.Store,
	fallback progresscache.Cache,
	logger *zap.Logger,
) *Service {
	return &Service{
		goals:     goals,
		userGoals: userGoals,
		checkIns:  checkIns,
		chat:      chat,
		fallback:  fallback,
		log:       logger,
	}
}

// GetAvailableGoals returns the live goal catalog. Backend failures are
// logged and surface as an empty list.
func (s *Service) GetAvailableGoals(ctx context.Context) []models.GoalDefinition {
	goals, err := s.goals.ListLive(ctx)
	if err != nil {
		s.log.Error("goalassign: list live goals failed", zap.Error(err))
		return []models.GoalDefinition{}
	}
	return goals
}

// StartGoal begins a goal for a user, or returns the existing progress
// record if the user already started it. The record is keyed by the
// composite user-goal key, so repeat calls land on the same document.
func (s *Service) StartGoal(ctx context.Context, userID, goalID string) (models.UserGoalProgress, error) {
	key := goalkey.UserGoal(userID, goalID)

	existing, err := s.userGoals.Get(ctx, key)
	if err == nil {
		return existing, nil
	}
	if err != usergoalstore.ErrNotFound {
		return models.UserGoalProgress{}, err
	}

	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return models.UserGoalProgress{}, err
	}

	now := time.Now().UTC()
	timeline := make([]models.TimelineEntry, 0, len(goal.Milestones))
	for _, m := range goal.Milestones {
		timeline = append(timeline, models.TimelineEntry{MilestoneID: m.ID})
	}
	first := ""
	if len(goal.Milestones) > 0 {
		first = goal.Milestones[0].ID
	}

	rec := models.UserGoalProgress{
		ID:                 key,
		UserID:             userID,
		GoalID:             goalID,
		StartDate:          now,
		CurrentMilestoneID: first,
		ProgressPercent:    0,
		Timeline:           timeline,
	}
	created, err := s.userGoals.Create(ctx, rec)
	if err != nil {
		// A concurrent StartGoal may have won the insert; hand back
		// whichever record is there now.
		if again, getErr := s.userGoals.Get(ctx, key); getErr == nil {
			return again, nil
		}
		return models.UserGoalProgress{}, err
	}

	s.log.Info("goalassign: goal started",
		zap.String("user_id", userID),
		zap.String("goal_id", goalID))
	return created, nil
}

// GetProgress returns the user's progress for a goal, or nil when there is
// none. When the backend is unreachable it falls back to the last copy the
// check-in path cached, so the progress screen keeps working offline.
func (s *Service) GetProgress(ctx context.Context, userID, goalID string) *models.UserGoalProgress {
	key := goalkey.UserGoal(userID, goalID)

	rec, err := s.userGoals.Get(ctx, key)
	if err == nil {
		return &rec
	}
	if err == usergoalstore.ErrNotFound {
		return nil
	}

	s.log.Warn("goalassign: progress read failed, consulting fallback",
		zap.String("key", key), zap.Error(err))
	if cached, ok := s.fallback.Get(key); ok {
		return cached
	}
	return nil
}

// GetCheckIns returns up to limit of the user's check-ins for a goal,
// newest first. Backend failures are logged and surface as an empty
// journal.
func (s *Service) GetCheckIns(ctx context.Context, userID, goalID string, limit int) []models.CheckIn {
	cis, err := s.checkIns.ListByUserGoal(ctx, userID, goalID, limit)
	if err != nil {
		s.log.Warn("goalassign: check-in list failed",
			zap.String("user_id", userID),
			zap.String("goal_id", goalID),
			zap.Error(err))
		return []models.CheckIn{}
	}
	if cis == nil {
		cis = []models.CheckIn{}
	}
	return cis
}

// CheckInInput is a single check-in submission. MilestoneID is empty for a
// note-only check-in.
type CheckInInput struct {
	UserID      string
	GoalID      string
	GroupID     string
	Note        string
	MilestoneID string
	PhotoURL    string
}

// CheckInResult reports a check-in outcome. Success is always true: a user
// who showed up to check in is never told they failed, whatever happened in
// the backend. MilestoneCompleted, MilestoneCompletedName and
// ProgressPercent describe how far the milestone branch got.
type CheckInResult struct {
	Success                bool
	CheckInID              string
	MilestoneCompleted     bool
	MilestoneCompletedName string
	ProgressPercent        int
}

// SubmitCheckIn records a check-in and, when a milestone is named,
// completes it: the timeline entry gets a completion time, the current
// milestone pointer advances, and the progress percent becomes the
// completed milestone's percentage. Every backend failure on this path is
// logged and absorbed; a milestone update that cannot be persisted is
// parked in the fallback cache instead.
func (s *Service) SubmitCheckIn(ctx context.Context, in CheckInInput) CheckInResult {
	res := CheckInResult{Success: true}

	ci, err := s.checkIns.Create(ctx, models.CheckIn{
		UserID:      in.UserID,
		GoalID:      in.GoalID,
		GroupID:     in.GroupID,
		Note:        sanitize.Text(in.Note),
		MilestoneID: in.MilestoneID,
		PhotoURL:    in.PhotoURL,
	})
	if err != nil {
		s.log.Error("goalassign: check-in persist failed",
			zap.String("user_id", in.UserID),
			zap.String("goal_id", in.GoalID),
			zap.Error(err))
	} else {
		res.CheckInID = ci.ID
	}

	if in.MilestoneID == "" {
		return res
	}

	completed, name, percent := s.completeMilestone(ctx, in)
	res.MilestoneCompleted = completed
	res.MilestoneCompletedName = name
	res.ProgressPercent = percent
	return res
}

// completeMilestone applies the milestone branch of a check-in. Returns
// whether the completion was applied (to backend or fallback), the
// completed milestone's title and the resulting percent.
func (s *Service) completeMilestone(ctx context.Context, in CheckInInput) (bool, string, int) {
	goal, err := s.goals.GetByID(ctx, in.GoalID)
	if err != nil {
		s.log.Error("goalassign: goal lookup for milestone failed",
			zap.String("goal_id", in.GoalID), zap.Error(err))
		return false, "", 0
	}
	ms := goal.MilestoneByID(in.MilestoneID)
	if ms == nil {
		s.log.Warn("goalassign: check-in named unknown milestone",
			zap.String("goal_id", in.GoalID),
			zap.String("milestone_id", in.MilestoneID))
		return false, "", 0
	}

	key := goalkey.UserGoal(in.UserID, in.GoalID)
	rec, err := s.userGoals.Get(ctx, key)
	if err != nil {
		s.log.Error("goalassign: progress lookup for milestone failed",
			zap.String("key", key), zap.Error(err))
		return false, "", 0
	}

	now := time.Now().UTC()
	for i := range rec.Timeline {
		if rec.Timeline[i].MilestoneID == in.MilestoneID {
			rec.Timeline[i].CompletedAt = &now
		}
	}
	rec.CurrentMilestoneID = goal.NextMilestoneID(in.MilestoneID)
	rec.ProgressPercent = ms.Percentage

	if err := s.userGoals.SetProgress(ctx, key, rec.CurrentMilestoneID, rec.ProgressPercent, rec.Timeline); err != nil {
		s.log.Error("goalassign: milestone persist failed, caching locally",
			zap.String("key", key), zap.Error(err))
		rec.UpdatedAt = now
		s.fallback.Set(key, &rec)
		return true, ms.Title, rec.ProgressPercent
	}

	s.celebrate(ctx, in, ms)
	s.log.Info("goalassign: milestone completed",
		zap.String("user_id", in.UserID),
		zap.String("goal_id", in.GoalID),
		zap.String("milestone_id", ms.ID),
		zap.Int("progress_percent", ms.Percentage))
	return true, ms.Title, rec.ProgressPercent
}

// celebrate drops a milestone message into the user's group chat. Best
// effort; the check-in already succeeded.
func (s *Service) celebrate(ctx context.Context, in CheckInInput, ms *models.Milestone) {
	if in.GroupID == "" {
		return
	}
	_, err := s.chat.Append(ctx, models.ChatMessage{
		GroupID: in.GroupID,
		UserID:  in.UserID,
		Type:    models.MessageMilestone,
		Milestone: &models.MilestoneRef{
			MilestoneID:    ms.ID,
			MilestoneTitle: ms.Title,
			Comment:        sanitize.Text(in.Note),
			ImageURL:       in.PhotoURL,
		},
	})
	if err != nil {
		s.log.Warn("goalassign: milestone chat message failed",
			zap.String("group_id", in.GroupID), zap.Error(err))
	}
}
