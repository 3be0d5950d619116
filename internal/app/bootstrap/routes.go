// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	chatfeature "github.com/instephq/instep/internal/app/features/chat"
	checkinsfeature "github.com/instephq/instep/internal/app/features/checkins"
	goalsfeature "github.com/instephq/instep/internal/app/features/goals"
	groupsfeature "github.com/instephq/instep/internal/app/features/groups"
	healthfeature "github.com/instephq/instep/internal/app/features/health"
	invitesfeature "github.com/instephq/instep/internal/app/features/invites"
	usersfeature "github.com/instephq/instep/internal/app/features/users"
	"github.com/instephq/instep/internal/app/service/goalassign"
	"github.com/instephq/instep/internal/app/service/groupassign"
	"github.com/instephq/instep/internal/app/service/inviteexchange"
	affirmationstore "github.com/instephq/instep/internal/app/store/affirmations"
	chatstore "github.com/instephq/instep/internal/app/store/chat"
	checkinstore "github.com/instephq/instep/internal/app/store/checkins"
	goalrequeststore "github.com/instephq/instep/internal/app/store/goalrequests"
	goalstore "github.com/instephq/instep/internal/app/store/goals"
	groupinvitestore "github.com/instephq/instep/internal/app/store/groupinvites"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	invitestore "github.com/instephq/instep/internal/app/store/invites"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	redemptionstore "github.com/instephq/instep/internal/app/store/redemptions"
	userstore "github.com/instephq/instep/internal/app/store/users"
	usergoalstore "github.com/instephq/instep/internal/app/store/usergoals"
	waitliststore "github.com/instephq/instep/internal/app/store/waitlist"
	"github.com/instephq/instep/internal/app/system/progresscache"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Stores are built once here and shared
// by the services and feature handlers that use them.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Stores
	goals := goalstore.New(db)
	userGoals := usergoalstore.New(db)
	groups := groupstore.New(db)
	memberships := membershipstore.New(db)
	groupInvites := groupinvitestore.New(db, appCfg.InviteExpiry)
	redemptions := redemptionstore.New(db)
	checkIns := checkinstore.New(db)
	affirmations := affirmationstore.New(db)
	goalRequests := goalrequeststore.New(db)
	waitlist := waitliststore.New(db)
	users := userstore.New(db)
	messages := chatstore.New(db)
	direct := invitestore.New(db)

	// Services
	fallback := progresscache.NewLRU(appCfg.ProgressCacheSize)
	goalSvc := goalassign.New(goals, userGoals, checkIns, messages, fallback, logger)
	groupSvc := groupassign.New(goals, groups, memberships, users, messages, appCfg.GroupScanLimit, logger)
	inviteSvc := inviteexchange.New(groupInvites, groups, memberships, redemptions, users, messages, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	// Versioned API
	r.Route("/v1", func(r chi.Router) {
		goalsHandler := goalsfeature.NewHandler(goalSvc, goalRequests, waitlist, logger)
		r.Mount("/goals", goalsfeature.Routes(goalsHandler))

		checkinsHandler := checkinsfeature.NewHandler(goalSvc, affirmations, logger)
		r.Mount("/checkins", checkinsfeature.Routes(checkinsHandler))
		r.Mount("/affirmations", checkinsfeature.AffirmationRoutes(checkinsHandler))

		groupsHandler := groupsfeature.NewHandler(groupSvc, groups, logger)
		r.Mount("/groups", groupsfeature.Routes(groupsHandler))

		invitesHandler := invitesfeature.NewHandler(inviteSvc, direct, memberships, groups, users, logger)
		r.Mount("/invites", invitesfeature.Routes(invitesHandler))

		chatHandler := chatfeature.NewHandler(messages, memberships, logger)
		r.Mount("/chat", chatfeature.Routes(chatHandler))

		usersHandler := usersfeature.NewHandler(users, logger)
		r.Mount("/users", usersfeature.Routes(usersHandler))
	})

	return r, nil
}
