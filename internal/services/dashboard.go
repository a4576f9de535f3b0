package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/regula-backend/internal/clients/analytics"
	"github.com/yungbote/regula-backend/internal/data/repos"
	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/modules/regula/metrics"
	"github.com/yungbote/regula-backend/internal/pkg/ctxutil"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

const (
	defaultTopWords = 30
	comparisonSpan  = 7 * 24 * time.Hour
)

type PeriodSummary struct {
	Current       int `json:"current"`
	Previous      int `json:"previous"`
	PercentChange int `json:"percentChange"`
}

type DashboardOverview struct {
	WeeklyStudyLoad int                    `json:"weeklyStudyLoad"`
	AverageMastery  float64                `json:"averageMastery"`
	Counts          metrics.StatusCounts   `json:"counts"`
	CurrentStreak   int                    `json:"currentStreak"`
	History         []metrics.HistoryGroup `json:"history"`
	Activity        PeriodSummary          `json:"activity"`
	TopWords        []metrics.WordCount    `json:"topWords"`
	Timezone        string                 `json:"timezone"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

type DashboardService interface {
	Overview(dbc dbctx.Context, userID uuid.UUID, now time.Time) (*DashboardOverview, error)
}

type dashboardService struct {
	log         *logger.Logger
	subPlans    repos.SubPlanRepo
	reflections repos.ReflectionRepo
	activities  analytics.Client
	loc         *time.Location
	topWords    int
}

// NewDashboardService builds the dashboard aggregator. Dates are bucketed in
// loc; a nil loc means UTC.
func NewDashboardService(
	baseLog *logger.Logger,
	subPlans repos.SubPlanRepo,
	reflections repos.ReflectionRepo,
	activities analytics.Client,
	loc *time.Location,
) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{
		log:         baseLog.With("service", "DashboardService"),
		subPlans:    subPlans,
		reflections: reflections,
		activities:  activities,
		loc:         loc,
		topWords:    defaultTopWords,
	}
}

// Overview loads the user's plans, reflections and upstream activity
// concurrently and derives the dashboard figures. Missing upstream data only
// empties the activity-based figures.
func (s *dashboardService) Overview(dbc dbctx.Context, userID uuid.UUID, now time.Time) (*DashboardOverview, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if now.IsZero() {
		now = time.Now()
	}

	var (
		plans  []*types.SubPlan
		refs   []*types.Reflection
		events []metrics.ActivityEvent
	)

	g, gctx := errgroup.WithContext(ctxutil.Default(dbc.Ctx))
	if dbc.Tx != nil {
		g.SetLimit(1)
	}
	inner := dbctx.Context{Ctx: gctx, Tx: dbc.Tx}
	g.Go(func() error {
		var err error
		plans, err = s.subPlans.GetByUserID(inner, userID)
		return err
	})
	g.Go(func() error {
		var err error
		refs, err = s.reflections.GetByUserID(inner, userID)
		return err
	})
	g.Go(func() error {
		events = toEvents(s.activitiesFor(gctx, userID))
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("dashboard load failed", "user_id", userID, "error", err)
		return nil, err
	}

	current := metrics.CountBetween(events, now.Add(-comparisonSpan), now)
	previous := metrics.CountBetween(events, now.Add(-2*comparisonSpan), now.Add(-comparisonSpan))

	return &DashboardOverview{
		WeeklyStudyLoad: metrics.WeeklyStudyLoad(plans),
		AverageMastery:  metrics.AverageMastery(plans),
		Counts:          metrics.CountByStatus(plans),
		CurrentStreak:   metrics.CurrentStreak(metrics.CompletionTimes(events), s.loc),
		History:         metrics.GroupHistoryByDay(events, s.loc),
		Activity: PeriodSummary{
			Current:       current,
			Previous:      previous,
			PercentChange: metrics.PeriodComparison(current, previous),
		},
		TopWords:    metrics.CommentWordFrequency(refs, s.topWords),
		Timezone:    s.loc.String(),
		GeneratedAt: now.UTC(),
	}, nil
}

func (s *dashboardService) activitiesFor(ctx context.Context, userID uuid.UUID) []analytics.Activity {
	if s.activities == nil {
		return []analytics.Activity{}
	}
	return s.activities.ListActivities(ctx, userID)
}

func toEvents(acts []analytics.Activity) []metrics.ActivityEvent {
	out := make([]metrics.ActivityEvent, 0, len(acts))
	for _, a := range acts {
		out = append(out, metrics.ActivityEvent{ID: a.ID, Title: a.Title, CompletedAt: a.CompletedAt})
	}
	return out
}
