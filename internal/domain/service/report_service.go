package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
)

// AppUsagePlaceholder is written to every report until real usage telemetry
// exists. TODO: replace with session-derived usage once the mobile app
// ships its heartbeat events.
const AppUsagePlaceholder = 85.0

// reportWindow is how far back the rollup looks for sessions and workouts.
const reportWindow = 30 * 24 * time.Hour

// ReportService recomputes the weekly per-coach engagement reports by
// rescanning clients, sessions and workouts. Structurally the same full-scan
// pattern as RevenueService, over different collections.
type ReportService struct {
	coaching repository.CoachingRepository
	stats    repository.StatsRepository
	logger   *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(coaching repository.CoachingRepository, stats repository.StatsRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		coaching: coaching,
		stats:    stats,
		logger:   logger,
	}
}

// RollAll recomputes the report for every coach, sequentially. A failing
// coach is logged and skipped; the batch is best effort across the fleet,
// not atomic.
func (s *ReportService) RollAll(ctx context.Context) error {
	coachIDs, err := s.coaching.CoachIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list coaches: %w", err)
	}

	var failed int
	for _, coachID := range coachIDs {
		if err := s.RollCoach(ctx, coachID); err != nil {
			failed++
			s.logger.Error("report rollup failed for coach",
				zap.String("coach_id", coachID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("weekly report rollup finished",
		zap.Int("coaches", len(coachIDs)),
		zap.Int("failed", failed),
	)
	return nil
}

// RollCoach recomputes one coach's engagement report. Coaches with zero
// non-template clients are skipped entirely so their previous report stays
// in place rather than being zeroed.
func (s *ReportService) RollCoach(ctx context.Context, coachID string) error {
	clients, err := s.coaching.ListClients(ctx, coachID)
	if err != nil {
		return fmt.Errorf("failed to fetch clients: %w", err)
	}
	if len(clients) == 0 {
		s.logger.Debug("coach has no clients, report left unchanged", zap.String("coach_id", coachID))
		return nil
	}

	now := time.Now().UTC()
	since := now.Add(-reportWindow)

	sessions, err := s.coaching.ListSessionsSince(ctx, coachID, since)
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}

	workouts, err := s.coaching.ListWorkoutsSince(ctx, coachID, since)
	if err != nil {
		return fmt.Errorf("failed to fetch workouts: %w", err)
	}

	report := ComputeReportStats(coachID, clients, sessions, workouts, now)
	if err := s.stats.UpsertReport(ctx, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ComputeReportStats derives the engagement percentages for one coach.
// Pure function over the fetched snapshot.
func ComputeReportStats(coachID string, clients []*entity.CoachClient, sessions []*entity.TrainingSession, workouts []*entity.Workout, now time.Time) *entity.ReportStats {
	var active, withGoal, achieved int
	for _, c := range clients {
		if c.IsActive() {
			active++
		}
		if c.HasGoal() {
			withGoal++
			if c.GoalAchieved {
				achieved++
			}
		}
	}

	var completedSessions, rated int
	var ratingSum float64
	for _, sess := range sessions {
		if sess.Completed {
			completedSessions++
		}
		if sess.IsRated() {
			rated++
			ratingSum += sess.Rating
		}
	}

	var completedWorkouts int
	for _, w := range workouts {
		if w.Completed {
			completedWorkouts++
		}
	}

	avgRating := 0.0
	if rated > 0 {
		avgRating = ratingSum / float64(rated)
	}

	return &entity.ReportStats{
		CoachID:           coachID,
		Retention:         percent(active, len(clients)),
		GoalAchievement:   percent(achieved, withGoal),
		AverageRating:     avgRating,
		SessionAttendance: percent(completedSessions, len(sessions)),
		WorkoutCompletion: percent(completedWorkouts, len(workouts)),
		AppUsage:          AppUsagePlaceholder,
		LastUpdated:       now,
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
