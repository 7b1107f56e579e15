package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
)

// CompletionClient is the opaque text-completion upstream. It takes a prompt
// and returns raw model output; everything about the model is behind this
// interface.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PlanService generates workout and nutrition plans for users with a
// completed intake profile. Upstream failures surface as typed errors and
// are never retried here.
type PlanService struct {
	intake      repository.IntakeRepository
	plans       repository.PlanRepository
	completions CompletionClient
	logger      *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(intake repository.IntakeRepository, plans repository.PlanRepository, completions CompletionClient, logger *zap.Logger) *PlanService {
	return &PlanService{
		intake:      intake,
		plans:       plans,
		completions: completions,
		logger:      logger,
	}
}

// GenerateWorkoutPlan produces and stores a workout plan for the user on the
// given date.
func (s *PlanService) GenerateWorkoutPlan(ctx context.Context, userID string, date time.Time) (*entity.WorkoutPlan, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.complete(ctx, workoutPrompt(profile, date))
	if err != nil {
		return nil, err
	}

	var plan entity.WorkoutPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrMalformedPlan, err)
	}
	if plan.Name == "" || len(plan.Exercises) == 0 {
		return nil, fmt.Errorf("%w: missing name or exercises", domainerrors.ErrMalformedPlan)
	}

	if err := s.store(ctx, userID, date, entity.PlanKindWorkout, &plan, nil); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GenerateNutritionPlan produces and stores a nutrition plan for the user on
// the given date.
func (s *PlanService) GenerateNutritionPlan(ctx context.Context, userID string, date time.Time) (*entity.NutritionPlan, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.complete(ctx, nutritionPrompt(profile, date))
	if err != nil {
		return nil, err
	}

	var plan entity.NutritionPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrMalformedPlan, err)
	}
	if len(plan.Meals) == 0 {
		return nil, fmt.Errorf("%w: no meals", domainerrors.ErrMalformedPlan)
	}

	if err := s.store(ctx, userID, date, entity.PlanKindNutrition, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) requireProfile(ctx context.Context, userID string) (*entity.IntakeProfile, error) {
	profile, err := s.intake.GetByUserID(ctx, userID)
	if err != nil {
		// Only an absent profile means the user skipped intake. A store
		// failure is not the user's fault and must not read like one.
		var notFound *domainerrors.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrIntakeIncomplete, err)
		}
		return nil, fmt.Errorf("failed to fetch intake profile: %w", err)
	}
	if !profile.Completed {
		return nil, domainerrors.ErrIntakeIncomplete
	}
	return profile, nil
}

func (s *PlanService) complete(ctx context.Context, prompt string) (string, error) {
	raw, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrExternalServiceUnavailable, err)
	}

	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return "", domainerrors.ErrEmptyCompletion
	}
	return cleaned, nil
}

func (s *PlanService) store(ctx context.Context, userID string, date time.Time, kind string, workout *entity.WorkoutPlan, nutrition *entity.NutritionPlan) error {
	plan := &entity.GeneratedPlan{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Date:      date,
		Workout:   workout,
		Nutrition: nutrition,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return fmt.Errorf("failed to save generated plan: %w", err)
	}

	s.logger.Info("plan generated",
		zap.String("user_id", userID),
		zap.String("kind", kind),
		zap.String("date", date.Format("2006-01-02")),
	)
	return nil
}

// stripCodeFences removes a surrounding markdown code fence; models often
// wrap the JSON in ```json blocks despite the prompt.
func stripCodeFences(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```json")
		out = strings.TrimPrefix(out, "```")
		out = strings.TrimSuffix(out, "```")
		out = strings.TrimSpace(out)
	}
	return out
}

func workoutPrompt(p *entity.IntakeProfile, date time.Time) string {
	var b strings.Builder
	b.WriteString("Create a one-day workout plan for ")
	b.WriteString(date.Format("2006-01-02"))
	b.WriteString(".\n")
	writeProfile(&b, p)
	b.WriteString("Respond with JSON only, shaped as ")
	b.WriteString(`{"name":"","description":"","exercises":[{"name":"","sets":0,"reps":"","restSecs":0,"notes":""}]}`)
	return b.String()
}

func nutritionPrompt(p *entity.IntakeProfile, date time.Time) string {
	var b strings.Builder
	b.WriteString("Create a one-day nutrition plan for ")
	b.WriteString(date.Format("2006-01-02"))
	b.WriteString(".\n")
	writeProfile(&b, p)
	b.WriteString("Respond with JSON only, shaped as ")
	b.WriteString(`{"meals":[{"name":"","calories":0,"foods":[]}],"totalCalories":0,"macros":{"protein":0,"carbs":0,"fat":0}}`)
	return b.String()
}

func writeProfile(b *strings.Builder, p *entity.IntakeProfile) {
	fmt.Fprintf(b, "Profile: age %d, weight %.1f kg, height %.1f cm", p.Age, p.WeightKg, p.HeightCm)
	if p.Experience != "" {
		fmt.Fprintf(b, ", experience %s", p.Experience)
	}
	if p.DaysPerWeek > 0 {
		fmt.Fprintf(b, ", trains %d days/week", p.DaysPerWeek)
	}
	b.WriteString(".\n")
	if len(p.Goals) > 0 {
		fmt.Fprintf(b, "Goals: %s.\n", strings.Join(p.Goals, ", "))
	}
	if len(p.Restrictions) > 0 {
		fmt.Fprintf(b, "Restrictions: %s.\n", strings.Join(p.Restrictions, ", "))
	}
}
