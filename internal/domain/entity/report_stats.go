package entity

import (
	"time"
)

// ReportStats is the per-coach weekly engagement snapshot. Percentage fields
// are 0-100. AppUsage is a placeholder until real usage telemetry lands.
type ReportStats struct {
	CoachID           string    `bson:"coach_id" json:"coachId"`
	Retention         float64   `bson:"retention" json:"retention"`
	GoalAchievement   float64   `bson:"goal_achievement" json:"goalAchievement"`
	AverageRating     float64   `bson:"average_rating" json:"averageRating"`
	SessionAttendance float64   `bson:"session_attendance" json:"sessionAttendance"`
	WorkoutCompletion float64   `bson:"workout_completion" json:"workoutCompletion"`
	AppUsage          float64   `bson:"app_usage" json:"appUsage"`
	LastUpdated       time.Time `bson:"last_updated" json:"lastUpdated"`
}
