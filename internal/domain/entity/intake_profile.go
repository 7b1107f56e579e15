package entity

import (
	"time"
)

// IntakeProfile holds a user's onboarding questionnaire answers. Plan
// generation refuses to run until the profile is completed.
type IntakeProfile struct {
	UserID       string    `bson:"_id" json:"userId"`
	Age          int       `bson:"age" json:"age"`
	WeightKg     float64   `bson:"weight_kg" json:"weightKg"`
	HeightCm     float64   `bson:"height_cm" json:"heightCm"`
	Gender       string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Goals        []string  `bson:"goals" json:"goals"`
	Restrictions []string  `bson:"restrictions,omitempty" json:"restrictions,omitempty"`
	Experience   string    `bson:"experience,omitempty" json:"experience,omitempty"`
	DaysPerWeek  int       `bson:"days_per_week,omitempty" json:"daysPerWeek,omitempty"`
	Completed    bool      `bson:"completed" json:"completed"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
