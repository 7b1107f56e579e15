package entity

import (
	"time"
)

// Plan kinds stored in the plans collection.
const (
	PlanKindWorkout   = "workout"
	PlanKindNutrition = "nutrition"
)

// Exercise is one entry of a generated workout plan.
type Exercise struct {
	Name     string `bson:"name" json:"name"`
	Sets     int    `bson:"sets" json:"sets"`
	Reps     string `bson:"reps" json:"reps"`
	RestSecs int    `bson:"rest_secs,omitempty" json:"restSecs,omitempty"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutPlan is the JSON contract returned by the plan generation upstream
// for workout requests.
type WorkoutPlan struct {
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	Exercises   []Exercise `bson:"exercises" json:"exercises"`
}

// Meal is one entry of a generated nutrition plan.
type Meal struct {
	Name     string   `bson:"name" json:"name"`
	Calories int      `bson:"calories" json:"calories"`
	Foods    []string `bson:"foods,omitempty" json:"foods,omitempty"`
}

// Macros is the macronutrient split of a nutrition plan, in grams.
type Macros struct {
	ProteinG int `bson:"protein_g" json:"protein"`
	CarbsG   int `bson:"carbs_g" json:"carbs"`
	FatG     int `bson:"fat_g" json:"fat"`
}

// NutritionPlan is the JSON contract returned by the plan generation
// upstream for nutrition requests.
type NutritionPlan struct {
	Meals         []Meal `bson:"meals" json:"meals"`
	TotalCalories int    `bson:"total_calories" json:"totalCalories"`
	Macros        Macros `bson:"macros" json:"macros"`
}

// GeneratedPlan is the stored envelope for a plan produced for a user on a
// given date. Exactly one of Workout/Nutrition is set, matching Kind.
type GeneratedPlan struct {
	ID        string         `bson:"_id" json:"id"`
	UserID    string         `bson:"user_id" json:"userId"`
	Kind      string         `bson:"kind" json:"kind"`
	Date      time.Time      `bson:"date" json:"date"`
	Workout   *WorkoutPlan   `bson:"workout,omitempty" json:"workout,omitempty"`
	Nutrition *NutritionPlan `bson:"nutrition,omitempty" json:"nutrition,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
}
