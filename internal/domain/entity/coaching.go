package entity

import (
	"time"
)

// Client status values as stored on coach client records.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusPaused   = "paused"
)

// CoachClient is a client record owned by a coach. Template records are
// blueprints the coach clones for new sign-ups and are excluded from every
// engagement metric.
type CoachClient struct {
	ID           string    `bson:"_id" json:"id"`
	CoachID      string    `bson:"coach_id" json:"coachId"`
	Name         string    `bson:"name" json:"name"`
	Status       string    `bson:"status" json:"status"`
	Goal         string    `bson:"goal,omitempty" json:"goal,omitempty"`
	GoalAchieved bool      `bson:"goal_achieved" json:"goalAchieved"`
	Template     bool      `bson:"template" json:"template"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// IsActive returns true if the client is currently training
func (c *CoachClient) IsActive() bool {
	return c.Status == ClientStatusActive
}

// HasGoal returns true if the client has any goal set
func (c *CoachClient) HasGoal() bool {
	return c.Goal != ""
}

// TrainingSession is a scheduled coaching session.
type TrainingSession struct {
	ID        string    `bson:"_id" json:"id"`
	CoachID   string    `bson:"coach_id" json:"coachId"`
	ClientID  string    `bson:"client_id" json:"clientId"`
	Date      time.Time `bson:"date" json:"date"`
	Completed bool      `bson:"completed" json:"completed"`
	Rating    float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	Template  bool      `bson:"template" json:"template"`
}

// IsRated returns true if the client left a rating for the session
func (s *TrainingSession) IsRated() bool {
	return s.Rating > 0
}

// Workout is an assigned workout a client either completed or skipped.
type Workout struct {
	ID        string    `bson:"_id" json:"id"`
	CoachID   string    `bson:"coach_id" json:"coachId"`
	ClientID  string    `bson:"client_id" json:"clientId"`
	Date      time.Time `bson:"date" json:"date"`
	Completed bool      `bson:"completed" json:"completed"`
	Template  bool      `bson:"template" json:"template"`
}
