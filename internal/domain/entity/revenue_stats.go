package entity

import (
	"time"
)

// RevenueStats is the per-coach revenue snapshot shown on the dashboard.
// One document per coach, fully recomputed and upserted on every transaction
// change.
//
// MonthlyRecurring is, despite the name, the lifetime sum of paid
// subscription charges. The name is part of the dashboard contract and is
// kept as is.
type RevenueStats struct {
	CoachID             string    `bson:"coach_id" json:"coachId"`
	TotalRevenue        float64   `bson:"total_revenue" json:"totalRevenue"`
	MonthlyRecurring    float64   `bson:"monthly_recurring" json:"monthlyRecurring"`
	ActiveSubscriptions int       `bson:"active_subscriptions" json:"activeSubscriptions"`
	CurrentMonthRevenue float64   `bson:"current_month_revenue" json:"currentMonthRevenue"`
	LastMonthRevenue    float64   `bson:"last_month_revenue" json:"lastMonthRevenue"`
	RevenueGrowth       float64   `bson:"revenue_growth" json:"revenueGrowth"`
	RecurringGrowth     float64   `bson:"recurring_growth" json:"recurringGrowth"`
	SubscriptionGrowth  float64   `bson:"subscription_growth" json:"subscriptionGrowth"`
	LastUpdated         time.Time `bson:"last_updated" json:"lastUpdated"`
}
