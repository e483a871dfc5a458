// Package notify delivers best-effort admin notifications. Delivery is
// fire-and-forget: failures are logged and never surfaced to the flows that
// trigger them.
package notify

import (
	"context"
	"time"
)

// MealPlanSavedEvent describes a completed meal-plan save.
type MealPlanSavedEvent struct {
	ID         string
	UserEmail  string
	Day        string
	Time       string
	RecipeID   string
	RecipeName string
	OccurredAt time.Time
}

// Notifier is the fire-and-forget contract consumed by the boundary.
type Notifier interface {
	MealPlanSaved(ctx context.Context, event MealPlanSavedEvent)
}

// Noop is the Notifier used when mail is disabled.
type Noop struct{}

func (Noop) MealPlanSaved(ctx context.Context, event MealPlanSavedEvent) {}
