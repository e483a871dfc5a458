package models

// MealEntry is one slot of the weekly meal-plan grid. The natural key is
// (owner, day, time); the store enforces it with a unique constraint.
// RecipeID is nil for a slot with no recipe assigned and may only reference
// a recipe owned by the same user.
type MealEntry struct {
	ID         int64
	OwnerEmail string
	Day        string
	Time       string
	RecipeID   *int64
}

// SlotTime is the (day, time) projection returned by ordered slot reads.
type SlotTime struct {
	Day  string
	Time string
}
