package models

// Ingredient is a value object owned by its recipe. Amount is kept as the
// free-text string the user entered; it is only parsed numerically for
// nutrition estimation, where unparseable values count as zero.
type Ingredient struct {
	Name   string
	Unit   string
	Amount string
}

// Nutrition is a point-in-time snapshot copied from the enrichment call at
// save time. Each field is independently nullable: a failed or skipped
// lookup leaves all of them nil, and they are never recomputed on read.
type Nutrition struct {
	CaloriesKcal        *float64
	TotalFatG           *float64
	SaturatedFatG       *float64
	CholesterolMg       *float64
	SodiumMg            *float64
	TotalCarbohydratesG *float64
	DietaryFiberG       *float64
	SugarsG             *float64
	ProteinG            *float64
}

// Recipe has exactly one owner, addressed by email throughout the domain
// layer. Shared recipes stay owned; sharing only widens read access.
type Recipe struct {
	ID          int64
	OwnerEmail  string
	Name        string
	Description string
	Shared      bool
	Ingredients []Ingredient
	Nutrition   Nutrition
}

// RecipeName is the reduced row used for the owner's collection listing.
type RecipeName struct {
	ID   int64
	Name string
}

// SharedRecipeRow is the reduced field set exposed on the community list:
// no description, ingredients or macros.
type SharedRecipeRow struct {
	ID         int64
	Name       string
	OwnerEmail string
}

// RecipeRef carries the fields needed by the positional batch lookups that
// assemble the meal plan: the name and the four headline macros.
type RecipeRef struct {
	ID           int64
	Name         string
	CaloriesKcal *float64
	ProteinG     *float64
	CarbsG       *float64
	FatG         *float64
}
