package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/server/models"
	"github.com/mealy-app/backend/internal/server/services"
)

type ingredientPayload struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Amount string `json:"amount"`
}

type recipeRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Ingredients []ingredientPayload `json:"ingredients"`
}

type recipeNameResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type nutritionResponse struct {
	CaloriesKcal        float64 `json:"caloriesKcal"`
	TotalFatG           float64 `json:"totalFatG"`
	SaturatedFatG       float64 `json:"saturatedFatG"`
	CholesterolMg       float64 `json:"cholesterolMg"`
	SodiumMg            float64 `json:"sodiumMg"`
	TotalCarbohydratesG float64 `json:"totalCarbohydratesG"`
	DietaryFiberG       float64 `json:"dietaryFiberG"`
	SugarsG             float64 `json:"sugarsG"`
	ProteinG            float64 `json:"proteinG"`
}

type recipeDetailResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Owner       string              `json:"owner"`
	Description string              `json:"description"`
	Ingredients []ingredientPayload `json:"ingredients"`
	Nutrition   nutritionResponse   `json:"nutrition"`
}

type sharedRecipeResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

func toRecipeDetail(r *models.Recipe) recipeDetailResponse {
	ingredients := make([]ingredientPayload, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ingredientPayload{Name: ing.Name, Unit: ing.Unit, Amount: ing.Amount})
	}
	return recipeDetailResponse{
		ID:          r.ID,
		Name:        r.Name,
		Owner:       r.OwnerEmail,
		Description: r.Description,
		Ingredients: ingredients,
		Nutrition: nutritionResponse{
			CaloriesKcal:        safe0(r.Nutrition.CaloriesKcal),
			TotalFatG:           safe0(r.Nutrition.TotalFatG),
			SaturatedFatG:       safe0(r.Nutrition.SaturatedFatG),
			CholesterolMg:       safe0(r.Nutrition.CholesterolMg),
			SodiumMg:            safe0(r.Nutrition.SodiumMg),
			TotalCarbohydratesG: safe0(r.Nutrition.TotalCarbohydratesG),
			DietaryFiberG:       safe0(r.Nutrition.DietaryFiberG),
			SugarsG:             safe0(r.Nutrition.SugarsG),
			ProteinG:            safe0(r.Nutrition.ProteinG),
		},
	}
}

func safe0(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *Server) saveRecipe(c *gin.Context) {
	user := currentUser(c)

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
		return
	}

	ingredients := make([]models.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, models.Ingredient{Name: ing.Name, Unit: ing.Unit, Amount: ing.Amount})
	}

	_, err := s.recipes.Save(c.Request.Context(), user.Email, services.RecipeInput{
		Name:        req.Name,
		Description: req.Description,
		Ingredients: ingredients,
	})
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	c.String(http.StatusOK, "Recipe successfully created")
}

func (s *Server) getCollection(c *gin.Context) {
	user := currentUser(c)

	names, err := s.recipes.ReadNames(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	out := make([]recipeNameResponse, 0, len(names))
	for _, n := range names {
		out = append(out, recipeNameResponse{ID: n.ID, Name: n.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getRecipeDetail(c *gin.Context) {
	user := currentUser(c)

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Recipe not found"})
		return
	}

	recipe, err := s.recipes.ReadDetail(c.Request.Context(), id, user.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"reason": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

// deleteRecipe clears the caller's meal-plan references to the recipe
// before deleting it, so no slot is left pointing at a gone row.
func (s *Server) deleteRecipe(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Recipe not found"})
		return
	}

	if _, err := s.mealplans.DeleteByRecipe(ctx, user.Email, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	deleted, err := s.recipes.DeleteOwned(ctx, id, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe successfully deleted"})
}

func (s *Server) listSharedRecipes(c *gin.Context) {
	rows, err := s.recipes.ListShared(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	out := make([]sharedRecipeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, sharedRecipeResponse{ID: r.ID, Name: r.Name, Owner: r.OwnerEmail})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSharedRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Shared recipe not found"})
		return
	}

	recipe, err := s.recipes.ReadSharedDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"reason": "Shared recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, toRecipeDetail(recipe))
}

func (s *Server) shareRecipe(c *gin.Context)   { s.setShared(c, true, "Recipe shared") }
func (s *Server) unshareRecipe(c *gin.Context) { s.setShared(c, false, "Recipe unshared") }

func (s *Server) setShared(c *gin.Context, shared bool, message string) {
	user := currentUser(c)

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Recipe not found"})
		return
	}

	updated, err := s.recipes.SetShared(c.Request.Context(), id, user.Email, shared)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "shared": shared})
}
