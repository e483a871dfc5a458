package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/server/notify"
	"github.com/mealy-app/backend/internal/server/services"
)

type mealPlanSlotRequest struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	ID   string `json:"id"`
}

type mealPlanEntryResponse struct {
	Day          string  `json:"day"`
	Time         string  `json:"time"`
	Name         string  `json:"name"`
	CaloriesKcal float64 `json:"caloriesKcal"`
	ProteinG     float64 `json:"proteinG"`
	CarbsG       float64 `json:"carbsG"`
	FatG         float64 `json:"fatG"`
}

// getMealPlan assembles the plan from three positionally aligned sequences:
// slot keys, recipe names and macro summaries, all derived from the same
// insertion-ordered slot list.
func (s *Server) getMealPlan(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	slots, err := s.mealplans.ReadSlots(ctx, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}
	ids, err := s.mealplans.ReadSlotRecipeIDs(ctx, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}
	names, err := s.recipes.ReadNamesByIDs(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}
	macros, err := s.recipes.ReadNutritionByIDs(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	if len(slots) != len(names) || len(names) != len(macros) {
		s.log(c).Error(ctx, "meal plan sequences out of step",
			"slots", len(slots), "names", len(names), "macros", len(macros))
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	plan := make([]mealPlanEntryResponse, 0, len(slots))
	for i := range slots {
		plan = append(plan, mealPlanEntryResponse{
			Day:          slots[i].Day,
			Time:         slots[i].Time,
			Name:         names[i],
			CaloriesKcal: macros[i].CaloriesKcal,
			ProteinG:     macros[i].ProteinG,
			CarbsG:       macros[i].CarbsG,
			FatG:         macros[i].FatG,
		})
	}

	c.JSON(http.StatusOK, gin.H{"mealplan": plan})
}

func (s *Server) saveMealPlanSlot(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	var req mealPlanSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
		return
	}

	entry, err := s.mealplans.UpsertSlot(ctx, user.Email, services.SlotInput{
		Day:      req.Day,
		Time:     req.Time,
		RecipeID: req.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"reason": reason(err)})
		case errors.Is(err, common.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"reason": "Slot was updated concurrently"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		}
		return
	}

	s.notifier.MealPlanSaved(ctx, notify.MealPlanSavedEvent{
		ID:         strconv.FormatInt(entry.ID, 10),
		UserEmail:  user.Email,
		Day:        entry.Day,
		Time:       entry.Time,
		RecipeID:   req.ID,
		RecipeName: s.slotRecipeName(c, entry.RecipeID, user.Email),
		OccurredAt: time.Now(),
	})

	c.String(http.StatusOK, "Recipe successfully added to meal plan")
}

// slotRecipeName resolves the assigned recipe's name for the notification
// body. It is best-effort like the notification itself.
func (s *Server) slotRecipeName(c *gin.Context, recipeID *int64, ownerEmail string) string {
	if recipeID == nil {
		return ""
	}
	recipe, err := s.recipes.ReadDetail(c.Request.Context(), *recipeID, ownerEmail)
	if err != nil {
		return ""
	}
	return recipe.Name
}

func (s *Server) deleteMealPlanSlot(c *gin.Context) {
	user := currentUser(c)

	var req mealPlanSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Meal entry not found"})
		return
	}

	deleted, err := s.mealplans.DeleteSlot(c.Request.Context(), user.Email, req.Day, req.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"reason": "Meal entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal successfully removed"})
}

// reason strips the sentinel prefix added by fmt.Errorf("%w: ...") wrapping,
// leaving the human-readable part for the wire.
func reason(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{common.ErrValidation, common.ErrConflict} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}
