package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealy-app/backend/internal/logging"
	"github.com/mealy-app/backend/internal/server/notify"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	users     UserService
	recipes   RecipeService
	mealplans MealPlanService
	notifier  notify.Notifier
	logger    logging.Logger
}

func NewServer(users UserService, recipes RecipeService, mealplans MealPlanService, notifier notify.Notifier, logger logging.Logger) *Server {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Server{
		users:     users,
		recipes:   recipes,
		mealplans: mealplans,
		notifier:  notifier,
		logger:    logger,
	}
}

// Router builds the Gin engine with the full /api surface.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	api := r.Group("/api")

	// public
	api.POST("/register", s.register)
	api.GET("/login", s.alive)
	api.POST("/login", s.login)
	api.GET("/shared-recipes", s.listSharedRecipes)
	api.GET("/shared-recipes/:id", s.getSharedRecipe)
	api.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// token required
	auth := api.Group("", s.requireIdentity())
	auth.GET("/user", s.getUser)
	auth.PUT("/user", s.updateUser)
	auth.DELETE("/user", s.deleteUser)

	auth.POST("/recipe", s.saveRecipe)
	auth.GET("/collection", s.getCollection)
	auth.GET("/recipe/detail/:id", s.getRecipeDetail)
	auth.DELETE("/recipe/detail/:id", s.deleteRecipe)
	auth.POST("/recipe/:id/share", s.shareRecipe)
	auth.DELETE("/recipe/:id/share", s.unshareRecipe)

	auth.GET("/mealplan", s.getMealPlan)
	auth.POST("/mealplan", s.saveMealPlanSlot)
	auth.DELETE("/mealplan", s.deleteMealPlanSlot)

	return r
}
