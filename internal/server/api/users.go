package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/server/services"
)

type credentialsRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
		return
	}
	if req.UserName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"reason": "Email already used"})
		case errors.Is(err, common.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account successfully registered"})
}

func (s *Server) alive(c *gin.Context) {
	c.String(http.StatusOK, "The Mealy backend is alive.")
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Invalid credentials"})
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.UserName
	}

	user, err := s.users.Authenticate(c.Request.Context(), identifier, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Invalid credentials"})
		return
	}

	token, err := s.users.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) getUser(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, userResponse{UserName: user.UserName, Email: user.Email})
}

func (s *Server) updateUser(c *gin.Context) {
	user := currentUser(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"reason": "Uncomplete data"})
		return
	}

	updated, err := s.users.UpdateForOwner(c.Request.Context(), user.Email, services.UserPatch{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"reason": "Email already used"})
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"reason": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"reason": "Update failed"})
		}
		return
	}

	// the subject may have changed, so hand out a token for the new identity
	token, err := s.users.IssueToken(updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account details successfully changed",
		"token":   token,
	})
}

// deleteUser removes the account with its dependents. The cascade order is
// meal plan, recipes, then the identity row, matching the FK direction.
func (s *Server) deleteUser(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	if _, err := s.mealplans.DeleteByOwnerEmail(ctx, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Account could not be deleted"})
		return
	}
	if _, err := s.recipes.DeleteByOwnerEmail(ctx, user.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Account could not be deleted"})
		return
	}

	deleted, err := s.users.DeleteByEmail(ctx, user.Email)
	if err != nil || !deleted {
		c.JSON(http.StatusInternalServerError, gin.H{"reason": "Account could not be deleted"})
		return
	}

	s.log(c).Info(ctx, "account deleted", "email", user.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Account successfully deleted"})
}
