package controllers

import (
	"net/http"

	"github.com/bingolive/bingo-backend/models"
	"github.com/bingolive/bingo-backend/store"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	store store.Store
}

func NewProfileController(st store.Store) *ProfileController {
	return &ProfileController{store: st}
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"required,email"`
}

// Register creates a profile.
func (pc *ProfileController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile := &models.Profile{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := pc.store.CreateProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// Get fetches a profile by id.
func (pc *ProfileController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	profile, err := pc.store.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// Update changes a profile's name, phone or avatar.
func (pc *ProfileController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	if err := pc.store.UpdateProfile(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}
	profile, err := pc.store.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
