package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medqueue-uz/medqueue-api/internal/middleware"
	"github.com/medqueue-uz/medqueue-api/internal/models"
	"github.com/medqueue-uz/medqueue-api/internal/storage"
	"github.com/medqueue-uz/medqueue-api/internal/utils"
)

// Login exchanges the shared admin code for a signed, time-limited token
// bound to the provisioned admin account.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is required"})
		return
	}

	if req.Code != h.Cfg.AdminCode {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid code"})
		return
	}

	var admin models.User
	err := h.DB.Collection(storage.Users).FindOne(c.Request.Context(), bson.M{"email": h.Cfg.AdminEmail}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Admin user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), admin.ID.Hex(), admin.Name, admin.Role, h.Cfg.JWTExpiry)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to sign admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":   admin.ID.Hex(),
			"name": admin.Name,
		},
	})
}

// Verify confirms that the presented token is valid and unexpired. The
// authentication middleware has already rejected anything else.
func (h *Handler) Verify(c *gin.Context) {
	userID, _ := c.Get(middleware.ContextUserID)
	userName, _ := c.Get(middleware.ContextUserName)

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":   userID,
			"name": userName,
		},
	})
}

// Register creates an additional account. Requires a valid token.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	ctx := c.Request.Context()
	users := h.DB.Collection(storage.Users)

	count, err := users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "An account with this email already exists"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     "user",
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "An account with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Health is a liveness probe for the auth surface.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Authentication service is running"})
}
