package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medqueue-uz/medqueue-api/internal/models"
	"github.com/medqueue-uz/medqueue-api/internal/storage"
	"github.com/medqueue-uz/medqueue-api/internal/utils"
)

func invalidDoctorPhoneMessage(phone string) string {
	return fmt.Sprintf("%s telefon raqami noto'g'ri formatda! Iltimos, +998 XX XXX XX XX yoki 9 raqamli formatdan foydalaning.", phone)
}

// GetDoctors lists all doctors. Public, no authentication.
func (h *Handler) GetDoctors(c *gin.Context) {
	ctx := c.Request.Context()

	cursor, err := h.DB.Collection(storage.Doctors).Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// GetDoctor looks up one doctor by id. Public.
func (h *Handler) GetDoctor(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
		return
	}

	var doctor models.Doctor
	err = h.DB.Collection(storage.Doctors).FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// CreateDoctorRequest mirrors the doctor document minus server-set fields.
type CreateDoctorRequest struct {
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	Department   string   `json:"department"`
	Experience   string   `json:"experience"`
	Address      string   `json:"address"`
	Description  string   `json:"description"`
	WorkingHours string   `json:"workingHours"`
	Rating       *float64 `json:"rating"`
	Phone        string   `json:"phone"`
	Image        string   `json:"image"`
}

// CreateDoctor adds a new doctor. Admin only.
func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var missingFields []string
	for field, value := range map[string]string{
		"name":         req.Name,
		"department":   req.Department,
		"experience":   req.Experience,
		"address":      req.Address,
		"description":  req.Description,
		"workingHours": req.WorkingHours,
	} {
		if value == "" {
			missingFields = append(missingFields, field)
		}
	}
	if len(missingFields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "All fields are required",
			"missingFields": missingFields,
		})
		return
	}

	if !utils.ValidDoctorPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidDoctorPhoneMessage(req.Phone)})
		return
	}

	rating := 5.0
	if req.Rating != nil {
		rating = *req.Rating
	}
	if rating < 0 || rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 0 and 5"})
		return
	}

	now := time.Now().UTC()
	doctor := models.Doctor{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Specialty:    req.Specialty,
		Department:   req.Department,
		Experience:   req.Experience,
		Address:      req.Address,
		Description:  req.Description,
		WorkingHours: req.WorkingHours,
		Rating:       rating,
		Phone:        req.Phone,
		Image:        req.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.DB.Collection(storage.Doctors).InsertOne(c.Request.Context(), doctor); err != nil {
		h.Logger.Error().Err(err).Msg("failed to insert doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create doctor"})
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// UpdateDoctorRequest carries optional doctor fields for partial updates.
type UpdateDoctorRequest struct {
	Name         *string  `json:"name,omitempty"`
	Specialty    *string  `json:"specialty,omitempty"`
	Department   *string  `json:"department,omitempty"`
	Experience   *string  `json:"experience,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Description  *string  `json:"description,omitempty"`
	WorkingHours *string  `json:"workingHours,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Image        *string  `json:"image,omitempty"`
}

// UpdateDoctor applies a partial update to a doctor. Admin only.
func (h *Handler) UpdateDoctor(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updateFields := bson.M{}
	if req.Name != nil {
		updateFields["name"] = *req.Name
	}
	if req.Specialty != nil {
		updateFields["specialty"] = *req.Specialty
	}
	if req.Department != nil {
		updateFields["department"] = *req.Department
	}
	if req.Experience != nil {
		updateFields["experience"] = *req.Experience
	}
	if req.Address != nil {
		updateFields["address"] = *req.Address
	}
	if req.Description != nil {
		updateFields["description"] = *req.Description
	}
	if req.WorkingHours != nil {
		updateFields["workingHours"] = *req.WorkingHours
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 0 and 5"})
			return
		}
		updateFields["rating"] = *req.Rating
	}
	if req.Phone != nil {
		if !utils.ValidDoctorPhone(*req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": invalidDoctorPhoneMessage(*req.Phone)})
			return
		}
		updateFields["phone"] = *req.Phone
	}
	if req.Image != nil {
		updateFields["image"] = *req.Image
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now().UTC()

	var updated models.Doctor
	err = h.DB.Collection(storage.Doctors).FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": updateFields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteDoctor removes a doctor. Existing appointments keep their
// denormalized doctor fields, so nothing cascades. Admin only.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
		return
	}

	err = h.DB.Collection(storage.Doctors).FindOneAndDelete(c.Request.Context(), bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}
