package handlers

import (
	"errors"
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

// CreateComplaintRequest is the public complaint form payload.
type CreateComplaintRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateComplaint files a complaint. Phone is optional; when present it must
// be a valid Uzbek number and is stored normalized.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var missingFields []string
	if req.Name == "" {
		missingFields = append(missingFields, "name")
	}
	if req.Message == "" {
		missingFields = append(missingFields, "message")
	}
	if len(missingFields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "All fields are required",
			"missingFields": missingFields,
		})
		return
	}

	phone := ""
	if req.Phone != "" {
		normalized, err := utils.NormalizePhone(req.Phone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":       "Invalid phone number format",
				"receivedPhone": req.Phone,
			})
			return
		}
		phone = normalized
	}

	now := time.Now().UTC()
	complaint := models.Complaint{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Phone:     phone,
		Message:   req.Message,
		Status:    models.ComplaintPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.DB.Collection(storage.Complaints).InsertOne(c.Request.Context(), complaint); err != nil {
		h.Logger.Error().Err(err).Msg("failed to insert complaint")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create complaint"})
		return
	}

	go func(record models.Complaint) {
		if !h.Notifier.SendComplaintNotification(&record) {
			h.Logger.Error().Str("complaint", record.ID.Hex()).
				Msg("failed to send telegram notification for complaint")
		}
	}(complaint)

	c.JSON(http.StatusCreated, complaint)
}

// GetComplaints lists all complaints, newest first.
func (h *Handler) GetComplaints(c *gin.Context) {
	ctx := c.Request.Context()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection(storage.Complaints).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	complaints := make([]models.Complaint, 0)
	if err := cursor.All(ctx, &complaints); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// GetComplaint looks up one complaint by id.
func (h *Handler) GetComplaint(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return
	}

	var complaint models.Complaint
	err = h.DB.Collection(storage.Complaints).FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&complaint)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, complaint)
}

var validComplaintStatuses = map[string]struct{}{
	models.ComplaintPending:  {},
	models.ComplaintReviewed: {},
	models.ComplaintResolved: {},
}

// UpdateComplaint applies a partial update. Admin only.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return
	}

	var req struct {
		Status  *string `json:"status,omitempty"`
		Message *string `json:"message,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updateFields := bson.M{}
	if req.Status != nil {
		if _, ok := validComplaintStatuses[*req.Status]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
		updateFields["status"] = *req.Status
	}
	if req.Message != nil {
		updateFields["message"] = *req.Message
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now().UTC()

	var updated models.Complaint
	err = h.DB.Collection(storage.Complaints).FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": updateFields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteComplaint removes a complaint. Admin only.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return
	}

	err = h.DB.Collection(storage.Complaints).FindOneAndDelete(c.Request.Context(), bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted successfully"})
}
