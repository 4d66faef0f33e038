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

// CreateServiceAppointmentRequest is the service booking form payload.
type CreateServiceAppointmentRequest struct {
	PatientName  string `json:"patientName"`
	PatientPhone string `json:"patientPhone"`
	ServiceType  string `json:"serviceType"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// CreateServiceAppointment books a standalone service slot.
func (h *Handler) CreateServiceAppointment(c *gin.Context) {
	var req CreateServiceAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var missingFields []string
	if req.PatientName == "" {
		missingFields = append(missingFields, "patientName")
	}
	if req.PatientPhone == "" {
		missingFields = append(missingFields, "patientPhone")
	}
	if req.ServiceType == "" {
		missingFields = append(missingFields, "serviceType")
	}
	if req.Date == "" {
		missingFields = append(missingFields, "date")
	}
	if req.Time == "" {
		missingFields = append(missingFields, "time")
	}
	if len(missingFields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "All fields are required",
			"missingFields": missingFields,
		})
		return
	}

	normalizedPhone, err := utils.NormalizePhone(req.PatientPhone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "Invalid phone number format",
			"receivedPhone": req.PatientPhone,
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		return
	}

	now := time.Now().UTC()
	svc := models.ServiceAppointment{
		ID:           primitive.NewObjectID(),
		PatientName:  req.PatientName,
		PatientPhone: normalizedPhone,
		ServiceType:  req.ServiceType,
		Date:         date,
		Time:         req.Time,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.DB.Collection(storage.ServiceAppointments).InsertOne(c.Request.Context(), svc); err != nil {
		h.Logger.Error().Err(err).Msg("failed to insert service appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create service appointment"})
		return
	}

	go func(record models.ServiceAppointment) {
		if !h.Notifier.SendServiceAppointmentNotification(&record) {
			h.Logger.Error().Str("serviceAppointment", record.ID.Hex()).
				Msg("failed to send telegram notification for service appointment")
		}
	}(svc)

	c.JSON(http.StatusCreated, svc)
}

// GetServiceAppointments lists all service appointments, newest first.
func (h *Handler) GetServiceAppointments(c *gin.Context) {
	ctx := c.Request.Context()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection(storage.ServiceAppointments).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	serviceAppointments := make([]models.ServiceAppointment, 0)
	if err := cursor.All(ctx, &serviceAppointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, serviceAppointments)
}

// GetServiceAppointment looks up one service appointment by id.
func (h *Handler) GetServiceAppointment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service appointment not found"})
		return
	}

	var svc models.ServiceAppointment
	err = h.DB.Collection(storage.ServiceAppointments).FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

// UpdateServiceAppointment applies a partial update to a service booking.
func (h *Handler) UpdateServiceAppointment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service appointment not found"})
		return
	}

	var req struct {
		PatientName  *string `json:"patientName,omitempty"`
		PatientPhone *string `json:"patientPhone,omitempty"`
		ServiceType  *string `json:"serviceType,omitempty"`
		Date         *string `json:"date,omitempty"`
		Time         *string `json:"time,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updateFields := bson.M{}
	if req.PatientName != nil {
		updateFields["patientName"] = *req.PatientName
	}
	if req.PatientPhone != nil {
		normalized, err := utils.NormalizePhone(*req.PatientPhone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":       "Invalid phone number format",
				"receivedPhone": *req.PatientPhone,
			})
			return
		}
		updateFields["patientPhone"] = normalized
	}
	if req.ServiceType != nil {
		updateFields["serviceType"] = *req.ServiceType
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
			return
		}
		updateFields["date"] = date
	}
	if req.Time != nil {
		updateFields["time"] = *req.Time
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now().UTC()

	var updated models.ServiceAppointment
	err = h.DB.Collection(storage.ServiceAppointments).FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": updateFields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Service appointment updated successfully",
		"appointment": updated,
	})
}

// DeleteServiceAppointment removes a service booking by id.
func (h *Handler) DeleteServiceAppointment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service appointment not found"})
		return
	}

	err = h.DB.Collection(storage.ServiceAppointments).FindOneAndDelete(c.Request.Context(), bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service appointment deleted successfully"})
}
