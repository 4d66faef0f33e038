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
)

// DashboardStats aggregates the counters shown on the admin dashboard.
func (h *Handler) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	appointments := h.DB.Collection(storage.Appointments)

	totalAppointments, err := appointments.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching dashboard stats"})
		return
	}
	pendingAppointments, err := appointments.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching dashboard stats"})
		return
	}
	completedAppointments, err := appointments.CountDocuments(ctx, bson.M{"status": models.StatusCompleted})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching dashboard stats"})
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	todayAppointments, err := appointments.CountDocuments(ctx, bson.M{
		"date": bson.M{"$gte": startOfDay, "$lt": endOfDay},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching dashboard stats"})
		return
	}

	totalComplaints, err := h.DB.Collection(storage.Complaints).CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching dashboard stats"})
		return
	}
	totalDoctors, err := h.DB.Collection(storage.Doctors).CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching dashboard stats"})
		return
	}

	recentOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)

	// The recent lists are best-effort; a failure leaves them empty rather
	// than failing the whole stats response.
	recentAppointments := make([]models.Appointment, 0, 5)
	if cursor, err := appointments.Find(ctx, bson.M{}, recentOptions); err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch recent appointments")
	} else if err := cursor.All(ctx, &recentAppointments); err != nil {
		h.Logger.Error().Err(err).Msg("failed to decode recent appointments")
	}

	recentComplaints := make([]models.Complaint, 0, 5)
	if cursor, err := h.DB.Collection(storage.Complaints).Find(ctx, bson.M{}, recentOptions); err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch recent complaints")
	} else if err := cursor.All(ctx, &recentComplaints); err != nil {
		h.Logger.Error().Err(err).Msg("failed to decode recent complaints")
	}

	c.JSON(http.StatusOK, gin.H{
		"totalAppointments":     totalAppointments,
		"pendingAppointments":   pendingAppointments,
		"completedAppointments": completedAppointments,
		"todayAppointments":     todayAppointments,
		"totalComplaints":       totalComplaints,
		"totalDoctors":          totalDoctors,
		"recentAppointments":    recentAppointments,
		"recentComplaints":      recentComplaints,
	})
}

// AdminUpdateAppointmentStatus sets the status of an appointment.
func (h *Handler) AdminUpdateAppointmentStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}
	if _, ok := validStatuses[req.Status]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	var updated models.Appointment
	err = h.DB.Collection(storage.Appointments).FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
