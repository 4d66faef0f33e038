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

	"github.com/medqueue-uz/medqueue-api/internal/booking"
	"github.com/medqueue-uz/medqueue-api/internal/models"
	"github.com/medqueue-uz/medqueue-api/internal/storage"
	"github.com/medqueue-uz/medqueue-api/internal/utils"
)

// CreateAppointmentRequest accepts both caller shapes: the simple booking
// form sends patientName/patientPhone/doctor, the queue page sends
// fullName/phone/doctorId.
type CreateAppointmentRequest struct {
	PatientName  string `json:"patientName"`
	FullName     string `json:"fullName"`
	PatientPhone string `json:"patientPhone"`
	Phone        string `json:"phone"`
	Doctor       string `json:"doctor"`
	DoctorID     string `json:"doctorId"`
	DoctorName   string `json:"doctorName"`
	Specialty    string `json:"specialty"`
	Department   string `json:"department"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// CreateAppointment books a queue slot. After the record is persisted the
// realtime broadcast and the Telegram notification run as best-effort
// goroutines; neither can fail the booking.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	name := firstNonEmpty(req.PatientName, req.FullName)
	phone := firstNonEmpty(req.PatientPhone, req.Phone)
	docID := firstNonEmpty(req.Doctor, req.DoctorID)

	var missingFields []string
	if name == "" {
		missingFields = append(missingFields, "fullName")
	}
	if phone == "" {
		missingFields = append(missingFields, "phone")
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

	normalizedPhone, err := utils.NormalizeBookingPhone(phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":       "Invalid phone number format",
			"receivedPhone": phone,
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		return
	}

	if !booking.IsCatalogSlot(req.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid time slot"})
		return
	}

	ctx := c.Request.Context()

	var doctorRef *primitive.ObjectID
	var doctor *models.Doctor
	if docID != "" {
		oid, err := primitive.ObjectIDFromHex(docID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
			return
		}

		var d models.Doctor
		err = h.DB.Collection(storage.Doctors).FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Doctor not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		doctorRef = &oid
		doctor = &d

		// Check-then-insert conflict guard. Not transactional, so two
		// simultaneous bookings can still slip through; the window is
		// narrow and accepted (see DESIGN.md).
		filter := bson.M{
			"doctor": oid,
			"date":   date,
			"time":   req.Time,
			"status": bson.M{"$ne": models.StatusCancelled},
		}
		count, err := h.DB.Collection(storage.Appointments).CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Time slot already booked"})
			return
		}
	}

	doctorName, specialty, department := resolveDoctorDetails(req, doctor)

	now := time.Now().UTC()
	apt := models.Appointment{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		Phone:      normalizedPhone,
		Date:       date,
		Time:       req.Time,
		Doctor:     doctorRef,
		DoctorName: doctorName,
		Specialty:  specialty,
		Department: department,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := h.DB.Collection(storage.Appointments).InsertOne(ctx, apt); err != nil {
		h.Logger.Error().Err(err).Msg("failed to insert appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create appointment"})
		return
	}

	go h.Hub.PublishAppointment(apt)
	go func(record models.Appointment) {
		if !h.Notifier.SendAppointmentNotification(&record) {
			h.Logger.Error().Str("appointment", record.ID.Hex()).
				Msg("failed to send telegram notification for appointment")
		}
	}(apt)

	c.JSON(http.StatusCreated, apt)
}

// resolveDoctorDetails fills the denormalized doctor fields for a new
// appointment. Request values win, then the doctor document; the department
// falls back to "general" when neither supplies one.
func resolveDoctorDetails(req CreateAppointmentRequest, doctor *models.Doctor) (name, specialty, department string) {
	name = req.DoctorName
	specialty = req.Specialty
	department = req.Department
	if doctor != nil {
		name = firstNonEmpty(name, doctor.Name)
		specialty = firstNonEmpty(specialty, doctor.Specialty)
		department = firstNonEmpty(department, doctor.Department)
	}
	department = firstNonEmpty(department, "general")
	return name, specialty, department
}

// GetAppointments lists all appointments, newest first.
func (h *Handler) GetAppointments(c *gin.Context) {
	ctx := c.Request.Context()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection(storage.Appointments).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetTimeSlots reports the booking status of every catalog slot for a given
// date and doctor.
func (h *Handler) GetTimeSlots(c *gin.Context) {
	dateStr := c.Query("date")
	doctorID := c.Query("doctorId")
	if dateStr == "" || doctorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date and doctorId are required"})
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid doctorId"})
		return
	}

	ctx := c.Request.Context()
	cursor, err := h.DB.Collection(storage.Appointments).Find(ctx, bson.M{"date": date, "doctor": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching time slots"})
		return
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching time slots"})
		return
	}

	bookedTimes := make([]string, 0, len(appointments))
	for _, apt := range appointments {
		bookedTimes = append(bookedTimes, apt.Time)
	}

	c.JSON(http.StatusOK, booking.Availability(bookedTimes))
}

// GetAppointment looks up one appointment by id.
func (h *Handler) GetAppointment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}

	var apt models.Appointment
	err = h.DB.Collection(storage.Appointments).FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&apt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, apt)
}

// UpdateAppointmentRequest carries the patient-facing mutable fields.
type UpdateAppointmentRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Date     *string `json:"date,omitempty"`
	Time     *string `json:"time,omitempty"`
	Status   *string `json:"status,omitempty"`
}

var validStatuses = map[string]struct{}{
	models.StatusPending:   {},
	models.StatusConfirmed: {},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
	models.StatusExpired:   {},
}

// UpdateAppointment applies a partial update to an appointment.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updateFields := bson.M{}
	if req.FullName != nil {
		updateFields["fullName"] = *req.FullName
	}
	if req.Phone != nil {
		normalized, err := utils.NormalizeBookingPhone(*req.Phone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":       "Invalid phone number format",
				"receivedPhone": *req.Phone,
			})
			return
		}
		updateFields["phone"] = normalized
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
	if req.Status != nil {
		if _, ok := validStatuses[*req.Status]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
		updateFields["status"] = *req.Status
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now().UTC()

	var updated models.Appointment
	err = h.DB.Collection(storage.Appointments).FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": updateFields},
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

// DeleteAppointment removes an appointment by id.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}

	err = h.DB.Collection(storage.Appointments).FindOneAndDelete(c.Request.Context(), bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
