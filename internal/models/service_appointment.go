package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceAppointment is a booking for a standalone service (lab work,
// physiotherapy, etc.) not tied to a specific doctor.
type ServiceAppointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientName  string             `bson:"patientName" json:"patientName"`
	PatientPhone string             `bson:"patientPhone" json:"patientPhone"`
	ServiceType  string             `bson:"serviceType" json:"serviceType"`
	Date         time.Time          `bson:"date" json:"date"`
	Time         string             `bson:"time" json:"time"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
