package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Appointment is a booked queue slot. The doctor reference is weak: the
// doctor's name, specialty and department are copied onto the record at
// creation time so it stays meaningful if the doctor is edited or removed.
type Appointment struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName   string              `bson:"fullName" json:"fullName"`
	Phone      string              `bson:"phone" json:"phone"`
	Date       time.Time           `bson:"date" json:"date"`
	Time       string              `bson:"time" json:"time"`
	Doctor     *primitive.ObjectID `bson:"doctor,omitempty" json:"doctor,omitempty"`
	DoctorName string              `bson:"doctorName,omitempty" json:"doctorName,omitempty"`
	Specialty  string              `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Department string              `bson:"department,omitempty" json:"department,omitempty"`
	Status     string              `bson:"status" json:"status"`
	IsBooked   bool                `bson:"isBooked" json:"isBooked"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}
