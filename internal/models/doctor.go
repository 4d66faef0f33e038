package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Doctor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Specialty    string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Department   string             `bson:"department" json:"department"`
	Experience   string             `bson:"experience" json:"experience"`
	Address      string             `bson:"address" json:"address"`
	Description  string             `bson:"description" json:"description"`
	WorkingHours string             `bson:"workingHours" json:"workingHours"`
	Rating       float64            `bson:"rating" json:"rating"` // 0.0-5.0, defaults to 5.0
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
