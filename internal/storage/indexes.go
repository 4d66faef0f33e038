// Package storage owns the MongoDB collection names and the index bootstrap
// run once at startup.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	Doctors             = "doctors"
	Appointments        = "appointments"
	Complaints          = "complaints"
	ServiceAppointments = "serviceappointments"
	Users               = "users"
)

// Appointments and complaints are cleaned up automatically 15 days after
// creation (1296000 seconds), regardless of status.
const recordTTLSeconds = 15 * 24 * 60 * 60

// EnsureIndexes creates the TTL and query indexes the handlers rely on.
// Index creation is idempotent; existing identical indexes are no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	appointmentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(recordTTLSeconds),
		},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "doctor", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}}},
	}
	if _, err := db.Collection(Appointments).Indexes().CreateMany(ctx, appointmentIndexes); err != nil {
		return fmt.Errorf("appointment indexes: %w", err)
	}

	complaintIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(recordTTLSeconds),
		},
	}
	if _, err := db.Collection(Complaints).Indexes().CreateMany(ctx, complaintIndexes); err != nil {
		return fmt.Errorf("complaint indexes: %w", err)
	}

	doctorIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
	if _, err := db.Collection(Doctors).Indexes().CreateMany(ctx, doctorIndexes); err != nil {
		return fmt.Errorf("doctor indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(Users).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	return nil
}
