// Command createadmin provisions (or repairs) the single admin account the
// code-based login path depends on. Run once before first deployment.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medqueue-uz/medqueue-api/internal/config"
	"github.com/medqueue-uz/medqueue-api/internal/models"
	"github.com/medqueue-uz/medqueue-api/internal/storage"
	"github.com/medqueue-uz/medqueue-api/internal/utils"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, relying on environment variables")
	}

	cfg := config.Load(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	users := client.Database(cfg.MongoDatabase).Collection(storage.Users)

	var existing models.User
	err = users.FindOne(ctx, bson.M{"email": cfg.AdminEmail}).Decode(&existing)
	switch {
	case err == nil:
		// Repair the role on accounts provisioned by older versions.
		if existing.Role != "admin" {
			_, err = users.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": bson.M{"role": "admin"}})
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to update admin role")
			}
			logger.Info().Str("email", existing.Email).Msg("existing account promoted to admin")
			return
		}
		logger.Info().Str("email", existing.Email).Msg("admin account already exists")
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		// Fall through to creation.
	default:
		logger.Fatal().Err(err).Msg("failed to look up admin account")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		logger.Warn().Msg("ADMIN_PASSWORD is not set, using INSECURE development default; change it after first login")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Admin User",
		Email:    cfg.AdminEmail,
		Password: hashed,
		Role:     "admin",
	}

	if _, err := users.InsertOne(ctx, admin); err != nil {
		logger.Fatal().Err(err).Msg("failed to create admin account")
	}

	logger.Info().Str("email", admin.Email).Msg("admin account created")
}
