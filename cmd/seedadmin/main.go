// Command seedadmin creates an admin-role user. Registration only produces
// employee accounts, so the first admin has to be seeded out of band.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftline/payments-portal/internal/models"
	"github.com/swiftline/payments-portal/internal/repository"
	"github.com/swiftline/payments-portal/internal/utils"
)

func main() {
	account := flag.String("account", "admin001", "admin account number")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Admin User", "admin full name")
	idNumber := flag.String("id-number", "", "admin national id number")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	database := getEnv("MONGO_DATABASE", "customerPortal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer client.Disconnect(context.Background())

	userRepo := repository.NewUserRepository(client.Database(database))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	hash, err := utils.HashPassword(*password, 12)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{
		FullName:      *name,
		IDNumber:      *idNumber,
		AccountNumber: *account,
		PasswordHash:  hash,
		Role:          models.RoleAdmin,
		CreatedAt:     time.Now().UTC(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user %s created with role: admin", *account)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
