// Command seed provisions a login account and prints its credentials.
// With no flags it generates a random email/password pair.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/ipatlas/geotrace/internal/config"
	"github.com/ipatlas/geotrace/internal/database"
	"github.com/ipatlas/geotrace/internal/logging"
	"github.com/ipatlas/geotrace/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "account email (random if empty)")
	password := flag.String("password", "", "account password (random if empty)")
	flag.Parse()

	godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if *email == "" {
		*email = "user" + randomToken(6) + "@example.com"
	}
	if *password == "" {
		*password = randomToken(12)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    *email,
		Password: string(hash),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		slog.Error("failed to create user", "email", *email, "error", err)
		os.Exit(1)
	}

	fmt.Println("Email:   ", *email)
	fmt.Println("Password:", *password)
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate random bytes", "error", err)
		os.Exit(1)
	}
	return hex.EncodeToString(b)[:n]
}
