// Command adduser creates a coach or athlete account with its profile.
//
//	adduser -email coach@example.com -password secret123 -role coach -first Pat -last Lee
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/westosha-tf/team-portal/internal/config"
	"github.com/westosha-tf/team-portal/internal/database"
	"github.com/westosha-tf/team-portal/internal/logger"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/services"
	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	role := flag.String("role", string(models.RoleAthlete), "coach or athlete")
	first := flag.String("first", "", "first name")
	last := flag.String("last", "", "last name")
	group := flag.String("group", "", "event group, e.g. Sprints")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDatabase(db, zlog); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	sessionService := services.NewSessionService(repository.NewUserRepository(db), zlog)
	user, err := sessionService.Register(context.Background(), services.RegisterInput{
		Email:      *email,
		Password:   *password,
		Role:       models.Role(*role),
		FirstName:  *first,
		LastName:   *last,
		EventGroup: *group,
	})
	if err != nil {
		zlog.Error("Failed to create account", zap.Error(err))
		os.Exit(1)
	}

	zlog.Info("Account created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", *role),
	)
}
