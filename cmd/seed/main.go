// Command seed creates the initial admin account through the registration flow.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acquisitions/config"
	appuser "github.com/oksasatya/acquisitions/internal/application"
	"github.com/oksasatya/acquisitions/internal/container"
	"github.com/oksasatya/acquisitions/internal/domain/entity"
	pginfra "github.com/oksasatya/acquisitions/internal/infrastructure/postgres"
	"github.com/oksasatya/acquisitions/internal/router"
	"github.com/oksasatya/acquisitions/pkg/apperror"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		pool.Close()
		logger.Fatalf("migration failed: %v", err)
	}

	c := container.New(cfg, logger)
	c.PGPool = pool
	defer c.Close()
	svc := router.BuildUserService(c)

	in := adminInput()
	generated := in.Password == ""
	if generated {
		in.Password = randomPassword()
	}

	u, err := svc.Register(ctx, in)
	switch {
	case errors.Is(err, apperror.ErrDuplicateEmail):
		logger.WithField("email", in.Email).Info("admin already exists; nothing to do")
		return
	case err != nil:
		logger.WithError(err).Fatal("failed to seed admin")
	}

	logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email, "role": u.Role}).Info("seeded admin user")
	if generated {
		fmt.Printf("generated password for %s: %s\n", u.Email, in.Password)
	}
}

func adminInput() appuser.RegisterInput {
	return appuser.RegisterInput{
		Name:     getenv("SEED_ADMIN_NAME", "Administrator"),
		Email:    strings.ToLower(strings.TrimSpace(getenv("SEED_ADMIN_EMAIL", "admin@example.com"))),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
		Role:     entity.RoleAdmin,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func randomPassword() string {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
