// Command dbcheck verifies the configured database answers SELECT version().
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/oksasatya/acquisitions/config"
	pginfra "github.com/oksasatya/acquisitions/internal/infrastructure/postgres"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-dbcheck", cfg.Env)

	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		logger.Error("neither DATABASE_URL nor DB_HOST is set")
		os.Exit(1)
	}

	logger.Info("attempting to connect to the database")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	version, err := check(ctx, cfg.PostgresDSN())
	if err != nil {
		entry := logger.WithError(err)
		if h := hint(err); h != "" {
			entry = entry.WithField("likely_cause", h)
		}
		entry.Error("connection failed")
		os.Exit(1)
	}
	logger.WithField("version", version).Info("connection successful")
	fmt.Println(version)
}

func check(ctx context.Context, dsn string) (string, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return "", err
	}
	defer pool.Close()
	return pginfra.ServerVersion(ctx, pool)
}

// hint maps common connection failures to an operator-facing cause.
func hint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "28P01", "28000":
			return "authentication rejected: check the user and password"
		case "3D000":
			return "database does not exist"
		}
		return ""
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "host name does not resolve: check the URL or DNS"
	}
	var pe *pgconn.ParseConfigError
	if errors.As(err, &pe) {
		return "malformed connection string"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out: network issue or firewall block"
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no route to host") {
		return "server unreachable: network issue or firewall block"
	}
	return ""
}
