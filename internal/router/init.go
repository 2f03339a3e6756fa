package router

import (
	appuser "github.com/oksasatya/acquisitions/internal/application"
	"github.com/oksasatya/acquisitions/internal/container"
	pginfra "github.com/oksasatya/acquisitions/internal/infrastructure/postgres"
	"github.com/oksasatya/acquisitions/internal/infrastructure/search"
	handlers "github.com/oksasatya/acquisitions/internal/interface/http"
	"github.com/oksasatya/acquisitions/internal/router/modules"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

// BuildUserService wires the registration/authentication service from c.
// Optional components are attached only when present.
func BuildUserService(c *container.Container) *appuser.Service {
	cfg := c.Config
	svc := appuser.NewService(
		pginfra.NewUserRepository(c.PGPool),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		c.JWT,
		c.Redis,
		c.Logger,
	)
	if c.ES != nil {
		svc.Index = search.NewUserIndex(c.ES, cfg.ESUsersIndex)
	}
	if c.RabbitPub != nil && cfg.MailSendEnabled {
		svc.Mail = c.RabbitPub
	}
	svc.Welcome = appuser.WelcomeMail{AppName: cfg.AppName, CompanyName: cfg.CompanyName, SupportURL: cfg.SupportURL}
	return svc
}

// InitModules builds the handlers for svc and registers every module with r.
// This function should be called once during application startup.
func InitModules(r *Registry, c *container.Container, svc *appuser.Service) {
	cfg := c.Config

	var db handlers.Pinger
	if c.PGPool != nil {
		db = c.PGPool
	}
	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(db)))

	authHandler := handlers.NewAuthHandler(svc, c.Logger, c.Cookies())
	r.Add(modules.NewAuthModule(authHandler, c.JWT, c.Redis, modules.AuthLimits{
		Max:       cfg.AuthRateLimitMax,
		Window:    cfg.AuthRateLimitWindow,
		BotShield: cfg.BotShieldEnabled,
	}))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc, c.Logger), c.JWT, c.Redis))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
