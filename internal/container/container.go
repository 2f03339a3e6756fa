package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acquisitions/config"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

// Container holds the components constructed at startup and shared by the
// router modules. Redis, RabbitPub and ES are optional and may be nil.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	JWT       *helpers.JWTManager
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.SigningSecret(), cfg.JWTIssuer, cfg.TokenTTL),
	}
}

// Cookies returns the cookie manager configured for the session token.
func (c *Container) Cookies() *helpers.Manager {
	return helpers.NewCookie(c.Config.CookieDomain, c.Config.CookieSecure)
}

// Close releases every connection the container owns.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
