package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acquisitions/internal/domain/entity"
	repo "github.com/oksasatya/acquisitions/internal/domain/repository"
	"github.com/oksasatya/acquisitions/pkg/apperror"
	"github.com/oksasatya/acquisitions/pkg/helpers"
	"github.com/oksasatya/acquisitions/pkg/mailer"
	tpl "github.com/oksasatya/acquisitions/pkg/mailer/templates"
)

var (
	signupsTotal       = expvar.NewInt("auth_signups_total")
	signinsTotal       = expvar.NewInt("auth_signins_total")
	signinsFailedTotal = expvar.NewInt("auth_signins_failed_total")
)

// PasswordHasher hashes and verifies plaintext passwords.
// Verify returns (false, nil) on mismatch.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// UserIndexer keeps a searchable copy of sanitized users.
type UserIndexer interface {
	Index(ctx context.Context, u entity.SafeUser) error
	Search(ctx context.Context, q string, size int) ([]entity.SafeUser, error)
}

// JobPublisher enqueues background jobs.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeMail configures the email queued after sign-up.
type WelcomeMail struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

type Service struct {
	Repo    repo.UserRepository
	Hasher  PasswordHasher
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
	Index   UserIndexer  // optional
	Mail    JobPublisher // optional
	Welcome WelcomeMail

	dummyOnce sync.Once
	dummyHash string
}

// Session is an issued session token.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

func NewService(repo repo.UserRepository, hasher PasswordHasher, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Repo:   repo,
		Hasher: hasher,
		JWT:    jwt,
		Redis:  rdb,
		Logger: logger,
	}
}

// Register creates a user after checking the email is free, and returns it sanitized.
// The lookup is best-effort; the store's unique constraint settles concurrent sign-ups.
func (s *Service) Register(ctx context.Context, in RegisterInput) (entity.SafeUser, error) {
	log := s.Logger.WithField("email", in.Email)

	role := entity.RoleOrDefault(in.Role)
	if !role.Valid() {
		return entity.SafeUser{}, apperror.New(apperror.ErrValidation, "invalid role", nil)
	}

	_, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		log.Info("registration rejected: email already registered")
		return entity.SafeUser{}, apperror.NewDuplicateEmail()
	case !errors.Is(err, repo.ErrUserNotFound):
		log.WithError(err).Error("error looking up user")
		return entity.SafeUser{}, apperror.NewStorage("lookup user", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		log.WithError(err).Error("error hashing the password")
		return entity.SafeUser{}, ensureKind(err, apperror.ErrHashing, apperror.NewHashing)
	}

	u := &entity.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: role}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			log.Info("registration rejected: email registered concurrently")
			return entity.SafeUser{}, apperror.NewDuplicateEmail()
		}
		log.WithError(err).Error("error creating the user")
		return entity.SafeUser{}, apperror.NewStorage("create user", err)
	}

	signupsTotal.Add(1)
	safe := u.Sanitize()
	log.WithField("user_id", safe.ID).Info("user created successfully")

	s.afterRegister(ctx, safe)
	return safe, nil
}

// Authenticate checks email/password and returns the sanitized user.
// Unknown email and wrong password yield the same error; only the logs differ.
func (s *Service) Authenticate(ctx context.Context, email, password string) (entity.SafeUser, error) {
	log := s.Logger.WithField("email", email)

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			// keep the unknown-email path as slow as a real comparison
			_, _ = s.Hasher.Verify(password, s.placeholderHash())
			signinsFailedTotal.Add(1)
			log.Info("authentication failed: user not found")
			return entity.SafeUser{}, apperror.NewInvalidCredentials()
		}
		log.WithError(err).Error("error authenticating the user")
		return entity.SafeUser{}, apperror.NewStorage("lookup user", err)
	}

	ok, err := s.Hasher.Verify(password, u.PasswordHash)
	if err != nil {
		log.WithError(err).WithField("user_id", u.ID).Error("error comparing password")
		return entity.SafeUser{}, ensureKind(err, apperror.ErrVerification, apperror.NewVerification)
	}
	if !ok {
		signinsFailedTotal.Add(1)
		log.Info("authentication failed: invalid password")
		return entity.SafeUser{}, apperror.NewInvalidCredentials()
	}

	signinsTotal.Add(1)
	log.WithField("user_id", u.ID).Info("user authenticated successfully")
	return u.Sanitize(), nil
}

// IssueToken signs a session token for u and records the session in redis when available.
func (s *Service) IssueToken(ctx context.Context, u entity.SafeUser) (Session, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateToken(u.ID, u.Email, string(u.Role), sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, time.Until(exp)+helpers.SessionTTLGrace)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return Session{ID: sid, Token: token, ExpiresAt: exp}, nil
}

// RevokeSession drops the redis session of userID if it is still sid.
func (s *Service) RevokeSession(ctx context.Context, userID, sid string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	key := helpers.SessionKey(userID)
	current, err := s.Redis.HGet(ctx, key, "sid").Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if sid != "" && current != sid {
		return nil
	}
	return s.Redis.Del(ctx, key).Err()
}

func (s *Service) GetProfile(ctx context.Context, userID string) (entity.SafeUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return entity.SafeUser{}, apperror.NewNotFound("user")
		}
		return entity.SafeUser{}, apperror.NewStorage("lookup user", err)
	}
	return u.Sanitize(), nil
}

// SearchUsers searches the user directory; without an index it returns no results.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]entity.SafeUser, error) {
	if s.Index == nil {
		return []entity.SafeUser{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

// afterRegister runs the best-effort side effects of a sign-up.
func (s *Service) afterRegister(ctx context.Context, u entity.SafeUser) {
	log := s.Logger.WithField("user_id", u.ID)
	if s.Index != nil {
		if err := s.Index.Index(ctx, u); err != nil {
			log.WithError(err).Warn("index user failed")
		}
	}
	if s.Mail != nil {
		data := tpl.NewWelcomeData(s.Welcome.AppName, u.Name, u.Email, string(u.Role),
			tpl.WithCompany(s.Welcome.CompanyName, s.Welcome.SupportURL),
			tpl.WithJoinedAt(u.CreatedAt))
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := s.Mail.PublishJSON(c, mailer.NewWelcomeJob(u.Email, data)); err != nil {
			log.WithError(err).Warn("enqueue welcome email failed")
		}
	}
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}

func ensureKind(err error, kind error, wrap func(error) *apperror.AppError) error {
	if errors.Is(err, kind) {
		return err
	}
	return wrap(err)
}
