package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/acquisitions/internal/domain/entity"
	"github.com/oksasatya/acquisitions/internal/domain/repository"
	"github.com/oksasatya/acquisitions/internal/testutil"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	dsn  string
	pool *pgxpool.Pool
	repo *UserRepository
}

func TestUserRepositoryIntegration(t *testing.T) {
	dsn := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	suite.Run(t, &UserRepositoryTestSuite{dsn: dsn})
}

func (s *UserRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()
	pool, err := NewPool(ctx, s.dsn, 4, 1, time.Minute)
	s.Require().NoError(err)
	s.pool = pool

	logger, _ := logrustest.NewNullLogger()
	s.Require().NoError(RunMigrations(s.dsn, "../../../db/migrations", logger))
	s.repo = NewUserRepository(pool)
}

func (s *UserRepositoryTestSuite) TearDownSuite() {
	_, _ = s.pool.Exec(context.Background(), `DELETE FROM users WHERE email LIKE 'it-%@example.com'`)
	s.pool.Close()
}

func testEmail() string {
	return "it-" + uuid.NewString() + "@example.com"
}

func (s *UserRepositoryTestSuite) TestCreateAndLookup() {
	ctx := context.Background()
	u := &entity.User{Name: "Ann", Email: testEmail(), PasswordHash: "$2a$10$hash", Role: entity.RoleUser}

	s.Require().NoError(s.repo.Create(ctx, u))
	s.NotEmpty(u.ID)
	s.False(u.CreatedAt.IsZero())

	byEmail, err := s.repo.GetByEmail(ctx, u.Email)
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)
	s.Equal("$2a$10$hash", byEmail.PasswordHash)
	s.Equal(entity.RoleUser, byEmail.Role)

	byID, err := s.repo.GetByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.Email, byID.Email)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_NotFound() {
	_, err := s.repo.GetByEmail(context.Background(), testEmail())
	s.ErrorIs(err, repository.ErrUserNotFound)

	_, err = s.repo.GetByID(context.Background(), "not-a-uuid")
	s.ErrorIs(err, repository.ErrUserNotFound)
}

func (s *UserRepositoryTestSuite) TestCreate_InTransaction() {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	s.Require().NoError(err)

	u := &entity.User{Name: "Tx", Email: testEmail(), PasswordHash: "h", Role: entity.RoleAdmin}
	s.Require().NoError(NewUserRepositoryWith(tx).Create(ctx, u))
	s.Require().NoError(tx.Rollback(ctx))

	_, err = s.repo.GetByEmail(ctx, u.Email)
	s.ErrorIs(err, repository.ErrUserNotFound)
}

func (s *UserRepositoryTestSuite) TestServerVersion() {
	v, err := ServerVersion(context.Background(), s.pool)
	s.Require().NoError(err)
	s.Contains(v, "PostgreSQL")
}

func (s *UserRepositoryTestSuite) TestCreate_UniqueViolation() {
	ctx := context.Background()
	email := testEmail()
	s.Require().NoError(s.repo.Create(ctx, &entity.User{Name: "A", Email: email, PasswordHash: "h", Role: entity.RoleUser}))

	err := s.repo.Create(ctx, &entity.User{Name: "B", Email: email, PasswordHash: "h", Role: entity.RoleUser})
	s.ErrorIs(err, repository.ErrDuplicateEmail)
}

// Two concurrent inserts for one email: the constraint lets exactly one through.
func (s *UserRepositoryTestSuite) TestCreate_ConcurrentSameEmail() {
	ctx := context.Background()
	email := testEmail()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repo.Create(ctx, &entity.User{Name: "Racer", Email: email, PasswordHash: "h", Role: entity.RoleUser})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			s.ErrorIs(err, repository.ErrDuplicateEmail)
		}
	}
	s.Equal(1, okCount)
}
