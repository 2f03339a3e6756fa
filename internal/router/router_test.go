package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/acquisitions/config"
	appuser "github.com/oksasatya/acquisitions/internal/application"
	"github.com/oksasatya/acquisitions/internal/container"
	"github.com/oksasatya/acquisitions/internal/testutil"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

func testContainer(debug bool) *container.Container {
	logger, _ := logrustest.NewNullLogger()
	cfg := &config.Config{
		AppName:             "acquisitions",
		Env:                 "development",
		JWTIssuer:           "acquisitions-api",
		TokenTTL:            time.Hour,
		BcryptCost:          bcrypt.MinCost,
		AuthRateLimitMax:    5,
		AuthRateLimitWindow: 2 * time.Second,
		BotShieldEnabled:    true,
		ESUsersIndex:        "users",
		MailSendEnabled:     true,
		DebugMetricsEnabled: debug,
	}
	return container.New(cfg, logger)
}

func routes(e *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, r := range e.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestInitModules_RegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := testContainer(true)
	svc := appuser.NewService(testutil.NewMemUserRepo(), helpers.NewBcryptHasher(bcrypt.MinCost), c.JWT, nil, c.Logger)

	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg, c, svc)
	reg.RegisterAll()

	got := routes(e)
	for _, want := range []string{
		"GET /",
		"GET /health",
		"POST /api/auth/sign-up",
		"POST /api/auth/sign-in",
		"POST /api/auth/sign-out",
		"GET /api/auth/me",
		"GET /api/users/search",
		"GET /api/debug/vars",
	} {
		assert.True(t, got[want], want)
	}

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Hello from Acquisitions!", w.Body.String())
}

func TestInitModules_DebugDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := testContainer(false)
	svc := appuser.NewService(testutil.NewMemUserRepo(), helpers.NewBcryptHasher(bcrypt.MinCost), c.JWT, nil, c.Logger)

	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg, c, svc)
	reg.RegisterAll()

	assert.False(t, routes(e)["GET /api/debug/vars"])
}

func TestSignUpIsShieldedFromAutomatedClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := testContainer(false)
	svc := appuser.NewService(testutil.NewMemUserRepo(), helpers.NewBcryptHasher(bcrypt.MinCost), c.JWT, nil, c.Logger)

	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg, c, svc)
	reg.RegisterAll()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-up", nil)
	req.Header.Set("User-Agent", "python-requests/2.31.0")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBuildUserService_OptionalComponents(t *testing.T) {
	c := testContainer(false)
	svc := BuildUserService(c)

	require.NotNil(t, svc.Repo)
	require.NotNil(t, svc.Hasher)
	assert.Nil(t, svc.Index)
	assert.Nil(t, svc.Mail)
	assert.Nil(t, svc.Redis)
	assert.Equal(t, "acquisitions", svc.Welcome.AppName)
}
