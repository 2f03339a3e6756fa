package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorage("create user", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "create user: connection refused", err.Error())
	assert.Equal(t, ErrStorage, Kind(fmt.Errorf("wrapped: %w", err)))
	assert.Nil(t, Kind(cause))
}

func TestInvalidCredentials_AreIdentical(t *testing.T) {
	a := NewInvalidCredentials()
	b := NewInvalidCredentials()

	assert.Equal(t, a.Error(), b.Error())
	assert.Equal(t, a.Kind, b.Kind)
	assert.Equal(t, "Invalid email or password", PublicMessage(a))
}

func TestPublicMessage_HidesSystemFaults(t *testing.T) {
	err := NewHashing(errors.New("out of memory while hashing secret123"))

	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("boom")))
	assert.Equal(t, "User with this email already exists", PublicMessage(NewDuplicateEmail()))
}

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(ErrValidation, "bad", nil), http.StatusBadRequest},
		{NewDuplicateEmail(), http.StatusConflict},
		{NewInvalidCredentials(), http.StatusUnauthorized},
		{NewUnauthorized("missing token", nil), http.StatusUnauthorized},
		{NewNotFound("user"), http.StatusNotFound},
		{NewHashing(errors.New("x")), http.StatusInternalServerError},
		{NewVerification(errors.New("x")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToHTTPStatus(tc.err), tc.err.Error())
	}
}
