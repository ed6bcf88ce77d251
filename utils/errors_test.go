package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAppErrorChain(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("while saving: %w", ConflictError("Email already registered", cause))

	appErr := GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Equal(t, "Email already registered: boom", appErr.Error())
	}
	assert.True(t, IsAppError(err))
	assert.True(t, HasCode(err, http.StatusConflict))
	assert.ErrorIs(t, err, cause)
	assert.False(t, HasCode(cause, http.StatusConflict))
}

func TestWithDetails(t *testing.T) {
	err := BadRequestError("Validation failed", nil).WithDetails([]string{"email"})
	assert.Equal(t, []string{"email"}, err.Details)
	assert.Equal(t, "Validation failed", err.Error())
}

func TestIsRecordNotFound(t *testing.T) {
	assert.False(t, IsRecordNotFound(errors.New("other")))
	assert.True(t, IsRecordNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}
