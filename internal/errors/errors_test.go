package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := SourceUnavailable("sheets", fmt.Errorf("quota exceeded"))
	wrapped := Wrap(base, "lookup failed")

	assert.Equal(t, CodeSourceUnavailable, GetCode(wrapped))
	assert.Equal(t, "lookup failed: table source sheets unavailable: quota exceeded", wrapped.Error())
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("boom"), "step %d", 2)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 2: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestGetCodeThroughStdlibWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", ConfigInvalid("GOOGLE_SHEET_ID is required"))

	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.Equal(t, "UNKNOWN", GetCode(nil))
}

func TestSourceErrorsKeepCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	dbErr := Wrapf(DatabaseError("failed to query employees", cause), "fetch %s", "postgres:employees")
	assert.Equal(t, CodeDatabaseError, GetCode(dbErr))
	assert.ErrorIs(t, dbErr, cause)
	assert.Equal(t, "fetch postgres:employees: failed to query employees: connection refused", dbErr.Error())

	apiErr := ExternalServiceError("sheets", cause)
	assert.Equal(t, CodeExternalService, GetCode(apiErr))
	assert.Equal(t, "sheets service error: connection refused", apiErr.Error())

	// the outermost code wins once a source error is reported upstream
	unavailable := SourceUnavailable("sheets:abc!Sheet1", apiErr)
	assert.Equal(t, CodeSourceUnavailable, GetCode(unavailable))
	assert.ErrorIs(t, unavailable, cause)
}
