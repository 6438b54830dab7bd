package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapsRaw(t *testing.T) {
	raw := stderrors.New("boom")
	err := ErrInternal(raw)

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
	assert.True(t, stderrors.Is(err, raw))
	assert.Equal(t, "[INTERNAL] Internal server error: boom", err.Error())
}

func TestWithDetailDoesNotShareMap(t *testing.T) {
	base := ErrInvalidArgument("bad input")
	a := base.WithDetail("field", "period_days")

	assert.Nil(t, base.Details)
	assert.Equal(t, "period_days", a.Details["field"])
	assert.Equal(t, "[INVALID_ARGUMENT] bad input", base.Error())
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "ANALYSIS_ALREADY_RUNNING", ErrorCode_ANALYSIS_ALREADY_RUNNING.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(42).String())
}
