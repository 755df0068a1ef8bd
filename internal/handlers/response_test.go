package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
)

func serviceErrorStatus(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondServiceError(c, err)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w.Code, envelope
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: bad rating", apperr.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{fmt.Errorf("%w: no outfit today", apperr.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: checklist exists", apperr.ErrDuplicate), http.StatusConflict, "duplicate"},
		{fmt.Errorf("%w: weather api", apperr.ErrUpstream), http.StatusBadGateway, "upstream_failed"},
		{errors.New("something else"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		status, envelope := serviceErrorStatus(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, envelope.Error.Code, tc.err.Error())
		assert.NotEmpty(t, envelope.Error.Message)
	}
}

func TestRespondErrorNilError(t *testing.T) {
	status, envelope := serviceErrorStatus(t, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "unknown error", envelope.Error.Message)
}
