package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{errs.Newf(errs.CodeBelowMinimum, "contribution 0.1 is below minimum 0.5"), http.StatusBadRequest, errs.CodeBelowMinimum},
		{errs.New(errs.CodeNotRecipient, "nope"), http.StatusForbidden, errs.CodeNotRecipient},
		{errs.New(errs.CodeNotFound, "missing"), http.StatusNotFound, errs.CodeNotFound},
		{errs.FormatError("bad state"), http.StatusBadGateway, errs.CodeFormatError},
		{errs.New(errs.CodeVoteFailed, "You already voted!"), http.StatusBadGateway, errs.CodeVoteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			ErrResponse(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, errs.MessageOf(tt.err), resp.Message)
		})
	}
}
