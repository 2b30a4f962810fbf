package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := InvalidAmount("amount %q is not a number", "abc")
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.False(t, errors.Is(err, ErrBelowMinimum))

	wrapped := fmt.Errorf("contribute: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidAmount))
	assert.Equal(t, CodeInvalidAmount, CodeOf(wrapped))
}

func TestWrap_KeepsCauseMessageVerbatim(t *testing.T) {
	cause := errors.New("execution reverted: Only contributors can vote")
	err := Wrap(CodeVoteFailed, cause)

	assert.Equal(t, "execution reverted: Only contributors can vote", MessageOf(err))
	assert.True(t, errors.Is(err, ErrVoteFailed))
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(CodeVoteFailed, nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ErrInvalidAmount, http.StatusBadRequest},
		{ErrBelowMinimum, http.StatusBadRequest},
		{ErrInvalidArgument, http.StatusBadRequest},
		{ErrNotRecipient, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrStateInconsistency, http.StatusConflict},
		{ErrFormat, http.StatusBadGateway},
		{ErrVoteFailed, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, IsValidation(ErrBelowMinimum))
	assert.False(t, IsValidation(ErrContributionFailed))
	assert.True(t, IsExternal(ErrWithdrawFailed))
	assert.False(t, IsExternal(ErrFormat))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
