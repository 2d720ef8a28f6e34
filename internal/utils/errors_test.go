package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := E(CodeNotFound, "CandidateService.Resume", "no resume found", ErrNotFound)
	assert.Equal(t, "CandidateService.Resume: no resume found: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := E(CodeInvalidArgument, "Policy.Validate", "file too large", nil)
	outer := fmt.Errorf("storing resume: %w", inner)

	assert.True(t, IsCode(outer, CodeInvalidArgument))
	assert.False(t, IsCode(outer, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeInternal))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{E(CodeInvalidArgument, "", "", nil), http.StatusBadRequest},
		{E(CodeUnauthorized, "", "", nil), http.StatusUnauthorized},
		{E(CodeNotFound, "", "", nil), http.StatusNotFound},
		{E(CodeUnavailable, "", "", nil), http.StatusServiceUnavailable},
		{E(CodeInternal, "", "", nil), http.StatusInternalServerError},
		{ErrNotFound, http.StatusNotFound},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}
