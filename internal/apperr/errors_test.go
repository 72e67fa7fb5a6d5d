package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tazhibayda/inventory-service/internal/apperr"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"validation", apperr.Validation("name %s", "required"), apperr.KindValidation},
		{"wrapped sentinel", fmt.Errorf("refresh: %w", apperr.ErrSessionNotFound), apperr.KindAuth},
		{"not found", apperr.NotFound("Product not found"), apperr.KindNotFound},
		{"upstream", apperr.Upstream(errors.New("s3 down"), "upload failed"), apperr.KindUpstream},
		{"plain", errors.New("boom"), apperr.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperr.KindOf(tc.err))
		})
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := apperr.Upstream(cause, "Image upload failed")

	assert.Equal(t, "Image upload failed", err.Error())
	assert.ErrorIs(t, err, cause)

	var ae *apperr.Error
	assert.True(t, errors.As(fmt.Errorf("ctx: %w", err), &ae))
	assert.Equal(t, apperr.KindUpstream, ae.Kind)
}

func TestSentinels_Identity(t *testing.T) {
	err := fmt.Errorf("login: %w", apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, apperr.ErrInvalidToken)
}
