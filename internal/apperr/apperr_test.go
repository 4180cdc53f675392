package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("amount must be > 0"), http.StatusBadRequest},
		{InsufficientFunds(), http.StatusBadRequest},
		{AlreadyProcessed("transfer"), http.StatusBadRequest},
		{NotFound("account"), http.StatusNotFound},
		{New(KindUnauthorized, "missing token"), http.StatusUnauthorized},
		{New(KindForbidden, "admin only"), http.StatusForbidden},
		{New(KindConflict, "email taken"), http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Status(c.err), c.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := InsufficientFunds()
	wrapped := fmt.Errorf("create transfer: %w", inner)
	assert.Equal(t, KindInsufficientFunds, KindOf(wrapped))
	assert.Equal(t, http.StatusBadRequest, Status(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row scan")
	err := Wrap(KindInternal, "load account", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "load account")
	assert.Contains(t, err.Error(), "row scan")
}
