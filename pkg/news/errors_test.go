package news

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrKind
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrNetwork},
		{http.StatusBadGateway, ErrNetwork},
	}

	for _, c := range cases {
		fe := classifyStatus("gnews", c.status)
		assert.Equal(t, c.kind, fe.Kind)
		assert.Equal(t, "gnews", fe.Source)
	}
}

func TestClassifyTransportDeadline(t *testing.T) {
	fe := classifyTransport("newsapi", context.DeadlineExceeded)
	assert.Equal(t, ErrTimeout, fe.Kind)

	wrapped := classifyTransport("newsapi", errors.Join(errors.New("fetch"), context.DeadlineExceeded))
	assert.Equal(t, ErrTimeout, wrapped.Kind)

	fe = classifyTransport("newsapi", errors.New("connection refused"))
	assert.Equal(t, ErrNetwork, fe.Kind)
}

func TestAsFetchErrorPassesThroughTyped(t *testing.T) {
	orig := newFetchError("currents", ErrRateLimited, errors.New("quota"))

	fe := AsFetchError("currents", orig)
	assert.Equal(t, ErrRateLimited, fe.Kind)

	fe = AsFetchError("currents", errors.New("boom"))
	assert.Equal(t, ErrNetwork, fe.Kind)
}
