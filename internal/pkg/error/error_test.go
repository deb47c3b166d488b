package error

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("mongo unreachable")
	err := ServiceUnavailable(cause.Error()).Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.HttpCode())
	assert.Equal(t, "service-unavailable", err.Error())
	assert.Equal(t, "mongo unreachable", err.ErrorDesc())
}

func TestFrom(t *testing.T) {
	notFound := NotFound("unknown userid: ghost")
	assert.Same(t, notFound, From(notFound))

	plain := errors.New("boom")
	got := From(plain)
	assert.Equal(t, http.StatusInternalServerError, got.HttpCode())
	assert.ErrorIs(t, got, plain)
}

func TestMapHttpStatusToError(t *testing.T) {
	assert.Equal(t, NOT_FOUND, MapHttpStatusToError(http.StatusNotFound, "").ErrorCode())
	assert.Equal(t, SERVICE_UNAVAILABLE, MapHttpStatusToError(http.StatusServiceUnavailable, "").ErrorCode())
	assert.Equal(t, INTERNAL_ERROR, MapHttpStatusToError(http.StatusMethodNotAllowed, "").ErrorCode())
}
