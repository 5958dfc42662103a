package stofware_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

func TestRequestError(t *testing.T) {
	t.Parallel()

	err := &stofware.RequestError{StatusCode: 404, Body: "not found"}
	assert.Equal(t, "404: not found", err.Error())

	wrapped := fmt.Errorf("getting user: %w", err)

	reqErr := &stofware.RequestError{}
	require.True(t, errors.As(wrapped, &reqErr))
	assert.Equal(t, 404, reqErr.StatusCode)
	assert.Equal(t, "not found", reqErr.Body)
}

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		notFound  bool
		unauth    bool
		forbidden bool
	}{
		{
			name:     "not found",
			err:      &stofware.RequestError{StatusCode: 404, Body: "gone"},
			notFound: true,
		},
		{
			name:   "unauthorized",
			err:    &stofware.RequestError{StatusCode: 401, Body: "no token"},
			unauth: true,
		},
		{
			name:      "forbidden",
			err:       &stofware.RequestError{StatusCode: 403, Body: "nope"},
			forbidden: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("boom"),
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.notFound, stofware.IsNotFound(testCase.err))
			assert.Equal(t, testCase.unauth, stofware.IsUnauthorized(testCase.err))
			assert.Equal(t, testCase.forbidden, stofware.IsForbidden(testCase.err))
		})
	}
}

func TestDecodeError_DistinctFromRequestError(t *testing.T) {
	t.Parallel()

	decodeErr := &stofware.DecodeError{Err: errors.New("unexpected end of JSON input")}

	reqErr := &stofware.RequestError{}
	assert.False(t, errors.As(decodeErr, &reqErr))
	assert.Contains(t, decodeErr.Error(), "not valid JSON")
	require.Error(t, decodeErr.Unwrap())
}

func TestInputError(t *testing.T) {
	t.Parallel()

	err := &stofware.InputError{Name: "data", Err: stofware.ErrInputNotObject}

	assert.True(t, stofware.IsInputError(err))
	assert.ErrorIs(t, err, stofware.ErrInputNotObject)
	assert.Contains(t, err.Error(), "data")
	assert.False(t, stofware.IsInputError(errors.New("boom")))
}
