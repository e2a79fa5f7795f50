package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bad invoice (code 104)", (&RequestError{Code: "104", Message: "bad invoice"}).Error())
	assert.Equal(t, "bad invoice", (&RequestError{Message: "bad invoice"}).Error())
}

func TestUnavailableErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := error(&UnavailableError{Op: "fetch carriers", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fetch carriers")

	var unavailable *UnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestIsInvalidRequestCode(t *testing.T) {
	t.Parallel()

	assert.True(t, IsInvalidRequestCode("104"))
	assert.True(t, IsInvalidRequestCode("105"))
	assert.False(t, IsInvalidRequestCode(""))
	assert.False(t, IsInvalidRequestCode("200"))
}
