package errdef_test

import (
	"errors"
	"testing"

	"github.com/dnng1/gatherly/internal/errdef"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("some error")))
}

func TestIsForbidden(t *testing.T) {
	assert.False(t, errdef.IsForbidden(errors.New("some error")))
	assert.True(t, errdef.IsForbidden(errdef.NewForbidden("some error")))
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	err := errdef.NewNotFound("group %q doesn't exist", "Cooking Ninjas")
	assert.True(t, errdef.IsNotFound(err))
	assert.False(t, errdef.IsBadRequest(err))
}
