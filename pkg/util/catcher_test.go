package util

import (
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func TestCatchErrsNoPanic(t *testing.T) {
	err := CatchErrs(func() error {
		return nil
	})
	assert.NilError(t, err)
}

func TestCatchErrsPassesError(t *testing.T) {
	err := CatchErrs(func() error {
		return errors.New("some issue")
	})
	assert.ErrorContains(t, err, "some issue")
}

func TestCatchErrsRecoversPanic(t *testing.T) {
	err := CatchErrs(func() error {
		panic(errors.New("ble stack blew up"))
	})
	assert.ErrorContains(t, err, "ble stack blew up")
}

func TestCatchErrsRecoversNonErrorPanic(t *testing.T) {
	err := CatchErrs(func() error {
		panic("not an error value")
	})
	assert.ErrorContains(t, err, "not an error value")
}
