package util

import (
	"errors"
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestTimeout(t *testing.T) {
	x := time.Millisecond * 100
	err := Timeout(func() error {
		time.Sleep(x * 10)
		return errors.New("should not get called")
	}, x)
	assert.ErrorContains(t, err, "Timeout")
}

func TestTimeoutNotExceeded(t *testing.T) {
	err := Timeout(func() error {
		return nil
	}, time.Second)
	assert.NilError(t, err)
}
