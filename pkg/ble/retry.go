package ble

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/pingtag/tag-sdk/pkg/util"
)

func retry(fn func() error) error {
	err := errors.New("not error")
	attempts := 0
	for err != nil && attempts < maxRetryAttempts {
		if attempts > 0 {
			fmt.Printf("Attempt: %d Error: %s\n Retrying...\n", attempts, err.Error())
		}
		attempts += 1
		err = fn()
	}
	if err != nil {
		return errors.Wrap(err, "Exceeded attempts issue: ")
	}
	return nil
}

func retryAndCatch(fn func() error) error {
	return retry(func() error { return util.CatchErrs(fn) })
}
