package util

import (
	"context"
	"strings"
	"time"

	"github.com/currantlabs/ble"
)

const (
	inf = 1000000
)

// AddrEqualAddr compares two ble addresses (or uuid strings) ignoring case
func AddrEqualAddr(a string, b string) bool {
	return strings.ToUpper(a) == strings.ToUpper(b)
}

// UuidEqualStr compares a parsed ble uuid against its string constant form
func UuidEqualStr(u ble.UUID, s string) bool {
	compare := strings.Replace(s, "-", "", -1)
	return AddrEqualAddr(compare, u.String())
}

// MakeINFContext returns a context which (practically) never expires
func MakeINFContext() context.Context {
	return ble.WithSigHandler(context.WithTimeout(context.Background(), inf*time.Hour))
}
