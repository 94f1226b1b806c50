package util

import (
	"testing"

	"github.com/currantlabs/ble"
	"gotest.tools/assert"
)

func TestAddrEqualAddr(t *testing.T) {
	assert.Assert(t, AddrEqualAddr("aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF"))
	assert.Assert(t, !AddrEqualAddr("aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:00"))
}

func TestUuidEqualStr(t *testing.T) {
	u := ble.MustParse(TagServiceUUID)
	assert.Assert(t, UuidEqualStr(u, TagServiceUUID))
	assert.Assert(t, !UuidEqualStr(u, CommandCharUUID))
}
