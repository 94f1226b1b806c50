package protocol

import (
	"encoding/base64"
	"testing"

	"gotest.tools/assert"

	"github.com/pingtag/tag-sdk/pkg/models"
)

func TestEncodeCommandIsBitExact(t *testing.T) {
	payload, err := EncodeCommand(models.Buzzer)
	assert.NilError(t, err)
	assert.Equal(t, string(payload), base64.StdEncoding.EncodeToString([]byte("BUZZ_TOGGLE")))
	payload, err = EncodeCommand(models.LED)
	assert.NilError(t, err)
	assert.Equal(t, string(payload), base64.StdEncoding.EncodeToString([]byte("LED_TOGGLE")))
}

func TestDecodeCommand(t *testing.T) {
	payload, err := EncodeCommand(models.LED)
	assert.NilError(t, err)
	a, ok := DecodeCommand(payload)
	assert.Assert(t, ok)
	assert.Equal(t, a, models.LED)
}

func TestDecodeCommandIgnoresUnknown(t *testing.T) {
	_, ok := DecodeCommand(encodeToken("VIBRATE_TOGGLE"))
	assert.Assert(t, !ok)
	_, ok = DecodeCommand([]byte("not base64 !!!"))
	assert.Assert(t, !ok)
}

func TestNotificationRoundTrip(t *testing.T) {
	for _, a := range []models.Actuator{models.Buzzer, models.LED} {
		for _, on := range []bool{true, false} {
			gotA, gotOn, ok := DecodeNotification(EncodeNotification(a, on))
			assert.Assert(t, ok)
			assert.Equal(t, gotA, a)
			assert.Equal(t, gotOn, on)
		}
	}
}

func TestDecodeNotificationIgnoresUnknown(t *testing.T) {
	_, _, ok := DecodeNotification(encodeToken("BATTERY_LOW"))
	assert.Assert(t, !ok)
	_, _, ok = DecodeNotification([]byte{0xff, 0x00, 0x12})
	assert.Assert(t, !ok)
	_, _, ok = DecodeNotification(nil)
	assert.Assert(t, !ok)
}

func TestNotificationTokensAreBitExact(t *testing.T) {
	expected := map[string][]byte{
		"BUZZER_ON":  EncodeNotification(models.Buzzer, true),
		"BUZZER_OFF": EncodeNotification(models.Buzzer, false),
		"LED_ON":     EncodeNotification(models.LED, true),
		"LED_OFF":    EncodeNotification(models.LED, false),
	}
	for token, payload := range expected {
		raw, err := base64.StdEncoding.DecodeString(string(payload))
		assert.NilError(t, err)
		assert.Equal(t, string(raw), token)
	}
}
