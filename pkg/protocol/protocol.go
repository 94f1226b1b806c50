package protocol

import (
	"encoding/base64"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"

	"github.com/pingtag/tag-sdk/pkg/models"
)

// Command and notification tokens are fixed by the tag firmware and must match bit-exact.
const (
	// BuzzToggleCommand toggles the tag's buzzer
	BuzzToggleCommand = "BUZZ_TOGGLE"
	// LedToggleCommand toggles the tag's led
	LedToggleCommand = "LED_TOGGLE"
	// BuzzerOnNotification confirms the buzzer is now on
	BuzzerOnNotification = "BUZZER_ON"
	// BuzzerOffNotification confirms the buzzer is now off
	BuzzerOffNotification = "BUZZER_OFF"
	// LedOnNotification confirms the led is now on
	LedOnNotification = "LED_ON"
	// LedOffNotification confirms the led is now off
	LedOffNotification = "LED_OFF"
)

var (
	commandTokens      = mapset.NewSet()
	notificationTokens = mapset.NewSet()
)

func init() {
	commandTokens.Add(BuzzToggleCommand)
	commandTokens.Add(LedToggleCommand)
	notificationTokens.Add(BuzzerOnNotification)
	notificationTokens.Add(BuzzerOffNotification)
	notificationTokens.Add(LedOnNotification)
	notificationTokens.Add(LedOffNotification)
}

func encodeToken(token string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(token)))
}

func decodeToken(payload []byte) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// EncodeCommand converts a toggle intent into the wire payload for the command characteristic
func EncodeCommand(a models.Actuator) ([]byte, error) {
	switch a {
	case models.Buzzer:
		return encodeToken(BuzzToggleCommand), nil
	case models.LED:
		return encodeToken(LedToggleCommand), nil
	}
	return nil, errors.Errorf("no command token for actuator %d", a)
}

// DecodeCommand parses a command characteristic write back into the actuator it
// toggles. Unknown payloads yield ok == false and are not an error
func DecodeCommand(payload []byte) (models.Actuator, bool) {
	token, ok := decodeToken(payload)
	if !ok || !commandTokens.Contains(token) {
		return 0, false
	}
	if token == BuzzToggleCommand {
		return models.Buzzer, true
	}
	return models.LED, true
}

// EncodeNotification converts a confirmed actuator state into the wire payload
// pushed on the state characteristic
func EncodeNotification(a models.Actuator, on bool) []byte {
	switch {
	case a == models.Buzzer && on:
		return encodeToken(BuzzerOnNotification)
	case a == models.Buzzer:
		return encodeToken(BuzzerOffNotification)
	case on:
		return encodeToken(LedOnNotification)
	default:
		return encodeToken(LedOffNotification)
	}
}

// DecodeNotification parses a state notification payload into the confirmed
// actuator state. Unknown payloads yield ok == false and are not an error
func DecodeNotification(payload []byte) (a models.Actuator, on bool, ok bool) {
	token, valid := decodeToken(payload)
	if !valid || !notificationTokens.Contains(token) {
		return 0, false, false
	}
	switch token {
	case BuzzerOnNotification:
		return models.Buzzer, true, true
	case BuzzerOffNotification:
		return models.Buzzer, false, true
	case LedOnNotification:
		return models.LED, true, true
	default:
		return models.LED, false, true
	}
}
