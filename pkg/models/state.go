package models

import (
	"encoding/json"

	"github.com/pingtag/tag-sdk/pkg/util"
)

// Actuator is an enum for the remotely controllable outputs on the tag
type Actuator int

const (
	// Buzzer is the tag's piezo buzzer
	Buzzer Actuator = iota
	// LED is the tag's indicator led
	LED
)

func (a Actuator) String() string {
	return []string{"Buzzer", "LED"}[a]
}

// ActuatorState is the presentation facing state of a single actuator.
// Pending is true while a toggle command is outstanding and unconfirmed
type ActuatorState struct {
	On      bool
	Pending bool
}

// Snapshot is the presentation facing aggregate of one session's state
type Snapshot struct {
	SessionID      string
	SignalStrength int
	HasSignal      bool
	Proximity      string
	Buzzer         ActuatorState
	Led            ActuatorState
	Healthy        bool
}

// Data will return serialized form of struct as bytes
func (s *Snapshot) Data() ([]byte, error) {
	return util.Encode(s)
}

// String returns json string of data
func (s *Snapshot) String() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// GetSnapshotFromBytes constructs a snapshot from its serialized form
func GetSnapshotFromBytes(data []byte) (*Snapshot, error) {
	var ret Snapshot
	err := util.Decode(data, &ret)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}
