package internal

import (
	"sync"

	"github.com/currantlabs/ble"

	"github.com/pingtag/tag-sdk/pkg/models"
	"github.com/pingtag/tag-sdk/pkg/util"
)

// DummyAdv is a fake advertisement for connect/scan tests
type DummyAdv struct {
	AdvAddr    ble.Addr
	Rssi       int
	NonService bool
}

// DummyAddr is a fake ble address
type DummyAddr struct {
	Addr string
}

func (addr DummyAddr) String() string { return addr.Addr }

func (a DummyAdv) LocalName() string              { return "" }
func (a DummyAdv) ManufacturerData() []byte       { return nil }
func (a DummyAdv) ServiceData() []ble.ServiceData { return nil }
func (a DummyAdv) Services() []ble.UUID {
	if a.NonService {
		return nil
	}
	return GetTestServiceUUIDs()
}
func (a DummyAdv) OverflowService() []ble.UUID  { return nil }
func (a DummyAdv) TxPowerLevel() int            { return 0 }
func (a DummyAdv) Connectable() bool            { return true }
func (a DummyAdv) SolicitedService() []ble.UUID { return nil }
func (a DummyAdv) RSSI() int                    { return a.Rssi }
func (a DummyAdv) Address() ble.Addr            { return a.AdvAddr }

// GetTestServiceUUIDs returns the tag service uuid list as advertised by a real tag
func GetTestServiceUUIDs() []ble.UUID {
	u, _ := ble.Parse(util.TagServiceUUID)
	return []ble.UUID{u}
}

// GetTestServices returns a profile's services matching the tag firmware layout
func GetTestServices() []*ble.Service {
	u, _ := ble.Parse(util.TagServiceUUID)
	chars := []*ble.Characteristic{}
	for _, uuid := range []string{util.CommandCharUUID, util.StateCharUUID} {
		c := &ble.Characteristic{}
		uid, _ := ble.Parse(uuid)
		c.UUID = uid
		chars = append(chars, c)
	}
	svc := &ble.Service{}
	svc.UUID = u
	svc.Characteristics = chars
	return []*ble.Service{svc}
}

// TestListener records session callbacks for assertions
type TestListener struct {
	ConnectedAddr    string
	ConnectedRssi    int
	Signals          []int
	ActuatorChanges  []models.ActuatorState
	ChangedActuators []models.Actuator
	LostCount        int
	Errs             []error
	Mutex            sync.Mutex
}

func (l *TestListener) OnConnected(addr string, rssi int) {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.ConnectedAddr = addr
	l.ConnectedRssi = rssi
}

func (l *TestListener) OnSignal(rssi int) {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.Signals = append(l.Signals, rssi)
}

func (l *TestListener) OnActuatorChanged(a models.Actuator, on bool) {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.ChangedActuators = append(l.ChangedActuators, a)
	l.ActuatorChanges = append(l.ActuatorChanges, models.ActuatorState{On: on})
}

func (l *TestListener) OnConnectionLost() {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.LostCount++
}

func (l *TestListener) OnInternalError(err error) {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.Errs = append(l.Errs, err)
}

// GetLostCount reads the recorded connection lost count under the listener lock
func (l *TestListener) GetLostCount() int {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	return l.LostCount
}
