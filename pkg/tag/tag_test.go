package tag

import (
	"testing"

	"github.com/currantlabs/ble"
	"golang.org/x/net/context"
	"gotest.tools/assert"

	"github.com/pingtag/tag-sdk/pkg/models"
	"github.com/pingtag/tag-sdk/pkg/protocol"
	"github.com/pingtag/tag-sdk/pkg/util"
)

type fakeServerMethods struct {
	services   []*ble.Service
	advertised string
	advUUIDs   []ble.UUID
}

func (sm *fakeServerMethods) SetDefaultDevice() error { return nil }

func (sm *fakeServerMethods) AddService(s *ble.Service) error {
	sm.services = append(sm.services, s)
	return nil
}

func (sm *fakeServerMethods) AdvertiseNameAndServices(ctx context.Context, name string, uuids ...ble.UUID) error {
	sm.advertised = name
	sm.advUUIDs = uuids
	return nil
}

func TestCommandTogglesAndNotifies(t *testing.T) {
	e := newEmulator("TestTag", &fakeServerMethods{})
	_, ch := e.subscribe()
	payload, err := protocol.EncodeCommand(models.Buzzer)
	assert.NilError(t, err)
	e.HandleCommand(payload)
	assert.Assert(t, e.State(models.Buzzer))
	a, on, ok := protocol.DecodeNotification(<-ch)
	assert.Assert(t, ok)
	assert.Equal(t, a, models.Buzzer)
	assert.Assert(t, on)
}

func TestCommandToggleRoundTrip(t *testing.T) {
	e := newEmulator("TestTag", &fakeServerMethods{})
	payload, err := protocol.EncodeCommand(models.LED)
	assert.NilError(t, err)
	e.HandleCommand(payload)
	assert.Assert(t, e.State(models.LED))
	e.HandleCommand(payload)
	assert.Assert(t, !e.State(models.LED))
}

func TestUnknownCommandIgnored(t *testing.T) {
	e := newEmulator("TestTag", &fakeServerMethods{})
	_, ch := e.subscribe()
	e.HandleCommand([]byte("garbage"))
	assert.Assert(t, !e.State(models.Buzzer))
	assert.Assert(t, !e.State(models.LED))
	select {
	case <-ch:
		t.Fatal("unexpected notification for unknown command")
	default:
	}
}

func TestUnsubscribedChannelNotNotified(t *testing.T) {
	e := newEmulator("TestTag", &fakeServerMethods{})
	id, ch := e.subscribe()
	e.unsubscribe(id)
	payload, err := protocol.EncodeCommand(models.Buzzer)
	assert.NilError(t, err)
	e.HandleCommand(payload)
	select {
	case <-ch:
		t.Fatal("unexpected notification after unsubscribe")
	default:
	}
}

func TestRunRegistersTagService(t *testing.T) {
	methods := &fakeServerMethods{}
	e := newEmulator("TestTag", methods)
	assert.NilError(t, e.Run(context.Background()))
	assert.Equal(t, methods.advertised, "TestTag")
	assert.Equal(t, len(methods.services), 1)
	assert.Assert(t, util.UuidEqualStr(methods.services[0].UUID, util.TagServiceUUID))
	assert.Equal(t, len(methods.services[0].Characteristics), 2)
	assert.Equal(t, len(methods.advUUIDs), 1)
}
