package tag

import (
	"sync"

	"github.com/currantlabs/ble"
	"github.com/currantlabs/ble/linux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/pingtag/tag-sdk/pkg/models"
	"github.com/pingtag/tag-sdk/pkg/protocol"
	"github.com/pingtag/tag-sdk/pkg/util"
)

type serverMethods interface {
	SetDefaultDevice() error
	AddService(*ble.Service) error
	AdvertiseNameAndServices(context.Context, string, ...ble.UUID) error
}

type realServerMethods struct{}

func (sm *realServerMethods) SetDefaultDevice() error {
	device, err := linux.NewDevice()
	if err != nil {
		return errors.Wrap(err, "NewDevice issue: ")
	}
	ble.SetDefaultDevice(device)
	return nil
}

func (sm *realServerMethods) AddService(s *ble.Service) error {
	return util.CatchErrs(func() error {
		return ble.AddService(s)
	})
}

func (sm *realServerMethods) AdvertiseNameAndServices(ctx context.Context, name string, uuids ...ble.UUID) error {
	return util.CatchErrs(func() error {
		return ble.AdvertiseNameAndServices(ctx, name, uuids...)
	})
}

// Emulator is a software stand-in for the tag firmware: it accepts toggle
// commands on the command characteristic and pushes the confirming state
// notification, speaking the exact wire protocol of the real tag
type Emulator struct {
	name    string
	states  map[models.Actuator]bool
	subs    map[int]chan []byte
	nextSub int
	mutex   *sync.Mutex
	methods serverMethods
}

// NewEmulator returns an emulator advertising under the given local name
func NewEmulator(name string) *Emulator {
	return newEmulator(name, &realServerMethods{})
}

func newEmulator(name string, methods serverMethods) *Emulator {
	return &Emulator{
		name:   name,
		states: map[models.Actuator]bool{models.Buzzer: false, models.LED: false},
		subs:   map[int]chan []byte{}, mutex: &sync.Mutex{},
		methods: methods,
	}
}

// Run registers the tag service and advertises until ctx is done
func (t *Emulator) Run(ctx context.Context) error {
	if err := t.methods.SetDefaultDevice(); err != nil {
		return errors.Wrap(err, "SetDefaultDevice issue: ")
	}
	if err := t.methods.AddService(t.service()); err != nil {
		return errors.Wrap(err, "AddService issue: ")
	}
	log.WithField("name", t.name).Info("tag emulator advertising")
	return t.methods.AdvertiseNameAndServices(ctx, t.name, ble.MustParse(util.TagServiceUUID))
}

func (t *Emulator) service() *ble.Service {
	service := ble.NewService(ble.MustParse(util.TagServiceUUID))
	service.AddCharacteristic(t.commandChar())
	service.AddCharacteristic(t.stateChar())
	return service
}

func (t *Emulator) commandChar() *ble.Characteristic {
	c := ble.NewCharacteristic(ble.MustParse(util.CommandCharUUID))
	c.HandleWrite(ble.WriteHandlerFunc(func(req ble.Request, rsp ble.ResponseWriter) {
		t.HandleCommand(req.Data())
	}))
	return c
}

func (t *Emulator) stateChar() *ble.Characteristic {
	c := ble.NewCharacteristic(ble.MustParse(util.StateCharUUID))
	c.HandleNotify(ble.NotifyHandlerFunc(func(req ble.Request, n ble.Notifier) {
		id, ch := t.subscribe()
		defer t.unsubscribe(id)
		for {
			select {
			case <-n.Context().Done():
				return
			case payload := <-ch:
				if _, err := n.Write(payload); err != nil {
					log.WithError(err).Warn("state notify write issue")
					return
				}
			}
		}
	}))
	return c
}

// HandleCommand applies a raw command characteristic write. Unknown payloads
// are logged and ignored
func (t *Emulator) HandleCommand(payload []byte) {
	a, ok := protocol.DecodeCommand(payload)
	if !ok {
		log.WithField("payload", string(payload)).Warn("ignoring unknown command payload")
		return
	}
	on := t.toggle(a)
	log.WithFields(log.Fields{"actuator": a.String(), "on": on}).Info("actuator toggled")
	t.notify(protocol.EncodeNotification(a, on))
}

// State returns the current confirmed state of one actuator
func (t *Emulator) State(a models.Actuator) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.states[a]
}

func (t *Emulator) toggle(a models.Actuator) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.states[a] = !t.states[a]
	return t.states[a]
}

func (t *Emulator) subscribe() (int, chan []byte) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	id := t.nextSub
	t.nextSub++
	ch := make(chan []byte, 4)
	t.subs[id] = ch
	return id, ch
}

func (t *Emulator) unsubscribe(id int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	delete(t.subs, id)
}

func (t *Emulator) notify(payload []byte) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for id, ch := range t.subs {
		select {
		case ch <- payload:
		default:
			log.WithField("subscriber", id).Warn("dropping notification for slow subscriber")
		}
	}
}
