package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pingtag/tag-sdk/pkg/ble"
	"github.com/pingtag/tag-sdk/pkg/models"
	"github.com/pingtag/tag-sdk/pkg/protocol"
	"github.com/pingtag/tag-sdk/pkg/util"
)

const (
	// PollInterval is the fixed period between signal strength reads on a live session
	PollInterval = time.Millisecond * 1000
	// PendingFallback bounds how long an actuator stays pending without a confirming notification
	PendingFallback = time.Millisecond * 3000
	// SignalFloor is the weakest reading (dBm) still treated as a live connection
	SignalFloor = -90
)

var (
	// ErrNotConnected is returned when an operation needs a live tag connection and there is none
	ErrNotConnected = errors.New("no active tag connection")
	// ErrTogglePending is returned when a toggle is requested while one is already outstanding for that actuator
	ErrTogglePending = errors.New("toggle already pending for this actuator")
)

// TagSession owns the lifecycle of one connection to a tag: signal polling,
// command dispatch, and notification driven state reconciliation. A session is
// single use; once it reports the connection lost it stays Disconnected and a
// new session must be constructed to reconnect
type TagSession struct {
	id       string
	conn     ble.Connection
	status   SessionStatus
	signal   *models.SignalLog
	buzzer   *actuator
	led      *actuator
	listener models.TagSessionListener
	running  bool
	lostOnce *sync.Once
	mutex    *sync.Mutex
}

// NewTagSession wires a session over an existing transport connection
func NewTagSession(conn ble.Connection, listener models.TagSessionListener) *TagSession {
	return &TagSession{
		id:       uuid.New().String(),
		conn:     conn,
		status:   Connecting,
		signal:   models.NewSignalLog(0),
		buzzer:   newActuator(models.Buzzer),
		led:      newActuator(models.LED),
		listener: listener,
		lostOnce: &sync.Once{},
		mutex:    &sync.Mutex{},
	}
}

// DialTag creates a real transport, dials the tag at addr, and returns a
// started-ready session bound to it. The session itself is the transport's
// connection listener, so a dropped link surfaces as a lost connection
func DialTag(addr string, listener models.TagSessionListener) (*TagSession, error) {
	s := NewTagSession(nil, listener)
	conn, err := ble.NewRealConnection(s)
	if err != nil {
		return nil, err
	}
	if err := conn.Dial(addr); err != nil {
		return nil, errors.Wrap(err, "Dial issue: ")
	}
	s.attach(conn)
	return s, nil
}

func (s *TagSession) attach(conn ble.Connection) {
	s.mutex.Lock()
	s.conn = conn
	s.mutex.Unlock()
}

// ID returns the unique id of this session instance, for log correlation
func (s *TagSession) ID() string { return s.id }

// Status returns the session lifecycle state
func (s *TagSession) Status() SessionStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.status
}

// Healthy reports whether the session still trusts its connection
func (s *TagSession) Healthy() bool {
	return s.Status() == Connected
}

// SignalLog exposes the retained signal readings for presentation (meters, smoothing)
func (s *TagSession) SignalLog() *models.SignalLog { return s.signal }

// ActuatorState returns the current presentation facing state for one actuator
func (s *TagSession) ActuatorState(a models.Actuator) models.ActuatorState {
	return s.actuator(a).state()
}

// Start subscribes to the tag's state notifications and begins signal polling.
// A subscription failure is reported and tolerated: the session continues in a
// degraded mode where confirmations only arrive via the pending fallback
func (s *TagSession) Start() error {
	s.mutex.Lock()
	if s.conn == nil {
		s.mutex.Unlock()
		return ErrNotConnected
	}
	if s.status == Disconnected {
		s.mutex.Unlock()
		return ErrNotConnected
	}
	if s.running {
		s.mutex.Unlock()
		return nil
	}
	s.running = true
	s.status = Connected
	conn := s.conn
	s.mutex.Unlock()
	if err := conn.Subscribe(util.StateCharUUID, s.HandleNotification); err != nil {
		s.listener.OnInternalError(errors.Wrap(err, "state subscribe issue: "))
	}
	go s.pollLoop()
	return nil
}

func (s *TagSession) pollLoop() {
	for {
		time.Sleep(PollInterval)
		if !s.pollOnce() {
			return
		}
	}
}

// pollOnce issues one signal read and folds the result into session state.
// It returns false once polling must stop
func (s *TagSession) pollOnce() bool {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return false
	}
	conn := s.conn
	s.mutex.Unlock()
	rssi, err := conn.ReadRSSI()
	s.mutex.Lock()
	if !s.running {
		// stale read finishing after Stop must not touch session state
		s.mutex.Unlock()
		return false
	}
	if err != nil || rssi < SignalFloor {
		s.mutex.Unlock()
		if err != nil {
			s.listener.OnInternalError(errors.Wrap(err, "signal poll issue: "))
		}
		s.connectionLost()
		return false
	}
	s.signal.Add(rssi)
	s.mutex.Unlock()
	s.listener.OnSignal(rssi)
	return true
}

// Toggle optimistically flips the given actuator and writes the matching toggle
// command to the tag. Confirmed state arrives later via notification; if the
// write fails the optimistic flip is reverted and the error is returned
func (s *TagSession) Toggle(a models.Actuator) error {
	s.mutex.Lock()
	if s.conn == nil || s.status != Connected || !s.running {
		s.mutex.Unlock()
		return ErrNotConnected
	}
	conn := s.conn
	s.mutex.Unlock()
	payload, err := protocol.EncodeCommand(a)
	if err != nil {
		return err
	}
	act := s.actuator(a)
	if err := act.beginToggle(PendingFallback); err != nil {
		return err
	}
	if err := conn.WriteValue(util.CommandCharUUID, payload); err != nil {
		act.revert()
		return errors.Wrap(err, "command write issue: ")
	}
	return nil
}

// HandleNotification applies a confirmed state change pushed by the tag. It is
// authoritative: it wins over the optimistic flip and cancels the pending
// fallback. Payloads that do not match a known token are ignored
func (s *TagSession) HandleNotification(payload []byte) {
	a, on, ok := protocol.DecodeNotification(payload)
	if !ok {
		return
	}
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return
	}
	s.mutex.Unlock()
	s.actuator(a).confirm(on)
	s.listener.OnActuatorChanged(a, on)
}

// HandleRadioOff reports that the platform radio was disabled; the session is
// immediately lost, independent of the polling outcome
func (s *TagSession) HandleRadioOff() {
	s.connectionLost()
}

// OnConnected implements ble.ConnectionListener
func (s *TagSession) OnConnected(addr string, rssi int) {
	if rssi != 0 {
		s.signal.Add(rssi)
	}
	s.listener.OnConnected(addr, rssi)
}

// OnDisconnected implements ble.ConnectionListener; a dropped link is a lost connection
func (s *TagSession) OnDisconnected() {
	s.connectionLost()
}

// Stop cancels signal polling and the state subscription. Idempotent and
// synchronous: after it returns no timer or subscription of this session is live
func (s *TagSession) Stop() {
	s.mutex.Lock()
	wasRunning := s.running
	s.running = false
	conn := s.conn
	s.mutex.Unlock()
	s.buzzer.reset()
	s.led.reset()
	if !wasRunning || conn == nil {
		return
	}
	if err := conn.Unsubscribe(util.StateCharUUID); err != nil {
		s.listener.OnInternalError(errors.Wrap(err, "state unsubscribe issue: "))
	}
}

// connectionLost fires the lost callback exactly once per session instance
func (s *TagSession) connectionLost() {
	s.lostOnce.Do(func() {
		s.mutex.Lock()
		s.status = Disconnected
		s.mutex.Unlock()
		s.Stop()
		s.listener.OnConnectionLost()
	})
}

func (s *TagSession) actuator(a models.Actuator) *actuator {
	if a == models.Buzzer {
		return s.buzzer
	}
	return s.led
}

// Snapshot returns the presentation facing view of the whole session
func (s *TagSession) Snapshot() models.Snapshot {
	rssi, has := s.signal.Last()
	label := ""
	if has {
		label = Proximity(rssi)
	}
	return models.Snapshot{
		SessionID:      s.id,
		SignalStrength: rssi,
		HasSignal:      has,
		Proximity:      label,
		Buzzer:         s.buzzer.state(),
		Led:            s.led.state(),
		Healthy:        s.Healthy(),
	}
}
