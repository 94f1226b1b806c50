package ble

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/currantlabs/ble"
	"github.com/pkg/errors"

	"github.com/pingtag/tag-sdk/pkg/util"
)

const (
	maxRetryAttempts = 5
	connectTimeout   = 10 * time.Second
)

// ConnectionListener gets callbacks for transport level connection lifecycle events
type ConnectionListener interface {
	OnConnected(string, int)
	OnDisconnected()
}

// Connection is the transport surface consumed by the session controller
type Connection interface {
	GetConnectedAddr() string
	Dial(string) error
	Connect(ble.AdvFilter) error
	ReadRSSI() (int, error)
	WriteValue(string, []byte) error
	Subscribe(string, func([]byte)) error
	Unsubscribe(string) error
	Close() error
}

// RealConnection implements Connection over the currantlabs ble stack
type RealConnection struct {
	connectedAddr   string
	cln             ble.Client
	methods         coreMethods
	characteristics map[string]*ble.Characteristic
	mutex           *sync.Mutex
	listener        ConnectionListener
}

// NewRealConnection initializes the default ble device and returns a usable connection
func NewRealConnection(listener ConnectionListener) (*RealConnection, error) {
	return newRealConnection(listener, &realCoreMethods{})
}

func newRealConnection(listener ConnectionListener, methods coreMethods) (*RealConnection, error) {
	if err := methods.SetDefaultDevice(); err != nil {
		return nil, errors.Wrap(err, "SetDefaultDevice issue: ")
	}
	return &RealConnection{
		methods: methods, characteristics: map[string]*ble.Characteristic{},
		mutex: &sync.Mutex{}, listener: listener,
	}, nil
}

// GetConnectedAddr returns the address of the connected tag, or empty string
func (c *RealConnection) GetConnectedAddr() string { return c.connectedAddr }

// Dial connects directly to the tag at the given address
func (c *RealConnection) Dial(addr string) error {
	return c.wrapConnect(addr, func(ctx context.Context) (ble.Client, error) {
		return c.methods.Dial(ctx, ble.NewAddr(addr))
	})
}

// Connect connects to the first advertisement accepted by filter; discovery
// itself (scanning for candidate tags) is the caller's concern
func (c *RealConnection) Connect(filter ble.AdvFilter) error {
	var addr string
	return c.wrapConnect("", func(ctx context.Context) (ble.Client, error) {
		cln, err := c.methods.Connect(ctx, func(a ble.Advertisement) bool {
			b := filter(a)
			if b {
				addr = a.Address().String()
			}
			return b
		})
		c.connectedAddr = addr
		return cln, err
	})
}

type connectHelper func(ctx context.Context) (ble.Client, error)

func (c *RealConnection) wrapConnect(addr string, fn connectHelper) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	err := retryAndCatch(func() error {
		if c.cln != nil {
			c.cln.CancelConnection()
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		cln, err := fn(ctx)
		if err != nil {
			return errors.Wrap(err, "coreMethods connect issue: ")
		}
		c.cln = cln
		if addr != "" {
			c.connectedAddr = addr
		}
		go func() {
			<-cln.Disconnected()
			c.listener.OnDisconnected()
		}()
		return c.discoverTagService(cln)
	})
	if err != nil && c.cln != nil {
		c.cln.CancelConnection()
	}
	return err
}

func (c *RealConnection) discoverTagService(cln ble.Client) error {
	_, err := cln.ExchangeMTU(util.MTU)
	if err != nil {
		return errors.Wrap(err, "ExchangeMTU issue: ")
	}
	p, err := cln.DiscoverProfile(true)
	if err != nil {
		return errors.Wrap(err, "DiscoverProfile issue: ")
	}
	for _, s := range p.Services {
		if util.UuidEqualStr(s.UUID, util.TagServiceUUID) {
			for _, char := range s.Characteristics {
				c.characteristics[char.UUID.String()] = char
			}
			rssi, _ := c.ReadRSSI()
			c.listener.OnConnected(c.connectedAddr, rssi)
			return nil
		}
	}
	return errors.New("Could not find TagServiceUUID in broadcasted services")
}

func (c *RealConnection) getCharacteristic(uuid string) (*ble.Characteristic, error) {
	for key, char := range c.characteristics {
		if util.AddrEqualAddr(key, uuid) || util.UuidEqualStr(char.UUID, uuid) {
			return char, nil
		}
	}
	return nil, fmt.Errorf("No such uuid (%s) in characteristics (%v) advertised from tag.", uuid, c.characteristics)
}

// ReadRSSI reads the current signal strength of the active link. The underlying
// stack reports 0 when it has no reading, which is surfaced as an error so
// callers treat it as an invalid read
func (c *RealConnection) ReadRSSI() (int, error) {
	if c.cln == nil {
		return 0, errors.New("no active ble client")
	}
	var rssi int
	err := util.CatchErrs(func() error {
		rssi = c.cln.ReadRSSI()
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "ReadRSSI issue: ")
	}
	if rssi == 0 {
		return 0, errors.New("no rssi reading for active connection")
	}
	return rssi, nil
}

// WriteValue writes data to the characteristic with the given uuid
func (c *RealConnection) WriteValue(uuid string, data []byte) error {
	if len(data) == 0 {
		return errors.New("Empty data provided. Will skip writing.")
	}
	if len(data) > util.MTU {
		return errors.Errorf("data exceeds mtu (%d bytes)", util.MTU)
	}
	char, err := c.getCharacteristic(uuid)
	if err != nil {
		return err
	}
	if c.cln == nil {
		return errors.New("no active ble client")
	}
	return retryAndCatch(func() error {
		return c.cln.WriteCharacteristic(char, data, true)
	})
}

// Subscribe registers handler for notifications on the characteristic with the given uuid
func (c *RealConnection) Subscribe(uuid string, handler func([]byte)) error {
	char, err := c.getCharacteristic(uuid)
	if err != nil {
		return err
	}
	if c.cln == nil {
		return errors.New("no active ble client")
	}
	return retryAndCatch(func() error {
		return c.cln.Subscribe(char, false, func(req []byte) {
			handler(req)
		})
	})
}

// Unsubscribe cancels the notification subscription on the given uuid
func (c *RealConnection) Unsubscribe(uuid string) error {
	char, err := c.getCharacteristic(uuid)
	if err != nil {
		return err
	}
	if c.cln == nil {
		return errors.New("no active ble client")
	}
	return util.CatchErrs(func() error {
		return c.cln.Unsubscribe(char, false)
	})
}

// Close tears down the underlying ble link; safe to call more than once
func (c *RealConnection) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.cln == nil {
		return nil
	}
	cln := c.cln
	c.cln = nil
	c.connectedAddr = ""
	return util.CatchErrs(func() error {
		return cln.CancelConnection()
	})
}
