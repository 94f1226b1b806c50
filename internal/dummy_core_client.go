package internal

import (
	"bytes"
	"sync"

	"github.com/currantlabs/ble"
)

// DummyCoreClient is a controllable stand-in for the currantlabs ble.Client
type DummyCoreClient struct {
	testAddr            string
	Rssi                int
	WriteErr            error
	SubscribeErr        error
	MockedReadCharData  *bytes.Buffer
	MockedWriteCharData *[]*bytes.Buffer
	NotifyHandlers      map[string]ble.NotificationHandler
	mutex               *sync.Mutex
}

// NewDummyCoreClient returns a dummy client with sane defaults
func NewDummyCoreClient(addr string) *DummyCoreClient {
	return &DummyCoreClient{
		testAddr: addr, Rssi: -60,
		MockedReadCharData:  bytes.NewBuffer([]byte{}),
		MockedWriteCharData: &[]*bytes.Buffer{},
		NotifyHandlers:      map[string]ble.NotificationHandler{},
		mutex:               &sync.Mutex{},
	}
}

// PushNotification delivers payload to the handler subscribed on the given characteristic uuid
func (c *DummyCoreClient) PushNotification(uuid string, payload []byte) bool {
	c.mutex.Lock()
	h, ok := c.NotifyHandlers[uuid]
	c.mutex.Unlock()
	if !ok {
		return false
	}
	h(payload)
	return true
}

// Writes returns all payloads written so far, in order
func (c *DummyCoreClient) Writes() [][]byte {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	ret := [][]byte{}
	for _, b := range *c.MockedWriteCharData {
		ret = append(ret, b.Bytes())
	}
	return ret
}

func (c *DummyCoreClient) ReadCharacteristic(char *ble.Characteristic) ([]byte, error) {
	return c.MockedReadCharData.Bytes(), nil
}
func (c *DummyCoreClient) WriteCharacteristic(char *ble.Characteristic, value []byte, noRsp bool) error {
	if c.WriteErr != nil {
		return c.WriteErr
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	buf := bytes.NewBuffer(value)
	*c.MockedWriteCharData = append(*c.MockedWriteCharData, buf)
	return nil
}
func (c *DummyCoreClient) Address() ble.Addr                                          { return ble.NewAddr(c.testAddr) }
func (c *DummyCoreClient) Name() string                                               { return "dummy tag" }
func (c *DummyCoreClient) Profile() *ble.Profile                                      { return &ble.Profile{Services: GetTestServices()} }
func (c *DummyCoreClient) DiscoverProfile(force bool) (*ble.Profile, error)           { return c.Profile(), nil }
func (c *DummyCoreClient) DiscoverServices(filter []ble.UUID) ([]*ble.Service, error) { return GetTestServices(), nil }
func (c *DummyCoreClient) DiscoverIncludedServices(filter []ble.UUID, s *ble.Service) ([]*ble.Service, error) {
	return nil, nil
}
func (c *DummyCoreClient) DiscoverCharacteristics(filter []ble.UUID, s *ble.Service) ([]*ble.Characteristic, error) {
	return nil, nil
}
func (c *DummyCoreClient) DiscoverDescriptors(filter []ble.UUID, char *ble.Characteristic) ([]*ble.Descriptor, error) {
	return nil, nil
}
func (c *DummyCoreClient) ReadLongCharacteristic(char *ble.Characteristic) ([]byte, error) {
	return c.ReadCharacteristic(char)
}
func (c *DummyCoreClient) ReadDescriptor(d *ble.Descriptor) ([]byte, error)  { return nil, nil }
func (c *DummyCoreClient) WriteDescriptor(d *ble.Descriptor, v []byte) error { return nil }
func (c *DummyCoreClient) ReadRSSI() int                                     { return c.Rssi }
func (c *DummyCoreClient) ExchangeMTU(rxMTU int) (txMTU int, err error)      { return rxMTU, nil }
func (c *DummyCoreClient) Subscribe(char *ble.Characteristic, ind bool, h ble.NotificationHandler) error {
	if c.SubscribeErr != nil {
		return c.SubscribeErr
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.NotifyHandlers[char.UUID.String()] = h
	return nil
}
func (c *DummyCoreClient) Unsubscribe(char *ble.Characteristic, ind bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.NotifyHandlers, char.UUID.String())
	return nil
}
func (c *DummyCoreClient) ClearSubscriptions() error     { return nil }
func (c *DummyCoreClient) CancelConnection() error       { return nil }
func (c *DummyCoreClient) Disconnected() <-chan struct{} { return make(chan struct{}) }
