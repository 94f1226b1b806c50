package util

const (
	// MTU is used for the max size of bytes allowed for data transmittion between session and tag
	MTU = 256
	// TagServiceUUID represents UUID for the ble service advertised by the tag firmware
	TagServiceUUID = "0000AB00-0001-1000-8000-00805F9B34FB"
	// CommandCharUUID represents UUID for the ble characteristic which handles command writes from session to tag
	CommandCharUUID = "0000AB00-0002-1000-8000-00805F9B34FB"
	// StateCharUUID represents UUID for the ble characteristic which notifies confirmed actuator state changes from tag to session
	StateCharUUID = "0000AB00-0003-1000-8000-00805F9B34FB"
)
