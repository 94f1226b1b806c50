package session

// Proximity labels shown to users for a signal strength reading
const (
	SuperNear = "Super Near"
	Near      = "Near"
	Far       = "Far"
	SuperFar  = "Super Far"
)

const (
	superNearFloor = -55
	nearFloor      = -65
	farFloor       = -80
)

// Proximity maps an RSSI reading (dBm) to its fixed label. Boundaries are
// inclusive on the stronger signal side: -55 is still Super Near
func Proximity(rssi int) string {
	switch {
	case rssi >= superNearFloor:
		return SuperNear
	case rssi >= nearFloor:
		return Near
	case rssi >= farFloor:
		return Far
	default:
		return SuperFar
	}
}
