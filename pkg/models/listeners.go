package models

// TagSessionListener is the callback surface a presentation layer implements to observe one tag session
type TagSessionListener interface {
	OnConnected(string, int)
	OnSignal(int)
	OnActuatorChanged(Actuator, bool)
	OnConnectionLost()
	OnInternalError(error)
}
