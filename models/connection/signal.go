package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Place a fleet and validate it
	CodeCreateBoard
	CodeFire

	// Text dump of the field
	CodeField

	// Sent after the shot that sinks the last ship
	CodeFleetDestroyed
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
