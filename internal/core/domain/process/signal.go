package process

// Signal is sent to a running hurl process on cancellation.
type Signal int

const (
	SignalTerminate Signal = iota // SIGTERM
	SignalInterrupt               // SIGINT
	SignalKill                    // SIGKILL
)
