package parameter

// Event Queue
const (
	// EventQueueSize must be a power of two (ring buffer mask arithmetic)
	EventQueueSize  = 256
	EventBufferMask = EventQueueSize - 1
)
