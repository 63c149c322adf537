package browserpool

// EventKind identifies a browser pool lifecycle event, mirroring the
// original's PoolEvent variant set.
type EventKind int

const (
	EventBrowserCreated EventKind = iota
	EventBrowserRemoved
	EventBrowserCheckedOut
	EventBrowserCheckedIn
	EventPoolExpanded
	EventPoolShrunk
	EventHealthCheckCompleted
	EventMemoryAlert
)

func (k EventKind) String() string {
	switch k {
	case EventBrowserCreated:
		return "browser_created"
	case EventBrowserRemoved:
		return "browser_removed"
	case EventBrowserCheckedOut:
		return "browser_checked_out"
	case EventBrowserCheckedIn:
		return "browser_checked_in"
	case EventPoolExpanded:
		return "pool_expanded"
	case EventPoolShrunk:
		return "pool_shrunk"
	case EventHealthCheckCompleted:
		return "health_check_completed"
	case EventMemoryAlert:
		return "memory_alert"
	default:
		return "unknown"
	}
}

// Event is a single pool lifecycle notification, delivered on
// Pool.Events().
type Event struct {
	Kind        EventKind
	BrowserID   string
	Reason      string
	NewSize     int
	Healthy     int
	Unhealthy   int
	MemoryMB    uint64
}

func newEvent(kind EventKind, opts ...func(*Event)) Event {
	e := Event{Kind: kind}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func withBrowserID(id string) func(*Event) { return func(e *Event) { e.BrowserID = id } }
func withReason(reason string) func(*Event) { return func(e *Event) { e.Reason = reason } }
func withNewSize(n int) func(*Event)        { return func(e *Event) { e.NewSize = n } }
func withHealthCounts(healthy, unhealthy int) func(*Event) {
	return func(e *Event) { e.Healthy = healthy; e.Unhealthy = unhealthy }
}
func withMemoryMB(mb uint64) func(*Event) { return func(e *Event) { e.MemoryMB = mb } }
