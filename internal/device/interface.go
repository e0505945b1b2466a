package device

//go:generate mockgen -destination=../mock/device/mock_device.go -package=mock_device . Repo

// SessionStatus lifecycle states of a scan session row
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// History event types appended to a device's scan history
const (
	EventConnected    = "connected"
	EventDisconnected = "disconnected"
	EventIPChanged    = "ip_changed"
)

// SessionCounts summarizes one completed reconciliation cycle
type SessionCounts struct {
	Found  int
	Online int
	New    int
}

// Repo interface representing access to the device registry, history
// events and scan sessions. Implementations retry transient lock
// contention internally.
type Repo interface {
	ListAllDevices() ([]*Device, error)
	GetDeviceByMAC(mac string) (*Device, error)
	UpsertDevice(device *Device) (*Device, error)
	AppendEvent(evt *ScanEvent) error
	OpenSession(subnet string, method string) (*ScanSession, error)
	CompleteSession(
		id uint,
		status SessionStatus,
		counts SessionCounts,
		errText string,
	) error
	Transaction(fn func(repo Repo) error) error
}
