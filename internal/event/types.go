package event

import "time"

// EventType names a category of event flowing through the manager
type EventType string

const (
	// ScanStarted emitted when a reconciliation cycle begins
	ScanStarted EventType = "scan_started"
	// ScanCompleted emitted when a reconciliation cycle finishes
	ScanCompleted EventType = "scan_completed"
	// ScanFailed emitted when a reconciliation cycle errors
	ScanFailed EventType = "scan_failed"
	// DeviceConnected emitted when a device comes online
	DeviceConnected EventType = "device_connected"
	// DeviceDisconnected emitted when a device is confirmed offline
	DeviceDisconnected EventType = "device_disconnected"
	// DeviceIPChanged emitted when a known device shows up with a new ip
	DeviceIPChanged EventType = "device_ip_changed"
	// DeviceNew emitted when a never before seen mac appears
	DeviceNew EventType = "device_new"

	// AnyEventType subscribes a listener to every event type
	AnyEventType EventType = "*"
)

// Event data structure delivered to listeners; payloads are plain
// structs serializable to json, timestamps marshal as RFC3339
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"data"`
}

// ScanStartedPayload payload for ScanStarted
type ScanStartedPayload struct {
	SessionID uint   `json:"session_id"`
	Subnet    string `json:"subnet"`
}

// ScanCompletedPayload payload for ScanCompleted
type ScanCompletedPayload struct {
	SessionID     uint   `json:"session_id"`
	DevicesFound  int    `json:"devices_found"`
	DevicesOnline int    `json:"devices_online"`
	DevicesNew    int    `json:"devices_new"`
	Subnet        string `json:"subnet"`
}

// ScanFailedPayload payload for ScanFailed
type ScanFailedPayload struct {
	SessionID uint   `json:"session_id"`
	Error     string `json:"error"`
}

// DeviceConnectedPayload payload for DeviceConnected
type DeviceConnectedPayload struct {
	DeviceID uint   `json:"device_id"`
	MAC      string `json:"mac"`
	IP       string `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
}

// DeviceDisconnectedPayload payload for DeviceDisconnected
type DeviceDisconnectedPayload struct {
	DeviceID uint   `json:"device_id"`
	MAC      string `json:"mac"`
	Hostname string `json:"hostname,omitempty"`
}

// DeviceIPChangedPayload payload for DeviceIPChanged
type DeviceIPChangedPayload struct {
	DeviceID uint   `json:"device_id"`
	MAC      string `json:"mac"`
	OldIP    string `json:"old_ip"`
	NewIP    string `json:"new_ip"`
}

// DeviceNewPayload payload for DeviceNew
type DeviceNewPayload struct {
	DeviceID uint   `json:"device_id"`
	MAC      string `json:"mac"`
	IP       string `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
	Vendor   string `json:"vendor,omitempty"`
}
