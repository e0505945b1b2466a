package device

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Device is a single host in the registry, keyed by mac address. A
// row persists across scans whether or not the host is currently
// online.
type Device struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MAC          string `gorm:"column:mac;uniqueIndex;not null" json:"mac"`
	IP           string `gorm:"column:ip;index" json:"ip"`
	Hostname     string `json:"hostname"`
	Vendor       string `json:"vendor"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	FriendlyName string `json:"friendly_name"`
	DeviceClass  string `json:"device_class"`
	CustomName   string `json:"custom_name"`
	Notes        string `json:"notes"`
	IsFavorite   bool   `json:"is_favorite"`
	IsKnown      bool   `json:"is_known"`
	IsOnline     bool   `gorm:"index" json:"is_online"`
	MissedScans  int    `json:"missed_scans"`

	// serialized []int and []string blobs
	OpenPorts datatypes.JSON `json:"open_ports"`
	Services  datatypes.JSON `json:"services"`

	Events []ScanEvent `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScanEvent is one append-only history record of a device state
// change observed during a cycle
type ScanEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DeviceID     uint      `gorm:"index;not null" json:"device_id"`
	EventType    string    `json:"event_type"`
	IP           string    `gorm:"column:ip" json:"ip"`
	OldIP        string    `gorm:"column:old_ip" json:"old_ip"`
	ResponseTime float64   `json:"response_time"`
	Method       string    `json:"method"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScanSession records one reconciliation cycle from start to
// completion or failure
type ScanSession struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
	Status        SessionStatus `json:"status"`
	Subnet        string        `json:"subnet"`
	Method        string        `json:"method"`
	DevicesFound  int           `json:"devices_found"`
	DevicesOnline int           `json:"devices_online"`
	DevicesNew    int           `json:"devices_new"`
	Error         string        `json:"error"`
}

// DisplayName returns the best human facing name for a device
func (d *Device) DisplayName() string {
	if d.CustomName != "" {
		return d.CustomName
	}

	if d.FriendlyName != "" {
		return d.FriendlyName
	}

	if d.Hostname != "" {
		return d.Hostname
	}

	return d.MAC
}

// SetOpenPorts serializes ports into the open-ports blob
func (d *Device) SetOpenPorts(ports []int) error {
	data, err := json.Marshal(ports)

	if err != nil {
		return err
	}

	d.OpenPorts = datatypes.JSON(data)

	return nil
}

// OpenPortList deserializes the open-ports blob. An empty or missing
// blob yields an empty slice.
func (d *Device) OpenPortList() []int {
	ports := []int{}

	if len(d.OpenPorts) == 0 {
		return ports
	}

	// a corrupt blob reads as no ports
	_ = json.Unmarshal(d.OpenPorts, &ports)

	return ports
}

// SetServices serializes names into the services blob
func (d *Device) SetServices(services []string) error {
	data, err := json.Marshal(services)

	if err != nil {
		return err
	}

	d.Services = datatypes.JSON(data)

	return nil
}

// ServiceList deserializes the services blob. An empty or missing
// blob yields an empty slice.
func (d *Device) ServiceList() []string {
	services := []string{}

	if len(d.Services) == 0 {
		return services
	}

	_ = json.Unmarshal(d.Services, &services)

	return services
}
