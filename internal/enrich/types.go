package enrich

import "strings"

// HostEnrichment aggregates everything the probes learned about one
// host during a single cycle. Hostnames keeps candidate order: the
// advertised friendly name is seeded at the front, probe results
// append behind it.
type HostEnrichment struct {
	IP           string
	MAC          string
	Hostnames    []string
	Vendor       string
	Manufacturer string
	Model        string
	DeviceClass  string

	// resolved service descriptions of the form "Name (_type._tcp)"
	Services []string

	// coarse names from the port probe; classification input only,
	// never persisted
	PortServices []string

	OpenPorts   []int
	SSDPInfo    map[string]string
	NetBIOSName string
	HTTPInfo    map[string]string
}

// AddHostname records a candidate hostname once, preserving order
func (e *HostEnrichment) AddHostname(name string) {
	if name == "" || name == e.IP {
		return
	}

	for _, existing := range e.Hostnames {
		if existing == name {
			return
		}
	}

	e.Hostnames = append(e.Hostnames, name)
}

// InsertHostname puts name at the front of the candidate list unless
// it is already present
func (e *HostEnrichment) InsertHostname(name string) {
	if name == "" {
		return
	}

	for _, existing := range e.Hostnames {
		if existing == name {
			return
		}
	}

	e.Hostnames = append([]string{name}, e.Hostnames...)
}

// AddService records a resolved service description once
func (e *HostEnrichment) AddService(description string) {
	if description == "" {
		return
	}

	for _, existing := range e.Services {
		if existing == description {
			return
		}
	}

	e.Services = append(e.Services, description)
}

// PrimaryHostname prefers a name outside the .local domain, then the
// first candidate, then the netbios name
func (e *HostEnrichment) PrimaryHostname() string {
	for _, name := range e.Hostnames {
		if !strings.HasSuffix(name, ".local") {
			return name
		}
	}

	if len(e.Hostnames) > 0 {
		return e.Hostnames[0]
	}

	return e.NetBIOSName
}

// FriendlyName is the preferred candidate, normally the advertised
// service name seeded at the front of the list
func (e *HostEnrichment) FriendlyName() string {
	if len(e.Hostnames) > 0 {
		return e.Hostnames[0]
	}

	return ""
}
