package mdns

import (
	"regexp"
	"strings"
	"sync"
)

// ServiceRecord is one resolved mDNS/DNS-SD service instance
type ServiceRecord struct {
	Interface  string
	Protocol   string
	Name       string
	Type       string
	Domain     string
	Hostname   string
	IP         string
	Port       int
	TxtRecords map[string]string
}

// IsIPv4 reports whether the record resolved over IPv4
func (s *ServiceRecord) IsIPv4() bool {
	return s.Protocol == "IPv4"
}

// HostInfo aggregates mdns metadata for one responding ip
type HostInfo struct {
	IP           string
	Hostnames    []string
	Services     []*ServiceRecord
	ServiceNames []string
	Model        string
	Manufacturer string
	DeviceClass  string
}

// AddHostname records a hostname once, preserving insertion order
func (h *HostInfo) AddHostname(name string) {
	if name == "" {
		return
	}

	for _, existing := range h.Hostnames {
		if existing == name {
			return
		}
	}

	h.Hostnames = append(h.Hostnames, name)
}

// AddServiceName records a candidate friendly name once
func (h *HostInfo) AddServiceName(name string) {
	if name == "" {
		return
	}

	for _, existing := range h.ServiceNames {
		if existing == name {
			return
		}
	}

	h.ServiceNames = append(h.ServiceNames, name)
}

// PrimaryHostname returns the best hostname for the host, preferring
// names outside the .local domain, then the shortest local name
func (h *HostInfo) PrimaryHostname() string {
	if len(h.Hostnames) == 0 {
		return ""
	}

	for _, name := range h.Hostnames {
		if !strings.HasSuffix(name, ".local") {
			return name
		}
	}

	shortest := h.Hostnames[0]

	for _, name := range h.Hostnames[1:] {
		if len(name) < len(shortest) {
			shortest = name
		}
	}

	return shortest
}

var (
	// noise prefixes seen in advertised instance names that are never
	// human-friendly (hex blobs, internal identifiers)
	badNamePrefixes = []string{
		"_", "E9E96E", "636E5CDF", "408ACAAF", "C06BB", "a2eda",
		"googlerpc", "LG_SMART", "LG-SN",
	}

	badNameSuffixes = []string{"-0000000"}

	macLikeName = regexp.MustCompile(`\d+-\d+-\d+-\d+`)
)

// usableName filters out technical identifiers advertised as instance
// names: uuid-like blobs, mac-like patterns, escapes and noise prefixes
func usableName(name string) bool {
	for _, prefix := range badNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}

	for _, suffix := range badNameSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}

	if len(name) > 20 && strings.Count(name, "-") >= 4 {
		return false
	}

	if macLikeName.MatchString(name) {
		return false
	}

	if strings.Contains(name, "\\") {
		return false
	}

	if len(name) < 2 || len(name) > 50 {
		return false
	}

	return true
}

// FriendlyName returns the most user friendly name for the host:
// short space-containing service names win, then the shortest usable
// service name, then a hostname with the .local suffix stripped
func (h *HostInfo) FriendlyName() string {
	goodNames := []string{}

	for _, name := range h.ServiceNames {
		if usableName(name) {
			goodNames = append(goodNames, name)
		}
	}

	if len(goodNames) > 0 {
		best := ""

		for _, name := range goodNames {
			if strings.Contains(name, " ") && len(name) < 30 {
				if best == "" || len(name) < len(best) {
					best = name
				}
			}
		}

		if best != "" {
			return best
		}

		best = goodNames[0]

		for _, name := range goodNames[1:] {
			if len(name) < len(best) {
				best = name
			}
		}

		return best
	}

	for _, hostname := range h.Hostnames {
		name := strings.ReplaceAll(hostname, ".local", "")

		if name != "" && !strings.HasPrefix(name, "_") {
			return name
		}
	}

	return ""
}

// ServiceCache is the read-mostly per-ip aggregation shared across one
// enrichment batch; it is constructed once per process and opened and
// closed around each batch
type ServiceCache struct {
	mux   sync.RWMutex
	hosts map[string]*HostInfo
}

// NewServiceCache returns an empty cache
func NewServiceCache() *ServiceCache {
	return &ServiceCache{
		hosts: map[string]*HostInfo{},
	}
}

// Open resets the cache for a new enrichment batch
func (c *ServiceCache) Open() {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.hosts = map[string]*HostInfo{}
}

// Close drops the batch data
func (c *ServiceCache) Close() {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.hosts = map[string]*HostInfo{}
}

// Populate stores a batch of per-ip aggregates
func (c *ServiceCache) Populate(hosts map[string]*HostInfo) {
	c.mux.Lock()
	defer c.mux.Unlock()

	for ip, info := range hosts {
		c.hosts[ip] = info
	}
}

// Get returns the aggregate for ip or nil
func (c *ServiceCache) Get(ip string) *HostInfo {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return c.hosts[ip]
}

// Len reports the number of cached hosts
func (c *ServiceCache) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return len(c.hosts)
}
