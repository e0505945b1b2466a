package discovery

// Technique tags recorded on discovered hosts and history events
const (
	MethodARP       = "arp"
	MethodArpScan   = "arp-scan"
	MethodArpTable  = "arp-table"
	MethodPingSweep = "ping-sweep"
)

// DiscoveredHost is one live host reported by a discovery technique.
// MAC is always lowercase colon separated.
type DiscoveredHost struct {
	IP           string
	MAC          string
	Hostname     string
	Vendor       string
	ResponseTime float64
	Method       string
}
