package discovery

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/lanwarden/lanwarden/internal/logger"
)

const procNetArp = "/proc/net/arp"

// matches "gateway (192.168.1.1) at aa:bb:cc:dd:ee:ff [ether] on eth0"
var arpEntryPattern = regexp.MustCompile(
	`\((\d+\.\d+\.\d+\.\d+)\)\s+at\s+([0-9a-fA-F:]{17})`,
)

// NeighborCache reads the operating system's arp/neighbor table
type NeighborCache struct {
	procPath string
	log      logger.Logger
}

// NewNeighborCache returns a technique reading the kernel arp table,
// falling back to the arp command on systems without one
func NewNeighborCache() *NeighborCache {
	return &NeighborCache{
		procPath: procNetArp,
		log:      logger.New(),
	}
}

// Name implements Technique
func (n *NeighborCache) Name() string {
	return MethodArpTable
}

// Available implements Technique. The cache read itself degrades
// gracefully so this is always true.
func (n *NeighborCache) Available() bool {
	return true
}

// Discover returns every complete entry currently in the neighbor
// cache. Incomplete and broadcast entries are excluded.
func (n *NeighborCache) Discover(
	ctx context.Context,
	cidr string,
) ([]*DiscoveredHost, error) {
	if data, err := os.ReadFile(n.procPath); err == nil {
		return ParseProcNetArp(string(data)), nil
	}

	out, err := exec.CommandContext(ctx, "arp", "-a").Output()

	if err != nil {
		return nil, err
	}

	return ParseArpOutput(string(out)), nil
}

// Lookup returns the cached mac for ip, or empty string when the
// cache has no complete entry for it
func (n *NeighborCache) Lookup(ctx context.Context, ip string) string {
	hosts, err := n.Discover(ctx, "")

	if err != nil {
		n.log.Warn().Err(err).Msg("failed to read neighbor cache")
		return ""
	}

	for _, host := range hosts {
		if host.IP == ip {
			return host.MAC
		}
	}

	return ""
}

// ParseProcNetArp parses the kernel arp table columns
// (ip, hw type, flags, mac, mask, device)
func ParseProcNetArp(output string) []*DiscoveredHost {
	hosts := []*DiscoveredHost{}

	for i, line := range strings.Split(output, "\n") {
		if i == 0 {
			// header
			continue
		}

		fields := strings.Fields(line)

		if len(fields) < 4 {
			continue
		}

		mac := strings.ToLower(fields[3])

		if mac == "00:00:00:00:00:00" || mac == "ff:ff:ff:ff:ff:ff" {
			continue
		}

		hosts = append(hosts, &DiscoveredHost{
			IP:     fields[0],
			MAC:    mac,
			Method: MethodArpTable,
		})
	}

	return hosts
}

// ParseArpOutput parses "hostname (ip) at mac ..." lines from the
// arp command
func ParseArpOutput(output string) []*DiscoveredHost {
	hosts := []*DiscoveredHost{}

	for _, line := range strings.Split(output, "\n") {
		match := arpEntryPattern.FindStringSubmatch(line)

		if match == nil {
			continue
		}

		mac := strings.ToLower(match[2])

		if mac == "ff:ff:ff:ff:ff:ff" {
			continue
		}

		hosts = append(hosts, &DiscoveredHost{
			IP:     match[1],
			MAC:    mac,
			Method: MethodArpTable,
		})
	}

	return hosts
}
