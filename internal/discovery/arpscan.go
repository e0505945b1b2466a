package discovery

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/lanwarden/lanwarden/internal/logger"
)

// matches "192.168.1.10	aa:bb:cc:dd:ee:ff	Vendor Name"
var arpScanLine = regexp.MustCompile(
	`^(\d+\.\d+\.\d+\.\d+)\s+([0-9a-fA-F:]{17})\s*(.*)$`,
)

// ArpScanCLI wraps the external arp-scan sweep utility
type ArpScanCLI struct {
	log logger.Logger
}

// NewArpScanCLI returns a technique backed by the arp-scan binary
func NewArpScanCLI() *ArpScanCLI {
	return &ArpScanCLI{log: logger.New()}
}

// Name implements Technique
func (s *ArpScanCLI) Name() string {
	return MethodArpScan
}

// Available reports whether arp-scan is installed
func (s *ArpScanCLI) Available() bool {
	_, err := exec.LookPath("arp-scan")
	return err == nil
}

// Discover sweeps the local segment with arp-scan and parses its
// tabular output
func (s *ArpScanCLI) Discover(
	ctx context.Context,
	cidr string,
) ([]*DiscoveredHost, error) {
	out, err := exec.CommandContext(ctx, "arp-scan", "--localnet", "-q").Output()

	if err != nil {
		return nil, err
	}

	return ParseArpScanOutput(string(out)), nil
}

// ParseArpScanOutput extracts hosts from arp-scan's ip, mac, vendor
// columns. Header and footer lines fail the pattern and are skipped.
func ParseArpScanOutput(output string) []*DiscoveredHost {
	hosts := []*DiscoveredHost{}

	for _, line := range strings.Split(output, "\n") {
		match := arpScanLine.FindStringSubmatch(strings.TrimSpace(line))

		if match == nil {
			continue
		}

		hosts = append(hosts, &DiscoveredHost{
			IP:     match[1],
			MAC:    strings.ToLower(match[2]),
			Vendor: strings.TrimSpace(match[3]),
			Method: MethodArpScan,
		})
	}

	return hosts
}
