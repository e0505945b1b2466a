package mdns

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/util"
)

// AvahiBrowser resolves advertised service instances by shelling out
// to avahi-browse (-r resolve, -a all types, -t terminate, -p
// parsable, -c cached)
type AvahiBrowser struct {
	log logger.Logger
}

// NewAvahiBrowser returns an avahi backed browser
func NewAvahiBrowser() *AvahiBrowser {
	return &AvahiBrowser{
		log: logger.New(),
	}
}

// Available reports whether avahi-browse exists on this system
func (b *AvahiBrowser) Available() bool {
	_, err := exec.LookPath("avahi-browse")
	return err == nil
}

// Browse resolves all advertised services and aggregates IPv4 results
// by responding ip; targetIPs, when non-empty, limits aggregation to
// those addresses
func (b *AvahiBrowser) Browse(
	ctx context.Context,
	targetIPs []string,
) (map[string]*HostInfo, error) {
	cmd := exec.CommandContext(ctx, "avahi-browse", "-ratpc")

	out, err := cmd.Output()

	if err != nil {
		return nil, err
	}

	hosts := ParseBrowseOutput(string(out), targetIPs)

	b.log.Debug().
		Int("hosts", len(hosts)).
		Msg("avahi browse complete")

	return hosts, nil
}

// ParseBrowseOutput parses avahi-browse -ratpc output into per-ip
// aggregates; only resolved ('=') IPv4 records outside loopback and
// link-local ranges are kept
func ParseBrowseOutput(output string, targetIPs []string) map[string]*HostInfo {
	hosts := map[string]*HostInfo{}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		if !strings.HasPrefix(line, "=") {
			continue
		}

		svc := parseServiceLine(line)

		if svc == nil || !svc.IsIPv4() {
			continue
		}

		ip := svc.IP

		if strings.HasPrefix(ip, "127.") || strings.HasPrefix(ip, "169.254.") {
			continue
		}

		if len(targetIPs) > 0 && !util.SliceIncludes(targetIPs, ip) {
			continue
		}

		info, ok := hosts[ip]

		if !ok {
			info = &HostInfo{IP: ip}
			hosts[ip] = info
		}

		info.Services = append(info.Services, svc)

		if svc.Hostname != "" {
			info.AddHostname(DecodeServiceString(strings.TrimSuffix(svc.Hostname, ".")))
		}

		if svc.Name != "" {
			info.AddServiceName(DecodeServiceString(svc.Name))
		}

		applyServiceInfo(info, svc)
	}

	return hosts
}

// parseServiceLine splits one resolved line of the form
// =;interface;protocol;name;type;domain;hostname;address;port;txt
func parseServiceLine(line string) *ServiceRecord {
	parts := strings.Split(line, ";")

	if len(parts) < 9 {
		return nil
	}

	port, err := strconv.Atoi(parts[8])

	if err != nil {
		port = 0
	}

	txtRecords := map[string]string{}

	if len(parts) > 9 {
		// txt blob may itself contain semicolons
		txtRecords = ParseTxtRecords(strings.Join(parts[9:], ";"))
	}

	return &ServiceRecord{
		Interface:  parts[1],
		Protocol:   parts[2],
		Name:       parts[3],
		Type:       parts[4],
		Domain:     parts[5],
		Hostname:   parts[6],
		IP:         parts[7],
		Port:       port,
		TxtRecords: txtRecords,
	}
}
