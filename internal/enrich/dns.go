package enrich

import (
	"context"
	"net"
	"strings"
)

// LookupHostnames reverse resolves ip into candidate hostnames; every
// ptr name contributes one candidate
func (p *NetworkProber) LookupHostnames(ctx context.Context, ip string) []string {
	lookupCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(lookupCtx, ip)

	if err != nil {
		return nil
	}

	hostnames := []string{}

	for _, name := range names {
		name = strings.TrimSuffix(name, ".")

		if name != "" && name != ip {
			hostnames = append(hostnames, name)
		}
	}

	return hostnames
}
