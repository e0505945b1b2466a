package discovery

import (
	"context"
)

//go:generate mockgen -destination=../mock/discovery/mock_discovery.go -package=mock_discovery . Technique,Prober,CacheReader,Sweeper,Service

// Technique is a single best-effort method of finding live hosts on
// a subnet
type Technique interface {
	Name() string
	Available() bool
	Discover(ctx context.Context, cidr string) ([]*DiscoveredHost, error)
}

// Prober additionally issues directed arp probes for single addresses
type Prober interface {
	Technique
	Probe(ctx context.Context, ip string) string
}

// CacheReader additionally looks up single entries in the neighbor
// cache
type CacheReader interface {
	Technique
	Lookup(ctx context.Context, ip string) string
}

// Sweeper additionally checks reachability of a single address
type Sweeper interface {
	Technique
	Ping(ctx context.Context, ip string) bool
}

// Service interface for subnet discovery and targeted host
// verification
type Service interface {
	ScanSubnet(ctx context.Context, cidr string) ([]*DiscoveredHost, error)
	VerifyHostOnline(ctx context.Context, ip string, mac string) bool
	Stop()
}
