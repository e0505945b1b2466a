package mdns

import "context"

//go:generate mockgen -destination=../mock/mdns/mock_mdns.go -package=mock_mdns . Resolver

// Resolver interface for aggregating mdns service metadata by ip
type Resolver interface {
	Available() bool
	Browse(ctx context.Context, targetIPs []string) (map[string]*HostInfo, error)
}
