package enrich

import "context"

//go:generate mockgen -destination=../mock/enrich/mock_enrich.go -package=mock_enrich . Prober,Service

// Target is one present host handed over for enrichment
type Target struct {
	IP  string
	MAC string
}

// Prober issues the per-protocol probes against a single host. Every
// probe is time-boxed internally and reports zero values instead of
// errors when a host does not answer.
type Prober interface {
	FingerprintHTTP(ctx context.Context, ip string) map[string]string
	LookupHostnames(ctx context.Context, ip string) []string
	QueryNetBIOS(ctx context.Context, ip string) string
	QuerySSDP(ctx context.Context, ip string) map[string]string
	ScanPorts(ctx context.Context, ip string) ([]int, []string)
}

// Service enriches a caller-supplied set of hosts; it never discovers
// hosts on its own
type Service interface {
	EnrichHosts(ctx context.Context, targets []*Target) map[string]*HostEnrichment
	Stop()
}
