package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/projectdiscovery/mapcidr"
	probing "github.com/prometheus-community/pro-bing"
)

const (
	pingSweepHostCap   = 254
	pingSweepBatchSize = 50
	pingBatchTimeout   = 3 * time.Second
	pingHostTimeout    = time.Second
)

// PingSweep walks the subnet with icmp echo requests to coax hosts
// into the neighbor cache, then reads the cache back
type PingSweep struct {
	neighbors *NeighborCache
	log       logger.Logger
}

// NewPingSweep returns a sweep reading results back through neighbors
func NewPingSweep(neighbors *NeighborCache) *PingSweep {
	return &PingSweep{
		neighbors: neighbors,
		log:       logger.New(),
	}
}

// Name implements Technique
func (p *PingSweep) Name() string {
	return MethodPingSweep
}

// Available implements Technique
func (p *PingSweep) Available() bool {
	return true
}

// Discover pings every host address in cidr in bounded batches and
// returns whatever the neighbor cache holds afterwards
func (p *PingSweep) Discover(
	ctx context.Context,
	cidr string,
) ([]*DiscoveredHost, error) {
	ips, err := mapcidr.IPAddresses(cidr)

	if err != nil {
		return nil, err
	}

	if len(ips) > pingSweepHostCap {
		ips = ips[:pingSweepHostCap]
	}

	for start := 0; start < len(ips); start += pingSweepBatchSize {
		end := start + pingSweepBatchSize

		if end > len(ips) {
			end = len(ips)
		}

		p.pingBatch(ctx, ips[start:end])

		if ctx.Err() != nil {
			break
		}
	}

	hosts, err := p.neighbors.Discover(ctx, cidr)

	if err != nil {
		return nil, err
	}

	for _, host := range hosts {
		host.Method = MethodPingSweep
	}

	return hosts, nil
}

// Ping checks reachability of a single address
func (p *PingSweep) Ping(ctx context.Context, ip string) bool {
	return pingHost(ctx, ip, pingHostTimeout)
}

// pingBatch fires one echo request at every ip in the batch and waits
// for the slowest, bounded by the batch timeout
func (p *PingSweep) pingBatch(ctx context.Context, ips []string) {
	batchCtx, cancel := context.WithTimeout(ctx, pingBatchTimeout)
	defer cancel()

	wg := sync.WaitGroup{}

	for _, ip := range ips {
		wg.Add(1)

		go func(ip string) {
			defer wg.Done()
			pingHost(batchCtx, ip, pingHostTimeout)
		}(ip)
	}

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-batchCtx.Done():
	}
}

// pingHost sends a single echo request and reports whether a reply
// arrived in time
func pingHost(ctx context.Context, ip string, timeout time.Duration) bool {
	pinger, err := probing.NewPinger(ip)

	if err != nil {
		return false
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(true)

	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = pinger.Run()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		pinger.Stop()
		return false
	}

	return pinger.Statistics().PacketsRecv > 0
}
