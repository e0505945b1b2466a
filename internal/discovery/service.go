package discovery

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/oui"
)

const reverseLookupTimeout = 2 * time.Second

// DiscoveryService fans a subnet scan out to every available
// technique and merges the results. Technique order fixes metadata
// precedence: the first technique to report a mac wins.
type DiscoveryService struct {
	ctx        context.Context
	cancel     context.CancelFunc
	techniques []Technique
	prober     Prober
	cache      CacheReader
	pinger     Sweeper
	vendors    *oui.Registry
	log        logger.Logger
}

// NewDiscoveryService returns a service scanning with the arp prober,
// the external sweep utility, the neighbor cache and the ping sweep,
// in that order
func NewDiscoveryService(
	prober Prober,
	sweeper Technique,
	cache CacheReader,
	pinger Sweeper,
	vendors *oui.Registry,
) *DiscoveryService {
	ctx, cancel := context.WithCancel(context.Background())

	return &DiscoveryService{
		ctx:        ctx,
		cancel:     cancel,
		techniques: []Technique{prober, sweeper, cache, pinger},
		prober:     prober,
		cache:      cache,
		pinger:     pinger,
		vendors:    vendors,
		log:        logger.New(),
	}
}

// ScanSubnet runs all available techniques concurrently against cidr
// and merges their hosts keyed by mac, first writer wins. Hostnames
// not supplied by any technique are filled by reverse dns.
func (s *DiscoveryService) ScanSubnet(
	ctx context.Context,
	cidr string,
) ([]*DiscoveredHost, error) {
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-scanCtx.Done():
		}
	}()

	results := make([][]*DiscoveredHost, len(s.techniques))

	wg := sync.WaitGroup{}

	for i, technique := range s.techniques {
		if !technique.Available() {
			s.log.Info().
				Str("technique", technique.Name()).
				Msg("technique unavailable, skipping")
			continue
		}

		wg.Add(1)

		go func(i int, t Technique) {
			defer wg.Done()

			hosts, err := t.Discover(scanCtx, cidr)

			if err != nil {
				s.log.Warn().
					Err(err).
					Str("technique", t.Name()).
					Msg("discovery technique failed")
				return
			}

			results[i] = hosts
		}(i, technique)
	}

	wg.Wait()

	merged := map[string]struct{}{}
	hosts := []*DiscoveredHost{}

	for _, found := range results {
		for _, host := range found {
			mac := strings.ToLower(host.MAC)

			if mac == "" {
				continue
			}

			if _, ok := merged[mac]; ok {
				continue
			}

			host.MAC = mac
			merged[mac] = struct{}{}
			hosts = append(hosts, host)
		}
	}

	resolveWg := sync.WaitGroup{}

	for _, host := range hosts {
		if host.Vendor == "" {
			host.Vendor = s.vendors.Lookup(host.MAC)
		}

		if host.Hostname != "" {
			continue
		}

		resolveWg.Add(1)

		go func(h *DiscoveredHost) {
			defer resolveWg.Done()
			h.Hostname = resolveHostname(scanCtx, h.IP)
		}(host)
	}

	resolveWg.Wait()

	s.log.Info().
		Int("count", len(hosts)).
		Str("cidr", cidr).
		Msg("discovery complete")

	return hosts, nil
}

// VerifyHostOnline actively checks one host before it is declared
// offline: icmp ping first, then a directed arp probe, then the
// neighbor cache. A reply carrying a different mac than expected
// means another device now holds the ip, which counts as offline.
func (s *DiscoveryService) VerifyHostOnline(
	ctx context.Context,
	ip string,
	mac string,
) bool {
	if s.pinger.Ping(ctx, ip) {
		return true
	}

	if replyMAC := s.prober.Probe(ctx, ip); replyMAC != "" {
		if mac != "" && !strings.EqualFold(replyMAC, mac) {
			return false
		}

		return true
	}

	if cachedMAC := s.cache.Lookup(ctx, ip); cachedMAC != "" {
		if mac != "" && !strings.EqualFold(cachedMAC, mac) {
			return false
		}

		return true
	}

	return false
}

// Stop aborts any in flight scan
func (s *DiscoveryService) Stop() {
	s.cancel()
}

// resolveHostname does a best effort bounded reverse lookup for ip
func resolveHostname(ctx context.Context, ip string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, reverseLookupTimeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(lookupCtx, ip)

	if err != nil || len(names) == 0 {
		return ""
	}

	return strings.TrimSuffix(names[0], ".")
}
