package enrich

import (
	"context"
	"fmt"
	"sync"

	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/mdns"
)

const (
	probeCount = 5

	// hostBudgetFactor caps one host's whole enrichment at a generous
	// multiple of the per-probe timeout so a slow host cannot pin its
	// worker slot
	hostBudgetFactor = 6
)

// probeUpdate carries one probe's contribution back to the collector
type probeUpdate struct {
	hostnames    []string
	ports        []int
	portServices []string
	ssdp         map[string]string
	netbios      string
	http         map[string]string
}

// EnrichmentService fans the probe set out across a bounded worker
// pool, seeding each host from the shared mdns cache first
type EnrichmentService struct {
	ctx         context.Context
	cancel      context.CancelFunc
	resolver    mdns.Resolver
	fallback    mdns.Resolver
	cache       *mdns.ServiceCache
	prober      Prober
	concurrency int
	log         logger.Logger
}

// NewEnrichmentService returns a service probing at most concurrency
// hosts at a time. The resolver supplies pre-fetched mdns metadata;
// fallback is consulted once per batch when the resolver is absent or
// comes back empty.
func NewEnrichmentService(
	resolver mdns.Resolver,
	fallback mdns.Resolver,
	cache *mdns.ServiceCache,
	prober Prober,
	concurrency int,
) *EnrichmentService {
	ctx, cancel := context.WithCancel(context.Background())

	return &EnrichmentService{
		ctx:         ctx,
		cancel:      cancel,
		resolver:    resolver,
		fallback:    fallback,
		cache:       cache,
		prober:      prober,
		concurrency: concurrency,
		log:         logger.New(),
	}
}

// EnrichHosts probes every target and returns the merged enrichment
// keyed by ip. Only caller-supplied targets appear in the result; the
// probes never add hosts of their own.
func (s *EnrichmentService) EnrichHosts(
	ctx context.Context,
	targets []*Target,
) map[string]*HostEnrichment {
	results := map[string]*HostEnrichment{}

	if len(targets) == 0 {
		return results
	}

	enrichCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-enrichCtx.Done():
		}
	}()

	targetIPs := make([]string, 0, len(targets))

	for _, target := range targets {
		targetIPs = append(targetIPs, target.IP)
	}

	s.populateCache(enrichCtx, targetIPs)
	defer s.cache.Close()

	mux := sync.Mutex{}
	wg := sync.WaitGroup{}

	workers := make(chan struct{}, s.concurrency)

	for _, target := range targets {
		wg.Add(1)

		go func(target *Target) {
			defer wg.Done()

			workers <- struct{}{}
			defer func() { <-workers }()

			enrichment := s.enrichHost(enrichCtx, target)

			mux.Lock()
			results[target.IP] = enrichment
			mux.Unlock()
		}(target)
	}

	wg.Wait()

	s.log.Info().
		Int("hosts", len(results)).
		Msg("enrichment complete")

	return results
}

// Stop aborts any in flight enrichment batch
func (s *EnrichmentService) Stop() {
	s.cancel()
}

// populateCache fills the shared service cache for this batch, from
// avahi when installed, else from the embedded zeroconf browser
func (s *EnrichmentService) populateCache(ctx context.Context, targetIPs []string) {
	s.cache.Open()

	if s.resolver.Available() {
		hosts, err := s.resolver.Browse(ctx, targetIPs)

		if err == nil && len(hosts) > 0 {
			s.cache.Populate(hosts)

			s.log.Debug().
				Int("hosts", len(hosts)).
				Msg("mdns metadata from avahi")

			return
		}

		if err != nil {
			s.log.Warn().
				Err(err).
				Msg("avahi browse failed, falling back to zeroconf")
		}
	}

	hosts, err := s.fallback.Browse(ctx, targetIPs)

	if err != nil {
		s.log.Debug().
			Err(err).
			Msg("zeroconf fallback failed")
		return
	}

	s.cache.Populate(hosts)
}

// enrichHost runs the five probes for one target concurrently under
// the host budget; probes still in flight when the budget expires are
// abandoned, their late results land in the buffered channel and are
// dropped with it
func (s *EnrichmentService) enrichHost(
	ctx context.Context,
	target *Target,
) *HostEnrichment {
	hostCtx, cancel := context.WithTimeout(ctx, hostBudgetFactor*probeTimeout)
	defer cancel()

	enrichment := &HostEnrichment{
		IP:  target.IP,
		MAC: target.MAC,
	}

	s.seedFromCache(enrichment)

	updates := make(chan probeUpdate, probeCount)

	go func() {
		updates <- probeUpdate{hostnames: s.prober.LookupHostnames(hostCtx, target.IP)}
	}()

	go func() {
		ports, services := s.prober.ScanPorts(hostCtx, target.IP)
		updates <- probeUpdate{ports: ports, portServices: services}
	}()

	go func() {
		updates <- probeUpdate{ssdp: s.prober.QuerySSDP(hostCtx, target.IP)}
	}()

	go func() {
		updates <- probeUpdate{netbios: s.prober.QueryNetBIOS(hostCtx, target.IP)}
	}()

	go func() {
		updates <- probeUpdate{http: s.prober.FingerprintHTTP(hostCtx, target.IP)}
	}()

collect:
	for i := 0; i < probeCount; i++ {
		select {
		case update := <-updates:
			applyUpdate(enrichment, update)
		case <-hostCtx.Done():
			s.log.Debug().
				Str("ip", target.IP).
				Msg("host budget exhausted, abandoning remaining probes")
			break collect
		}
	}

	finalizeClass(enrichment)

	return enrichment
}

// seedFromCache applies pre-fetched mdns metadata before the probes
// run; the advertised friendly name goes to the front of the
// candidate list since it is usually the best name available
func (s *EnrichmentService) seedFromCache(e *HostEnrichment) {
	info := s.cache.Get(e.IP)

	if info == nil {
		return
	}

	for _, hostname := range info.Hostnames {
		e.AddHostname(hostname)
	}

	if friendly := info.FriendlyName(); friendly != "" {
		e.InsertHostname(friendly)
	}

	if info.Model != "" && e.Model == "" {
		e.Model = info.Model
	}

	if info.Manufacturer != "" && e.Manufacturer == "" {
		e.Manufacturer = info.Manufacturer
	}

	if info.DeviceClass != "" && e.DeviceClass == "" {
		e.DeviceClass = info.DeviceClass
	}

	for _, svc := range info.Services {
		name := mdns.DecodeServiceString(svc.Name)
		e.AddService(fmt.Sprintf("%s (%s)", name, svc.Type))
	}
}

// applyUpdate merges one probe result into the aggregate. The upnp
// description document is authoritative for manufacturer and model,
// so those two overwrite.
func applyUpdate(e *HostEnrichment, update probeUpdate) {
	for _, name := range update.hostnames {
		e.AddHostname(name)
	}

	if len(update.ports) > 0 {
		e.OpenPorts = update.ports
		e.PortServices = update.portServices
	}

	if len(update.ssdp) > 0 {
		e.SSDPInfo = update.ssdp

		if name := update.ssdp["friendly_name"]; name != "" {
			e.AddHostname(name)
		}

		if manufacturer := update.ssdp["manufacturer"]; manufacturer != "" {
			e.Manufacturer = manufacturer
		}

		if model := update.ssdp["model"]; model != "" {
			e.Model = model
		}
	}

	if update.netbios != "" {
		e.NetBIOSName = update.netbios
		e.AddHostname(update.netbios)
	}

	if len(update.http) > 0 {
		e.HTTPInfo = update.http
	}
}

// finalizeClass folds the http hints in, then falls back to the
// signature tables when no source set a class outright
func finalizeClass(e *HostEnrichment) {
	if hint, firm := HTTPClassHint(e.HTTPInfo); hint != "" && (firm || e.DeviceClass == "") {
		e.DeviceClass = hint
	}

	if e.DeviceClass == "" {
		e.DeviceClass = Classify(e)
	}
}
