package engine

import (
	"context"
	"sync"
	"time"

	"github.com/lanwarden/lanwarden/internal/config"
	"github.com/lanwarden/lanwarden/internal/device"
	"github.com/lanwarden/lanwarden/internal/discovery"
	"github.com/lanwarden/lanwarden/internal/enrich"
	"github.com/lanwarden/lanwarden/internal/event"
	"github.com/lanwarden/lanwarden/internal/exception"
	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/util"
)

// fallbackSubnet used when no subnet is configured and autodetection
// from the default route fails
const fallbackSubnet = "192.168.1.0/24"

// Session method tags
const (
	methodBasic    = "arp"
	methodEnhanced = "arp+enhanced"
)

// minEnrichBudget floors the whole-batch enrichment deadline so short
// scan intervals cannot starve the deep probes
const minEnrichBudget = 10 * time.Second

// ReconcilerService drives the scan loop: discover the subnet, enrich
// what answered, then reconcile the device registry and emit events
// for every observed transition
type ReconcilerService struct {
	ctx      context.Context
	cancel   context.CancelFunc
	conf     *config.Config
	scanner  discovery.Service
	enricher enrich.Service
	store    device.Repo
	events   event.Manager
	busy     sync.Mutex
	log      logger.Logger
}

// NewReconcilerService returns a new reconciler service
func NewReconcilerService(
	conf *config.Config,
	scanner discovery.Service,
	enricher enrich.Service,
	store device.Repo,
	events event.Manager,
) *ReconcilerService {
	ctx, cancel := context.WithCancel(context.Background())

	return &ReconcilerService{
		ctx:      ctx,
		cancel:   cancel,
		conf:     conf,
		scanner:  scanner,
		enricher: enricher,
		store:    store,
		events:   events,
		log:      logger.New(),
	}
}

// Start runs reconciliation cycles until Stop is called. The first
// cycle begins immediately; each later cycle starts a full interval
// after the previous one finished, so a slow cycle never overlaps the
// next one.
func (s *ReconcilerService) Start() {
	timer := time.NewTimer(0)

	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			if _, err := s.PerformScan(s.ctx, "", s.conf.DeepScan); err != nil {
				s.log.Error().
					Err(err).
					Msg("reconciliation cycle failed")
			}

			timer.Reset(s.conf.ScanInterval)
		}
	}
}

// Stop ends the scan loop and aborts any in flight cycle
func (s *ReconcilerService) Stop() {
	s.cancel()
	s.scanner.Stop()
	s.enricher.Stop()
}

// PerformScan runs one reconciliation cycle against subnet, or the
// configured / autodetected subnet when empty. Only one cycle runs at
// a time; a second caller gets exception.ErrScanInProgress. A failed
// cycle marks its session failed and emits ScanFailed before
// returning the error.
func (s *ReconcilerService) PerformScan(
	ctx context.Context,
	subnet string,
	deep bool,
) (*ScanResult, error) {
	if !s.busy.TryLock() {
		return nil, exception.ErrScanInProgress
	}

	defer s.busy.Unlock()

	if subnet == "" {
		subnet = s.defaultSubnet()
	}

	session, err := s.store.OpenSession(subnet, scanMethod(deep))

	if err != nil {
		return nil, err
	}

	s.events.Publish(event.ScanStarted, event.ScanStartedPayload{
		SessionID: session.ID,
		Subnet:    subnet,
	})

	s.log.Info().
		Uint("session", session.ID).
		Str("subnet", subnet).
		Bool("deep", deep).
		Msg("scan started")

	result, err := s.runCycle(ctx, session, subnet, deep)

	if err != nil {
		s.log.Error().
			Err(err).
			Uint("session", session.ID).
			Msg("scan failed")

		completeErr := s.store.CompleteSession(
			session.ID,
			device.SessionFailed,
			device.SessionCounts{},
			err.Error(),
		)

		if completeErr != nil {
			s.log.Error().
				Err(completeErr).
				Uint("session", session.ID).
				Msg("failed to record scan failure")
		}

		s.events.Publish(event.ScanFailed, event.ScanFailedPayload{
			SessionID: session.ID,
			Error:     err.Error(),
		})

		return nil, err
	}

	s.events.Publish(event.ScanCompleted, event.ScanCompletedPayload{
		SessionID:     result.SessionID,
		DevicesFound:  result.DevicesFound,
		DevicesOnline: result.DevicesOnline,
		DevicesNew:    result.DevicesNew,
		Subnet:        result.Subnet,
	})

	s.log.Info().
		Uint("session", session.ID).
		Int("found", result.DevicesFound).
		Int("online", result.DevicesOnline).
		Int("new", result.DevicesNew).
		Msg("scan completed")

	return result, nil
}

// runCycle performs discovery, enrichment and registry reconciliation
// for one session, completing the session row on success
func (s *ReconcilerService) runCycle(
	ctx context.Context,
	session *device.ScanSession,
	subnet string,
	deep bool,
) (*ScanResult, error) {
	discovered, err := s.scanner.ScanSubnet(ctx, subnet)

	if err != nil {
		return nil, err
	}

	enrichments := map[string]*enrich.HostEnrichment{}

	if deep && len(discovered) > 0 {
		targets := make([]*enrich.Target, 0, len(discovered))

		for _, host := range discovered {
			targets = append(targets, &enrich.Target{IP: host.IP, MAC: host.MAC})
		}

		enrichCtx, cancel := context.WithTimeout(ctx, s.enrichBudget())
		enrichments = s.enricher.EnrichHosts(enrichCtx, targets)
		cancel()
	}

	counts := device.SessionCounts{Found: len(discovered)}

	err = s.store.Transaction(func(repo device.Repo) error {
		known, err := repo.ListAllDevices()

		if err != nil {
			return err
		}

		seen := map[string]*discovery.DiscoveredHost{}

		for _, host := range discovered {
			seen[host.MAC] = host
		}

		if err := s.reapAbsent(ctx, repo, known, seen); err != nil {
			return err
		}

		byMAC := map[string]*device.Device{}

		for _, dev := range known {
			byMAC[dev.MAC] = dev
		}

		for _, host := range discovered {
			counts.Online++

			isNew, err := s.recordPresence(
				repo,
				byMAC[host.MAC],
				host,
				enrichments[host.IP],
			)

			if err != nil {
				return err
			}

			if isNew {
				counts.New++
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	err = s.store.CompleteSession(session.ID, device.SessionCompleted, counts, "")

	if err != nil {
		return nil, err
	}

	return &ScanResult{
		SessionID:     session.ID,
		Status:        device.SessionCompleted,
		DevicesFound:  counts.Found,
		DevicesOnline: counts.Online,
		DevicesNew:    counts.New,
		Subnet:        subnet,
	}, nil
}

// reapAbsent handles every known device the cycle did not see. A
// device seen this cycle has its missed counter cleared; an online
// device missing from the cycle accrues a missed scan, and once the
// grace allowance is spent it is actively verified before being
// marked offline.
func (s *ReconcilerService) reapAbsent(
	ctx context.Context,
	repo device.Repo,
	known []*device.Device,
	seen map[string]*discovery.DiscoveredHost,
) error {
	for _, dev := range known {
		if _, present := seen[dev.MAC]; present {
			if dev.MissedScans != 0 {
				dev.MissedScans = 0

				if _, err := repo.UpsertDevice(dev); err != nil {
					return err
				}
			}

			continue
		}

		if !dev.IsOnline {
			continue
		}

		dev.MissedScans++

		if dev.MissedScans < s.conf.OfflineGraceScans {
			if _, err := repo.UpsertDevice(dev); err != nil {
				return err
			}

			continue
		}

		if s.scanner.VerifyHostOnline(ctx, dev.IP, dev.MAC) {
			dev.MissedScans = 0

			if _, err := repo.UpsertDevice(dev); err != nil {
				return err
			}

			continue
		}

		dev.IsOnline = false
		dev.MissedScans = 0

		updated, err := repo.UpsertDevice(dev)

		if err != nil {
			return err
		}

		evt := &device.ScanEvent{
			DeviceID:  updated.ID,
			EventType: device.EventDisconnected,
			IP:        updated.IP,
			Method:    discovery.MethodARP,
		}

		if err := repo.AppendEvent(evt); err != nil {
			return err
		}

		s.events.Publish(event.DeviceDisconnected, event.DeviceDisconnectedPayload{
			DeviceID: updated.ID,
			MAC:      updated.MAC,
			Hostname: eventHostname(updated),
		})

		s.log.Info().
			Str("mac", updated.MAC).
			Str("ip", updated.IP).
			Msg("device went offline")
	}

	return nil
}

// recordPresence folds one discovered host into the registry.
// Returns true when the mac was never seen before.
func (s *ReconcilerService) recordPresence(
	repo device.Repo,
	existing *device.Device,
	host *discovery.DiscoveredHost,
	enrichment *enrich.HostEnrichment,
) (bool, error) {
	obs := buildObservation(host, enrichment)
	now := time.Now()

	if existing == nil {
		created := &device.Device{
			MAC:       host.MAC,
			IsKnown:   false,
			FirstSeen: now,
		}

		if err := applyObservation(created, obs, now); err != nil {
			return false, err
		}

		saved, err := repo.UpsertDevice(created)

		if err != nil {
			return false, err
		}

		evt := &device.ScanEvent{
			DeviceID:     saved.ID,
			EventType:    device.EventConnected,
			IP:           host.IP,
			ResponseTime: host.ResponseTime,
			Method:       host.Method,
		}

		if err := repo.AppendEvent(evt); err != nil {
			return false, err
		}

		s.events.Publish(event.DeviceNew, event.DeviceNewPayload{
			DeviceID: saved.ID,
			MAC:      saved.MAC,
			IP:       saved.IP,
			Hostname: saved.Hostname,
			Vendor:   saved.Vendor,
		})

		s.log.Info().
			Str("mac", saved.MAC).
			Str("ip", saved.IP).
			Str("vendor", saved.Vendor).
			Msg("new device")

		return true, nil
	}

	wasOnline := existing.IsOnline
	oldIP := existing.IP

	if err := applyObservation(existing, obs, now); err != nil {
		return false, err
	}

	saved, err := repo.UpsertDevice(existing)

	if err != nil {
		return false, err
	}

	if !wasOnline {
		evt := &device.ScanEvent{
			DeviceID:     saved.ID,
			EventType:    device.EventConnected,
			IP:           host.IP,
			ResponseTime: host.ResponseTime,
			Method:       host.Method,
		}

		if err := repo.AppendEvent(evt); err != nil {
			return false, err
		}

		s.events.Publish(event.DeviceConnected, event.DeviceConnectedPayload{
			DeviceID: saved.ID,
			MAC:      saved.MAC,
			IP:       saved.IP,
			Hostname: eventHostname(saved),
		})
	}

	if oldIP != "" && oldIP != host.IP {
		evt := &device.ScanEvent{
			DeviceID:  saved.ID,
			EventType: device.EventIPChanged,
			IP:        host.IP,
			OldIP:     oldIP,
			Method:    host.Method,
		}

		if err := repo.AppendEvent(evt); err != nil {
			return false, err
		}

		s.events.Publish(event.DeviceIPChanged, event.DeviceIPChangedPayload{
			DeviceID: saved.ID,
			MAC:      saved.MAC,
			OldIP:    oldIP,
			NewIP:    host.IP,
		})

		s.log.Info().
			Str("mac", saved.MAC).
			Str("old", oldIP).
			Str("new", host.IP).
			Msg("device changed address")
	}

	return false, nil
}

// defaultSubnet resolves the subnet for a cycle: configuration first,
// then the network of the default route
func (s *ReconcilerService) defaultSubnet() string {
	if s.conf.CIDR != "" {
		return s.conf.CIDR
	}

	info, err := util.GetNetworkInfo()

	if err != nil {
		s.log.Warn().
			Err(err).
			Str("subnet", fallbackSubnet).
			Msg("network autodetect failed, using fallback subnet")

		return fallbackSubnet
	}

	return info.Cidr
}

// enrichBudget bounds a whole enrichment batch to half the scan
// interval, floored at minEnrichBudget
func (s *ReconcilerService) enrichBudget() time.Duration {
	budget := s.conf.ScanInterval / 2

	if budget < minEnrichBudget {
		budget = minEnrichBudget
	}

	return budget
}

func scanMethod(deep bool) string {
	if deep {
		return methodEnhanced
	}

	return methodBasic
}

// eventHostname names a device in connect and disconnect payloads
func eventHostname(dev *device.Device) string {
	if dev.Hostname != "" {
		return dev.Hostname
	}

	return dev.CustomName
}
