package mdns

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/util"
)

// fallbackServiceTypes browsed by the embedded fallback when
// avahi-browse is not installed
var fallbackServiceTypes = []string{
	"_http._tcp",
	"_https._tcp",
	"_airplay._tcp",
	"_raop._tcp",
	"_googlecast._tcp",
	"_spotify-connect._tcp",
	"_homekit._tcp",
	"_hap._tcp",
	"_printer._tcp",
	"_ipp._tcp",
	"_pdl-datastream._tcp",
	"_scanner._tcp",
	"_smb._tcp",
	"_afpovertcp._tcp",
	"_ssh._tcp",
	"_device-info._tcp",
	"_companion-link._tcp",
	"_sonos._tcp",
}

// ZeroconfBrowser is the embedded fallback browser; it queries a fixed
// list of common service types in one bounded window
type ZeroconfBrowser struct {
	log    logger.Logger
	window time.Duration
}

// NewZeroconfBrowser returns a fallback browser whose whole browse is
// bounded by window
func NewZeroconfBrowser(window time.Duration) *ZeroconfBrowser {
	return &ZeroconfBrowser{
		log:    logger.New(),
		window: window,
	}
}

// Available always reports true; the embedded browser needs no system
// binary
func (b *ZeroconfBrowser) Available() bool {
	return true
}

// Browse queries every fallback service type concurrently within one
// window and aggregates IPv4 results by responding ip
func (b *ZeroconfBrowser) Browse(
	ctx context.Context,
	targetIPs []string,
) (map[string]*HostInfo, error) {
	browseCtx, cancel := context.WithTimeout(ctx, b.window)
	defer cancel()

	hosts := map[string]*HostInfo{}
	mux := sync.Mutex{}
	wg := sync.WaitGroup{}

	for _, serviceType := range fallbackServiceTypes {
		resolver, err := zeroconf.NewResolver(nil)

		if err != nil {
			return nil, err
		}

		entries := make(chan *zeroconf.ServiceEntry)

		wg.Add(1)

		go func(svcType string, results chan *zeroconf.ServiceEntry) {
			defer wg.Done()

			for entry := range results {
				record := recordFromEntry(svcType, entry)

				if record == nil {
					continue
				}

				if len(targetIPs) > 0 && !util.SliceIncludes(targetIPs, record.IP) {
					continue
				}

				mux.Lock()

				info, ok := hosts[record.IP]

				if !ok {
					info = &HostInfo{IP: record.IP}
					hosts[record.IP] = info
				}

				info.Services = append(info.Services, record)
				info.AddHostname(strings.TrimSuffix(record.Hostname, "."))
				info.AddServiceName(record.Name)
				applyServiceInfo(info, record)

				mux.Unlock()
			}
		}(serviceType, entries)

		if err := resolver.Browse(browseCtx, serviceType, "local.", entries); err != nil {
			b.log.Debug().
				Err(err).
				Str("service", serviceType).
				Msg("fallback browse failed")
			close(entries)
		}
	}

	wg.Wait()

	b.log.Debug().
		Int("hosts", len(hosts)).
		Msg("zeroconf fallback browse complete")

	return hosts, nil
}

// recordFromEntry converts a zeroconf entry into the shared record
// shape, dropping entries without an IPv4 address
func recordFromEntry(serviceType string, entry *zeroconf.ServiceEntry) *ServiceRecord {
	if len(entry.AddrIPv4) == 0 {
		return nil
	}

	ip := entry.AddrIPv4[0].String()

	if strings.HasPrefix(ip, "127.") || strings.HasPrefix(ip, "169.254.") {
		return nil
	}

	txt := map[string]string{}

	for _, token := range entry.Text {
		if key, value, found := strings.Cut(token, "="); found {
			txt[key] = value
		} else if token != "" {
			txt[token] = "true"
		}
	}

	// dns-sd label escapes from the wire
	instance := strings.NewReplacer(`\ `, " ", `\.`, ".").Replace(entry.Instance)

	return &ServiceRecord{
		Protocol:   "IPv4",
		Name:       instance,
		Type:       serviceType,
		Domain:     entry.Domain,
		Hostname:   entry.HostName,
		IP:         ip,
		Port:       entry.Port,
		TxtRecords: txt,
	}
}
