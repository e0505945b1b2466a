package enrich

import (
	"time"

	"github.com/lanwarden/lanwarden/internal/logger"
)

const (
	// probeTimeout bounds each tcp dial, dns lookup and http fetch
	probeTimeout = 2 * time.Second
	// ssdpWait is the listen window after the unicast m-search
	ssdpWait = 1500 * time.Millisecond
	// datagramTimeout bounds the netbios request/reply exchange
	datagramTimeout = time.Second
)

// NetworkProber is the production Prober; one instance is shared by
// every host enrichment
type NetworkProber struct {
	timeout time.Duration
	log     logger.Logger
}

// NewNetworkProber returns a prober using the default probe timeouts
func NewNetworkProber() *NetworkProber {
	return &NetworkProber{
		timeout: probeTimeout,
		log:     logger.New(),
	}
}
