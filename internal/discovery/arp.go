package discovery

import (
	"bytes"
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/util"
	"github.com/projectdiscovery/mapcidr"
)

const (
	arpRetryDelay   = 500 * time.Millisecond
	arpProbeTimeout = 2 * time.Second
	arpProbeRetries = 2
)

// ARPProber broadcasts arp requests on the local segment and collects
// replies from live hosts. It also answers directed probes for single
// addresses during offline verification.
type ARPProber struct {
	networkInfo *util.NetworkInfo
	retries     int
	timeout     time.Duration
	log         logger.Logger
}

// NewARPProber returns a prober sweeping with the given retry count
// and per attempt reply window
func NewARPProber(
	networkInfo *util.NetworkInfo,
	retries int,
	timeout time.Duration,
) *ARPProber {
	return &ARPProber{
		networkInfo: networkInfo,
		retries:     retries,
		timeout:     timeout,
		log:         logger.New(),
	}
}

// Name implements Technique
func (p *ARPProber) Name() string {
	return MethodARP
}

// Available reports whether we know enough about the local interface
// to write raw packets
func (p *ARPProber) Available() bool {
	return p.networkInfo != nil && p.networkInfo.Interface != nil
}

// Discover sweeps cidr with broadcast arp requests, one sweep per
// configured attempt, and returns every distinct host that replied
// within the collection window
func (p *ARPProber) Discover(
	ctx context.Context,
	cidr string,
) ([]*DiscoveredHost, error) {
	targets, err := mapcidr.IPAddresses(cidr)

	if err != nil {
		return nil, err
	}

	handle, err := pcap.OpenLive(
		p.networkInfo.Interface.Name,
		65536,
		true,
		pcap.BlockForever,
	)

	if err != nil {
		return nil, err
	}

	targetSet := map[string]struct{}{}

	for _, t := range targets {
		targetSet[t] = struct{}{}
	}

	found := map[string]*DiscoveredHost{}
	mux := sync.Mutex{}
	done := make(chan struct{})
	start := time.Now()

	src := gopacket.NewPacketSource(handle, layers.LayerTypeEthernet)

	go func() {
		defer close(done)

		for packet := range src.Packets() {
			arpLayer := packet.Layer(layers.LayerTypeARP)

			if arpLayer == nil {
				continue
			}

			p.handleReply(arpLayer.(*layers.ARP), targetSet, found, &mux, start)
		}
	}()

sweep:
	for attempt := 0; attempt < p.retries; attempt++ {
		if err := p.writeRequests(handle, targets); err != nil {
			p.log.Error().Err(err).Msg("failed to write arp requests")
			break
		}

		select {
		case <-ctx.Done():
			break sweep
		case <-time.After(p.timeout):
		}

		if attempt < p.retries-1 {
			time.Sleep(arpRetryDelay)
		}
	}

	// closing the handle ends the collector's packet stream
	handle.Close()
	<-done

	hosts := make([]*DiscoveredHost, 0, len(found))

	for _, host := range found {
		hosts = append(hosts, host)
	}

	return hosts, nil
}

// Probe sends directed arp requests for a single ip and returns the
// replying mac, or empty string when nothing answers in time
func (p *ARPProber) Probe(ctx context.Context, ip string) string {
	if !p.Available() {
		return ""
	}

	handle, err := pcap.OpenLive(
		p.networkInfo.Interface.Name,
		65536,
		true,
		pcap.BlockForever,
	)

	if err != nil {
		p.log.Warn().Err(err).Msg("failed to open capture handle for probe")
		return ""
	}

	defer handle.Close()

	src := gopacket.NewPacketSource(handle, layers.LayerTypeEthernet)
	replyChan := make(chan string, 1)

	go func() {
		for packet := range src.Packets() {
			arpLayer := packet.Layer(layers.LayerTypeARP)

			if arpLayer == nil {
				continue
			}

			arp := arpLayer.(*layers.ARP)

			if arp.Operation != layers.ARPReply {
				continue
			}

			if net.IP(arp.SourceProtAddress).String() != ip {
				continue
			}

			replyChan <- net.HardwareAddr(arp.SourceHwAddress).String()

			return
		}
	}()

	for attempt := 0; attempt < arpProbeRetries; attempt++ {
		if err := p.writeRequests(handle, []string{ip}); err != nil {
			return ""
		}

		select {
		case mac := <-replyChan:
			return mac
		case <-ctx.Done():
			return ""
		case <-time.After(arpProbeTimeout):
		}
	}

	return ""
}

func (p *ARPProber) handleReply(
	arp *layers.ARP,
	targets map[string]struct{},
	found map[string]*DiscoveredHost,
	mux *sync.Mutex,
	start time.Time,
) {
	if arp.Operation != layers.ARPReply {
		return
	}

	if bytes.Equal(
		[]byte(p.networkInfo.Interface.HardwareAddr),
		arp.SourceHwAddress,
	) {
		// a reply we sent ourselves
		return
	}

	ip := net.IP(arp.SourceProtAddress).String()
	mac := net.HardwareAddr(arp.SourceHwAddress).String()

	if _, ok := targets[ip]; !ok {
		return
	}

	mux.Lock()
	defer mux.Unlock()

	if _, ok := found[mac]; ok {
		return
	}

	found[mac] = &DiscoveredHost{
		IP:           ip,
		MAC:          mac,
		ResponseTime: float64(time.Since(start).Milliseconds()),
		Method:       MethodARP,
	}
}

func (p *ARPProber) writeRequests(handle *pcap.Handle, targets []string) error {
	eth := layers.Ethernet{
		SrcMAC:       p.networkInfo.Interface.HardwareAddr,
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeARP,
	}

	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte(p.networkInfo.Interface.HardwareAddr),
		SourceProtAddress: []byte(p.networkInfo.UserIP.To4()),
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
	}

	buf := gopacket.NewSerializeBuffer()

	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}

	for _, ip := range targets {
		target := net.ParseIP(ip).To4()

		if target == nil {
			continue
		}

		arp.DstProtAddress = []byte(target)

		if err := gopacket.SerializeLayers(buf, opts, &eth, &arp); err != nil {
			return err
		}

		if err := handle.WritePacketData(buf.Bytes()); err != nil {
			p.log.Error().Err(err).Msg("failed to send arp request")
		}
	}

	return nil
}
