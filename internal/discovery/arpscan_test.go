package discovery_test

import (
	"testing"

	"github.com/lanwarden/lanwarden/internal/discovery"
	"github.com/stretchr/testify/assert"
)

const arpScanOutput = `Interface: eth0, type: EN10MB, MAC: 11:22:33:44:55:66, IPv4: 192.168.1.5
Starting arp-scan 1.9.7 with 256 hosts (https://github.com/royhills/arp-scan)
192.168.1.1	a4:2b:b0:c9:12:77	TP-LINK TECHNOLOGIES CO.,LTD.
192.168.1.12	b8:27:eb:aa:bb:cc	Raspberry Pi Foundation
192.168.1.34	00:11:32:44:55:66	Synology Incorporated

3 packets received by filter, 0 packets dropped by kernel
Ending arp-scan 1.9.7: 256 hosts scanned in 1.932 seconds (132.51 hosts/sec). 3 responded
`

func TestParseArpScanOutput(t *testing.T) {
	t.Run("parses ip mac and vendor columns", func(st *testing.T) {
		hosts := discovery.ParseArpScanOutput(arpScanOutput)

		assert.Equal(st, 3, len(hosts))

		assert.Equal(st, "192.168.1.1", hosts[0].IP)
		assert.Equal(st, "a4:2b:b0:c9:12:77", hosts[0].MAC)
		assert.Equal(st, "TP-LINK TECHNOLOGIES CO.,LTD.", hosts[0].Vendor)
		assert.Equal(st, discovery.MethodArpScan, hosts[0].Method)

		assert.Equal(st, "Raspberry Pi Foundation", hosts[1].Vendor)
		assert.Equal(st, "Synology Incorporated", hosts[2].Vendor)
	})

	t.Run("normalizes uppercase macs", func(st *testing.T) {
		hosts := discovery.ParseArpScanOutput("10.0.0.9\tDE:AD:BE:EF:00:01\tAcme\n")

		assert.Equal(st, 1, len(hosts))
		assert.Equal(st, "de:ad:be:ef:00:01", hosts[0].MAC)
	})

	t.Run("hosts without a vendor column parse cleanly", func(st *testing.T) {
		hosts := discovery.ParseArpScanOutput("10.0.0.9\tde:ad:be:ef:00:01\n")

		assert.Equal(st, 1, len(hosts))
		assert.Equal(st, "", hosts[0].Vendor)
	})

	t.Run("returns empty slice for unparseable output", func(st *testing.T) {
		hosts := discovery.ParseArpScanOutput("no devices here\n")

		assert.Empty(st, hosts)
	})
}
