package discovery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/lanwarden/lanwarden/internal/discovery"
	mock_discovery "github.com/lanwarden/lanwarden/internal/mock/discovery"
	"github.com/lanwarden/lanwarden/internal/oui"
	"github.com/stretchr/testify/assert"
)

func TestDiscoveryService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	newService := func() (
		*discovery.DiscoveryService,
		*mock_discovery.MockProber,
		*mock_discovery.MockTechnique,
		*mock_discovery.MockCacheReader,
		*mock_discovery.MockSweeper,
	) {
		prober := mock_discovery.NewMockProber(ctrl)
		sweeper := mock_discovery.NewMockTechnique(ctrl)
		cache := mock_discovery.NewMockCacheReader(ctrl)
		pinger := mock_discovery.NewMockSweeper(ctrl)

		service := discovery.NewDiscoveryService(
			prober,
			sweeper,
			cache,
			pinger,
			oui.NewRegistry(""),
		)

		return service, prober, sweeper, cache, pinger
	}

	t.Run("merges technique results with first writer precedence", func(st *testing.T) {
		service, prober, sweeper, cache, pinger := newService()

		arpHosts := []*discovery.DiscoveredHost{
			{
				IP:       "192.168.1.10",
				MAC:      "AA:BB:CC:DD:EE:FF",
				Hostname: "printer.local",
				Method:   discovery.MethodARP,
			},
		}

		sweepHosts := []*discovery.DiscoveredHost{
			// same device reported again with a stale claim
			{
				IP:       "192.168.1.99",
				MAC:      "aa:bb:cc:dd:ee:ff",
				Hostname: "stale.local",
				Method:   discovery.MethodArpScan,
			},
			{
				IP:       "192.168.1.20",
				MAC:      "11:22:33:44:55:66",
				Hostname: "nas.lan",
				Vendor:   "Synology",
				Method:   discovery.MethodArpScan,
			},
		}

		cacheHosts := []*discovery.DiscoveredHost{
			{
				IP:       "192.168.1.30",
				MAC:      "de:ad:be:ef:00:01",
				Hostname: "camera.local",
				Method:   discovery.MethodArpTable,
			},
		}

		prober.EXPECT().Available().Return(true)
		prober.EXPECT().
			Discover(gomock.Any(), "192.168.1.0/24").
			Return(arpHosts, nil)

		sweeper.EXPECT().Available().Return(true)
		sweeper.EXPECT().
			Discover(gomock.Any(), "192.168.1.0/24").
			Return(sweepHosts, nil)

		cache.EXPECT().Available().Return(true)
		cache.EXPECT().
			Discover(gomock.Any(), "192.168.1.0/24").
			Return(cacheHosts, nil)

		pinger.EXPECT().Available().Return(false)
		pinger.EXPECT().Name().Return(discovery.MethodPingSweep).AnyTimes()

		hosts, err := service.ScanSubnet(context.Background(), "192.168.1.0/24")

		assert.NoError(st, err)
		assert.Equal(st, 3, len(hosts))

		byMAC := map[string]*discovery.DiscoveredHost{}

		for _, h := range hosts {
			byMAC[h.MAC] = h
		}

		first := byMAC["aa:bb:cc:dd:ee:ff"]

		assert.NotNil(st, first)
		assert.Equal(st, "192.168.1.10", first.IP)
		assert.Equal(st, "printer.local", first.Hostname)
		assert.Equal(st, discovery.MethodARP, first.Method)

		assert.Equal(st, "Synology", byMAC["11:22:33:44:55:66"].Vendor)
		assert.Equal(st, "camera.local", byMAC["de:ad:be:ef:00:01"].Hostname)
	})

	t.Run("fills missing vendors from the oui registry", func(st *testing.T) {
		service, prober, sweeper, cache, pinger := newService()

		prober.EXPECT().Available().Return(true)
		prober.EXPECT().
			Discover(gomock.Any(), gomock.Any()).
			Return([]*discovery.DiscoveredHost{
				{
					IP:       "192.168.1.12",
					MAC:      "b8:27:eb:aa:bb:cc",
					Hostname: "pi.local",
					Method:   discovery.MethodARP,
				},
			}, nil)

		sweeper.EXPECT().Available().Return(false)
		sweeper.EXPECT().Name().Return(discovery.MethodArpScan).AnyTimes()

		cache.EXPECT().Available().Return(false)
		cache.EXPECT().Name().Return(discovery.MethodArpTable).AnyTimes()

		pinger.EXPECT().Available().Return(false)
		pinger.EXPECT().Name().Return(discovery.MethodPingSweep).AnyTimes()

		hosts, err := service.ScanSubnet(context.Background(), "192.168.1.0/24")

		assert.NoError(st, err)
		assert.Equal(st, 1, len(hosts))
		assert.Equal(st, "Raspberry Pi", hosts[0].Vendor)
	})

	t.Run("a failing technique never aborts the scan", func(st *testing.T) {
		service, prober, sweeper, cache, pinger := newService()

		prober.EXPECT().Available().Return(true)
		prober.EXPECT().
			Discover(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("pcap: permission denied"))
		prober.EXPECT().Name().Return(discovery.MethodARP).AnyTimes()

		sweeper.EXPECT().Available().Return(false)
		sweeper.EXPECT().Name().Return(discovery.MethodArpScan).AnyTimes()

		cache.EXPECT().Available().Return(true)
		cache.EXPECT().
			Discover(gomock.Any(), gomock.Any()).
			Return([]*discovery.DiscoveredHost{
				{
					IP:       "192.168.1.30",
					MAC:      "de:ad:be:ef:00:01",
					Hostname: "camera.local",
				},
			}, nil)

		pinger.EXPECT().Available().Return(false)
		pinger.EXPECT().Name().Return(discovery.MethodPingSweep).AnyTimes()

		hosts, err := service.ScanSubnet(context.Background(), "192.168.1.0/24")

		assert.NoError(st, err)
		assert.Equal(st, 1, len(hosts))
		assert.Equal(st, "de:ad:be:ef:00:01", hosts[0].MAC)
	})

	t.Run("hosts without a mac are dropped", func(st *testing.T) {
		service, prober, sweeper, cache, pinger := newService()

		prober.EXPECT().Available().Return(true)
		prober.EXPECT().
			Discover(gomock.Any(), gomock.Any()).
			Return([]*discovery.DiscoveredHost{
				{IP: "192.168.1.50", MAC: "", Hostname: "ghost.local"},
			}, nil)

		sweeper.EXPECT().Available().Return(false)
		sweeper.EXPECT().Name().Return(discovery.MethodArpScan).AnyTimes()

		cache.EXPECT().Available().Return(false)
		cache.EXPECT().Name().Return(discovery.MethodArpTable).AnyTimes()

		pinger.EXPECT().Available().Return(false)
		pinger.EXPECT().Name().Return(discovery.MethodPingSweep).AnyTimes()

		hosts, err := service.ScanSubnet(context.Background(), "192.168.1.0/24")

		assert.NoError(st, err)
		assert.Empty(st, hosts)
	})

	t.Run("verify prefers ping", func(st *testing.T) {
		service, _, _, _, pinger := newService()

		pinger.EXPECT().Ping(gomock.Any(), "192.168.1.10").Return(true)

		online := service.VerifyHostOnline(
			context.Background(),
			"192.168.1.10",
			"aa:bb:cc:dd:ee:ff",
		)

		assert.True(st, online)
	})

	t.Run("verify falls back to a directed arp probe", func(st *testing.T) {
		service, prober, _, _, pinger := newService()

		pinger.EXPECT().Ping(gomock.Any(), "192.168.1.10").Return(false)
		prober.EXPECT().
			Probe(gomock.Any(), "192.168.1.10").
			Return("aa:bb:cc:dd:ee:ff")

		online := service.VerifyHostOnline(
			context.Background(),
			"192.168.1.10",
			"AA:BB:CC:DD:EE:FF",
		)

		assert.True(st, online)
	})

	t.Run("a different mac on the ip means offline", func(st *testing.T) {
		service, prober, _, _, pinger := newService()

		pinger.EXPECT().Ping(gomock.Any(), "192.168.1.10").Return(false)
		prober.EXPECT().
			Probe(gomock.Any(), "192.168.1.10").
			Return("11:22:33:44:55:66")

		online := service.VerifyHostOnline(
			context.Background(),
			"192.168.1.10",
			"aa:bb:cc:dd:ee:ff",
		)

		assert.False(st, online)
	})

	t.Run("verify falls back to the neighbor cache", func(st *testing.T) {
		service, prober, _, cache, pinger := newService()

		pinger.EXPECT().Ping(gomock.Any(), "192.168.1.10").Return(false)
		prober.EXPECT().Probe(gomock.Any(), "192.168.1.10").Return("")
		cache.EXPECT().
			Lookup(gomock.Any(), "192.168.1.10").
			Return("aa:bb:cc:dd:ee:ff")

		online := service.VerifyHostOnline(
			context.Background(),
			"192.168.1.10",
			"aa:bb:cc:dd:ee:ff",
		)

		assert.True(st, online)
	})

	t.Run("verify reports offline when nothing answers", func(st *testing.T) {
		service, prober, _, cache, pinger := newService()

		pinger.EXPECT().Ping(gomock.Any(), "192.168.1.10").Return(false)
		prober.EXPECT().Probe(gomock.Any(), "192.168.1.10").Return("")
		cache.EXPECT().Lookup(gomock.Any(), "192.168.1.10").Return("")

		online := service.VerifyHostOnline(
			context.Background(),
			"192.168.1.10",
			"aa:bb:cc:dd:ee:ff",
		)

		assert.False(st, online)
	})
}
