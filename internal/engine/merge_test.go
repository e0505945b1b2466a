package engine_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/lanwarden/lanwarden/internal/config"
	"github.com/lanwarden/lanwarden/internal/device"
	"github.com/lanwarden/lanwarden/internal/discovery"
	"github.com/lanwarden/lanwarden/internal/engine"
	"github.com/lanwarden/lanwarden/internal/enrich"
	"github.com/lanwarden/lanwarden/internal/event"
	mock_discovery "github.com/lanwarden/lanwarden/internal/mock/discovery"
	mock_enrich "github.com/lanwarden/lanwarden/internal/mock/enrich"
	"github.com/lanwarden/lanwarden/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func TestMergePolicy(t *testing.T) {
	testDBFile := "merge.db"

	defer func() {
		os.RemoveAll(testDBFile)
		os.RemoveAll(testDBFile + "-wal")
		os.RemoveAll(testDBFile + "-shm")
	}()

	db, err := test_util.GetDBConnection(testDBFile)

	if err != nil {
		t.Logf("failed to create test db: %s", err.Error())
		t.FailNow()
	}

	if err := test_util.Migrate(
		db,
		&device.Device{},
		&device.ScanEvent{},
		&device.ScanSession{},
	); err != nil {
		t.Logf("failed to migrate test db: %s", err.Error())
		t.FailNow()
	}

	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	scanner := mock_discovery.NewMockService(ctrl)
	enricher := mock_enrich.NewMockService(ctrl)
	repo := device.NewSqliteRepo(db)

	conf := &config.Config{
		CIDR:              "10.0.0.0/24",
		ScanInterval:      120 * time.Second,
		OfflineGraceScans: 3,
		DeepScan:          true,
	}

	service := engine.NewReconcilerService(
		conf,
		scanner,
		enricher,
		repo,
		event.NewEventManager(),
	)

	nas := &discovery.DiscoveredHost{
		IP:     "10.0.0.5",
		MAC:    "00:11:32:9a:bb:01",
		Method: discovery.MethodARP,
	}

	camera := &discovery.DiscoveredHost{
		IP:       "10.0.0.9",
		MAC:      "dc:a6:32:00:11:22",
		Hostname: "camera.local",
		Vendor:   "Raspberry Pi Trading Ltd",
		Method:   discovery.MethodARP,
	}

	runCycle := func(enrichments map[string]*enrich.HostEnrichment) {
		scanner.EXPECT().
			ScanSubnet(gomock.Any(), "10.0.0.0/24").
			Return([]*discovery.DiscoveredHost{nas, camera}, nil)

		enricher.EXPECT().
			EnrichHosts(gomock.Any(), gomock.Any()).
			Return(enrichments)

		_, err := service.PerformScan(context.Background(), "", true)

		assert.NoError(t, err)
	}

	manyServices := []string{}

	for i := 1; i <= 12; i++ {
		manyServices = append(manyServices, fmt.Sprintf("Svc %d (_svc._tcp)", i))
	}

	t.Run("fills every attribute on first sight", func(st *testing.T) {
		runCycle(map[string]*enrich.HostEnrichment{
			nas.IP: {
				IP:           nas.IP,
				MAC:          nas.MAC,
				Hostnames:    []string{"nas-unit.lan"},
				Manufacturer: "Synology",
				Model:        "DS920+",
				DeviceClass:  "Synology NAS",
				OpenPorts:    []int{445, 5001},
				Services:     manyServices,
			},
		})

		found, err := repo.GetDeviceByMAC(nas.MAC)

		assert.NoError(st, err)
		assert.Equal(st, "nas-unit.lan", found.Hostname)
		assert.Equal(st, "nas-unit.lan", found.FriendlyName)
		// no oui vendor was discovered, the advertised manufacturer
		// stands in
		assert.Equal(st, "Synology", found.Vendor)
		assert.Equal(st, "Synology", found.Manufacturer)
		assert.Equal(st, "DS920+", found.Model)
		assert.Equal(st, "Synology NAS", found.DeviceClass)
		assert.Equal(st, []int{445, 5001}, found.OpenPortList())
		assert.Len(st, found.ServiceList(), 10)
		assert.Equal(st, manyServices[:10], found.ServiceList())

		cam, err := repo.GetDeviceByMAC(camera.MAC)

		assert.NoError(st, err)
		assert.Equal(st, "camera.local", cam.Hostname)
		assert.Equal(st, "Raspberry Pi Trading Ltd", cam.Vendor)
	})

	t.Run("identity fields only fill empty slots", func(st *testing.T) {
		runCycle(map[string]*enrich.HostEnrichment{
			nas.IP: {
				IP:           nas.IP,
				MAC:          nas.MAC,
				Hostnames:    []string{"renamed.lan"},
				Manufacturer: "Synology Inc.",
				Model:        "DS1821+",
				DeviceClass:  "NAS / File Server",
			},
		})

		found, err := repo.GetDeviceByMAC(nas.MAC)

		assert.NoError(st, err)
		assert.Equal(st, "nas-unit.lan", found.Hostname)
		assert.Equal(st, "nas-unit.lan", found.FriendlyName)
		assert.Equal(st, "Synology", found.Manufacturer)
		assert.Equal(st, "DS920+", found.Model)
		assert.Equal(st, "Synology NAS", found.DeviceClass)
	})

	t.Run("empty cycles never clear ports or services", func(st *testing.T) {
		runCycle(map[string]*enrich.HostEnrichment{})

		found, err := repo.GetDeviceByMAC(nas.MAC)

		assert.NoError(st, err)
		assert.Equal(st, []int{445, 5001}, found.OpenPortList())
		assert.Len(st, found.ServiceList(), 10)
	})

	t.Run("hostnames upgrade only from mdns placeholder names", func(st *testing.T) {
		runCycle(map[string]*enrich.HostEnrichment{
			camera.IP: {
				IP:        camera.IP,
				MAC:       camera.MAC,
				Hostnames: []string{"camera.lan"},
			},
		})

		cam, err := repo.GetDeviceByMAC(camera.MAC)

		assert.NoError(st, err)
		// the stored .local name upgrades to a resolved one
		assert.Equal(st, "camera.lan", cam.Hostname)

		found, err := repo.GetDeviceByMAC(nas.MAC)

		assert.NoError(st, err)
		assert.Equal(st, "nas-unit.lan", found.Hostname)
	})

	t.Run("fresh port and service sets overwrite stale ones", func(st *testing.T) {
		runCycle(map[string]*enrich.HostEnrichment{
			nas.IP: {
				IP:        nas.IP,
				MAC:       nas.MAC,
				OpenPorts: []int{22, 445},
				Services:  []string{"SSH Access (_ssh._tcp)"},
			},
		})

		found, err := repo.GetDeviceByMAC(nas.MAC)

		assert.NoError(st, err)
		assert.Equal(st, []int{22, 445}, found.OpenPortList())
		assert.Equal(st, []string{"SSH Access (_ssh._tcp)"}, found.ServiceList())
	})
}
