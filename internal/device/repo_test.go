package device_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/lanwarden/lanwarden/internal/device"
	"github.com/lanwarden/lanwarden/internal/exception"
	"github.com/lanwarden/lanwarden/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func TestDeviceSqliteRepo(t *testing.T) {
	testDBFile := "device.db"

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

	repo := device.NewSqliteRepo(db)

	now := time.Now().UTC()

	newDevice := &device.Device{
		MAC:       "aa:bb:cc:dd:ee:ff",
		IP:        "192.168.1.10",
		Hostname:  "printer.local",
		Vendor:    "HP",
		IsOnline:  true,
		FirstSeen: now,
		LastSeen:  now,
	}

	t.Run("GetDeviceByMAC returns record not found error", func(st *testing.T) {
		_, err := repo.GetDeviceByMAC("noop")

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("creates device on first upsert", func(st *testing.T) {
		created, err := repo.UpsertDevice(newDevice)

		assert.NoError(st, err)
		assert.NotZero(st, created.ID)
	})

	t.Run("gets device by mac", func(st *testing.T) {
		found, err := repo.GetDeviceByMAC(newDevice.MAC)

		assert.NoError(st, err)
		assert.Equal(st, newDevice.ID, found.ID)
		assert.Equal(st, newDevice.Hostname, found.Hostname)
	})

	t.Run("gets all devices", func(st *testing.T) {
		found, err := repo.ListAllDevices()

		assert.NoError(st, err)
		assert.Equal(st, 1, len(found))
		assert.Equal(st, newDevice.MAC, found[0].MAC)
	})

	t.Run("updates device on later upsert", func(st *testing.T) {
		newDevice.IP = "192.168.1.42"
		newDevice.IsOnline = false
		newDevice.MissedScans = 2

		updated, err := repo.UpsertDevice(newDevice)

		assert.NoError(st, err)

		found, err := repo.GetDeviceByMAC(newDevice.MAC)

		assert.NoError(st, err)
		assert.Equal(st, updated.ID, found.ID)
		assert.Equal(st, "192.168.1.42", found.IP)
		assert.False(st, found.IsOnline)
		assert.Equal(st, 2, found.MissedScans)
	})

	t.Run("round trips port and service blobs", func(st *testing.T) {
		assert.NoError(st, newDevice.SetOpenPorts([]int{22, 80, 443}))
		assert.NoError(st, newDevice.SetServices([]string{"ssh", "http"}))

		_, err := repo.UpsertDevice(newDevice)

		assert.NoError(st, err)

		found, err := repo.GetDeviceByMAC(newDevice.MAC)

		assert.NoError(st, err)
		assert.Equal(st, []int{22, 80, 443}, found.OpenPortList())
		assert.Equal(st, []string{"ssh", "http"}, found.ServiceList())
	})

	t.Run("appends history events", func(st *testing.T) {
		evt := &device.ScanEvent{
			DeviceID:  newDevice.ID,
			EventType: device.EventIPChanged,
			IP:        "192.168.1.42",
			OldIP:     "192.168.1.10",
		}

		assert.NoError(st, repo.AppendEvent(evt))
		assert.NotZero(st, evt.ID)
	})

	t.Run("opens and completes a session", func(st *testing.T) {
		session, err := repo.OpenSession("192.168.1.0/24", "full")

		assert.NoError(st, err)
		assert.NotZero(st, session.ID)
		assert.Equal(st, device.SessionRunning, session.Status)
		assert.Nil(st, session.CompletedAt)

		counts := device.SessionCounts{Found: 5, Online: 4, New: 1}

		err = repo.CompleteSession(
			session.ID,
			device.SessionCompleted,
			counts,
			"",
		)

		assert.NoError(st, err)

		sessions := []*device.ScanSession{}

		assert.NoError(st, db.Find(&sessions).Error)
		assert.Equal(st, 1, len(sessions))
		assert.Equal(st, device.SessionCompleted, sessions[0].Status)
		assert.NotNil(st, sessions[0].CompletedAt)
		assert.Equal(st, 5, sessions[0].DevicesFound)
		assert.Equal(st, 4, sessions[0].DevicesOnline)
		assert.Equal(st, 1, sessions[0].DevicesNew)
	})

	t.Run("marks a failed session with its error", func(st *testing.T) {
		session, err := repo.OpenSession("192.168.1.0/24", "full")

		assert.NoError(st, err)

		err = repo.CompleteSession(
			session.ID,
			device.SessionFailed,
			device.SessionCounts{},
			"subnet unreachable",
		)

		assert.NoError(st, err)

		found := device.ScanSession{}

		assert.NoError(st, db.First(&found, session.ID).Error)
		assert.Equal(st, device.SessionFailed, found.Status)
		assert.Equal(st, "subnet unreachable", found.Error)
	})

	t.Run("rolls back a failed transaction", func(st *testing.T) {
		txErr := errors.New("boom")

		err := repo.Transaction(func(txRepo device.Repo) error {
			_, err := txRepo.UpsertDevice(&device.Device{
				MAC: "11:22:33:44:55:66",
				IP:  "192.168.1.99",
			})

			assert.NoError(st, err)

			return txErr
		})

		assert.Equal(st, txErr, err)

		_, err = repo.GetDeviceByMAC("11:22:33:44:55:66")

		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("commits a successful transaction", func(st *testing.T) {
		err := repo.Transaction(func(txRepo device.Repo) error {
			_, err := txRepo.UpsertDevice(&device.Device{
				MAC: "11:22:33:44:55:66",
				IP:  "192.168.1.99",
			})

			return err
		})

		assert.NoError(st, err)

		found, err := repo.GetDeviceByMAC("11:22:33:44:55:66")

		assert.NoError(st, err)
		assert.Equal(st, "192.168.1.99", found.IP)
	})
}
