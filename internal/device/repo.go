package device

import (
	"errors"
	"strings"
	"time"

	"github.com/lanwarden/lanwarden/internal/exception"
	"github.com/lanwarden/lanwarden/internal/logger"
	"gorm.io/gorm"
)

const (
	lockMaxRetries = 3
	lockBaseWait   = 500 * time.Millisecond
)

// SqliteRepo is our sqlite backed implementation of Repo
type SqliteRepo struct {
	db  *gorm.DB
	log logger.Logger
}

// NewSqliteRepo returns a new registry repo backed by db
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{
		db:  db,
		log: logger.New(),
	}
}

// ListAllDevices returns every device in the registry, online or not
func (r *SqliteRepo) ListAllDevices() ([]*Device, error) {
	devices := []*Device{}

	err := r.withRetry(func() error {
		return r.db.Find(&devices).Error
	})

	if err != nil {
		return nil, err
	}

	return devices, nil
}

// GetDeviceByMAC returns the device registered for mac
func (r *SqliteRepo) GetDeviceByMAC(mac string) (*Device, error) {
	device := Device{}

	err := r.withRetry(func() error {
		return r.db.Where("mac = ?", mac).First(&device).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, err
	}

	return &device, nil
}

// UpsertDevice inserts a new device or updates an existing one. New
// devices are detected by a zero primary key.
func (r *SqliteRepo) UpsertDevice(device *Device) (*Device, error) {
	err := r.withRetry(func() error {
		return r.db.Save(device).Error
	})

	if err != nil {
		return nil, err
	}

	return device, nil
}

// AppendEvent records a device history event
func (r *SqliteRepo) AppendEvent(evt *ScanEvent) error {
	return r.withRetry(func() error {
		return r.db.Create(evt).Error
	})
}

// OpenSession creates a running session row for the cycle that is
// about to start
func (r *SqliteRepo) OpenSession(subnet, method string) (*ScanSession, error) {
	session := &ScanSession{
		StartedAt: time.Now().UTC(),
		Status:    SessionRunning,
		Subnet:    subnet,
		Method:    method,
	}

	err := r.withRetry(func() error {
		return r.db.Create(session).Error
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// CompleteSession marks a session completed or failed and stores the
// cycle counts
func (r *SqliteRepo) CompleteSession(
	id uint,
	status SessionStatus,
	counts SessionCounts,
	errText string,
) error {
	now := time.Now().UTC()

	updates := map[string]any{
		"status":         status,
		"completed_at":   &now,
		"devices_found":  counts.Found,
		"devices_online": counts.Online,
		"devices_new":    counts.New,
		"error":          errText,
	}

	return r.withRetry(func() error {
		return r.db.Model(&ScanSession{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

// Transaction runs fn against a transactional view of the repo. Any
// error from fn rolls back everything fn wrote.
func (r *SqliteRepo) Transaction(fn func(repo Repo) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&SqliteRepo{db: tx, log: r.log})
	})
}

// withRetry retries transient sqlite lock contention with bounded
// backoff before giving up
func (r *SqliteRepo) withRetry(op func() error) error {
	var err error

	wait := lockBaseWait

	for attempt := 0; attempt < lockMaxRetries; attempt++ {
		err = op()

		if err == nil || !isLockError(err) {
			return err
		}

		r.log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Msg("database locked, retrying")

		time.Sleep(wait)
		wait *= 2
	}

	return err
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
