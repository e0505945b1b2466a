package engine

import (
	"context"

	"github.com/lanwarden/lanwarden/internal/device"
)

//go:generate mockgen -destination=../mock/engine/mock_engine.go -package=mock_engine . Service

// ScanResult summarizes one reconciliation cycle
type ScanResult struct {
	SessionID     uint                 `json:"session_id"`
	Status        device.SessionStatus `json:"status"`
	DevicesFound  int                  `json:"devices_found"`
	DevicesOnline int                  `json:"devices_online"`
	DevicesNew    int                  `json:"devices_new"`
	Subnet        string               `json:"subnet"`
}

// Service interface for running reconciliation cycles against the
// device registry
type Service interface {
	PerformScan(ctx context.Context, subnet string, deep bool) (*ScanResult, error)
	Start()
	Stop()
}
