package exception

import "errors"

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// ErrScanInProgress returned when a scan is requested while another
// reconciliation cycle is still running
var ErrScanInProgress = errors.New("scan already in progress")
