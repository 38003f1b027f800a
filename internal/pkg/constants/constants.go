// Package constants provides shared constants used across acmatch components.
package constants

// Report format
const (
	// ReportHeader is the header line of the TSV match report.
	ReportHeader = "protein\tstart\tend\tpeptide\tepitope_ids"

	// IDSeparator joins epitope identifiers within a report field.
	IDSeparator = ","

	// StdoutPath selects standard output as the report destination.
	StdoutPath = "-"
)

// Channel buffer sizes
//
// Buffer Sizing Strategy:
//
// 1. Single-item buffers (size = 1):
//   - Used for signals and errors that should never block the sender
//
// 2. Per-worker buffers (size = workers * ScanQueuePerWorker):
//   - Used for protein jobs and scan results
//   - Rationale: keeps every worker busy while the writer drains results in order,
//     without holding more than a few proteins per worker in memory
const (
	// SignalChannelBuffer is the buffer size for OS signal channels (strategy: single-item)
	SignalChannelBuffer = 1

	// ErrorChannelBuffer is the buffer size for error reporting channels (strategy: single-item)
	ErrorChannelBuffer = 1

	// ScanQueuePerWorker is the number of queued proteins per scan worker
	ScanQueuePerWorker = 4
)

// I/O defaults
const (
	// DefaultWriteBuffer is the default report write buffer size (1MiB)
	DefaultWriteBuffer = 1024 * 1024

	// LogPrefix tags human-readable summary lines on stderr
	LogPrefix = "[acmatch]"
)
