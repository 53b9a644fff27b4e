package services

import (
	"context"
	"time"

	"github.com/paytrack/ledger-gateway/pkg/logger"
)

type ArchiveSweeper interface {
	SweepArchive(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionService expires old action log entries. Swept rows move to
// the archive table and stop being undoable or reported, but stay
// queryable for audit.
type RetentionService struct {
	logs      ArchiveSweeper
	retention time.Duration
}

func NewRetentionService(logs ArchiveSweeper, retentionDays int) *RetentionService {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &RetentionService{
		logs:      logs,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Sweep archives every action log row older than the retention window
// and returns the number of rows moved.
func (s *RetentionService) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.retention)

	moved, err := s.logs.SweepArchive(ctx, cutoff)
	if err != nil {
		logger.Error("retention sweep failed", "error", err)
		return 0, err
	}
	if moved > 0 {
		archivedLogsTotal.Add(float64(moved))
		logger.Info("retention sweep archived action logs", "moved", moved, "cutoff", cutoff)
	}
	return moved, nil
}
