package service

import (
	"context"
	"sync/atomic"

	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/logger"
	"github.com/locvowork/practiceapp/pkg/dataflow"
)

const reindexBatchSize = 200

// Reindex rebuilds every employee document and returns how many were
// written. Employees that cannot be projected are skipped and logged.
func (s *EmployeeService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, ErrSearchDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.repos.Employees.List(ctx, domain.EmployeeFilter{})
	if err != nil {
		return 0, err
	}

	docs := dataflow.Map(ctx, dataflow.From(ctx, employees...), database.NewEmployeeDoc,
		dataflow.WithErrorHandler(func(err error) bool {
			logger.WarnLog(ctx, "Skipping employee during reindex: %v", err)
			return true
		}))

	var written int64
	err = dataflow.ForEach(ctx, dataflow.Batch(ctx, docs, reindexBatchSize), func(batch []database.EmployeeDoc) error {
		if err := s.index.BulkIndexEmployees(ctx, batch); err != nil {
			return err
		}
		atomic.AddInt64(&written, int64(len(batch)))
		return nil
	}, dataflow.WithWorkers(2), dataflow.WithRetry(2, nil))
	if err != nil {
		logger.ErrorLog(ctx, "Reindex failed", err)
		return int(atomic.LoadInt64(&written)), err
	}

	logger.InfoLog(ctx, "Reindexed %d employees", written)
	return int(written), nil
}
