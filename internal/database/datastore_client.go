package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/practiceapp/internal/domain"
)

const snapshotKind = "JobHistorySnapshot"

// JobHistorySnapshot is the archived form of a job history at the moment it
// was attached to an employee.
type JobHistorySnapshot struct {
	HistoryID      int64
	EmployeeID     int64
	EmployeeName   string
	JobTitle       string
	DepartmentName string
	Language       string
	StartDate      time.Time
	EndDate        time.Time
	ArchivedAt     time.Time
}

// NewJobHistorySnapshot captures h and its owner. Both must be persisted.
func NewJobHistorySnapshot(h *domain.JobHistory, at time.Time) (JobHistorySnapshot, error) {
	if h == nil || h.ID == nil {
		return JobHistorySnapshot{}, fmt.Errorf("cannot archive a transient job history: %w", domain.ErrValidation)
	}
	owner := h.Employee()
	if owner == nil || owner.ID == nil {
		return JobHistorySnapshot{}, fmt.Errorf("job history %d has no persisted employee: %w", *h.ID, domain.ErrValidation)
	}

	snap := JobHistorySnapshot{
		HistoryID:    *h.ID,
		EmployeeID:   *owner.ID,
		EmployeeName: owner.FullName(),
		Language:     string(h.Language),
		ArchivedAt:   at.UTC(),
	}
	if h.StartDate != nil {
		snap.StartDate = h.StartDate.UTC()
	}
	if h.EndDate != nil {
		snap.EndDate = h.EndDate.UTC()
	}
	if job := h.Job(); job != nil {
		snap.JobTitle = job.JobTitle
	}
	if d := h.Department(); d != nil {
		snap.DepartmentName = d.DepartmentName
	}
	return snap, nil
}

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client *datastore.Client
}

// NewDatastoreClient dials Datastore for projectID.
func NewDatastoreClient(ctx context.Context, projectID string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &DatastoreClient{client: client}, nil
}

// WrapDatastoreClient wraps existing datastore client
func WrapDatastoreClient(client *datastore.Client) *DatastoreClient {
	if client == nil {
		return nil
	}
	return &DatastoreClient{client: client}
}

var errNilDatastore = errors.New("datastore client is nil")

func snapshotKey(historyID int64) *datastore.Key {
	return datastore.IDKey(snapshotKind, historyID, nil)
}

// SaveSnapshot stores snap under its history id, replacing an older snapshot.
func (dc *DatastoreClient) SaveSnapshot(ctx context.Context, snap JobHistorySnapshot) error {
	if dc == nil || dc.client == nil {
		return errNilDatastore
	}
	if _, err := dc.client.Put(ctx, snapshotKey(snap.HistoryID), &snap); err != nil {
		return fmt.Errorf("failed to save snapshot of job history %d: %w", snap.HistoryID, err)
	}
	return nil
}

// GetSnapshot loads the snapshot of one job history.
func (dc *DatastoreClient) GetSnapshot(ctx context.Context, historyID int64) (*JobHistorySnapshot, error) {
	if dc == nil || dc.client == nil {
		return nil, errNilDatastore
	}
	var snap JobHistorySnapshot
	err := dc.client.Get(ctx, snapshotKey(historyID), &snap)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return nil, fmt.Errorf("snapshot of job history %d: %w", historyID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSnapshots returns every snapshot archived for an employee.
func (dc *DatastoreClient) ListSnapshots(ctx context.Context, employeeID int64) ([]JobHistorySnapshot, error) {
	if dc == nil || dc.client == nil {
		return nil, errNilDatastore
	}
	var result []JobHistorySnapshot
	q := datastore.NewQuery(snapshotKind).FilterField("EmployeeID", "=", employeeID)
	if _, err := dc.client.GetAll(ctx, q, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteAll removes every archived snapshot.
func (dc *DatastoreClient) DeleteAll(ctx context.Context) error {
	if dc == nil || dc.client == nil {
		return errNilDatastore
	}
	keys, err := dc.client.GetAll(ctx, datastore.NewQuery(snapshotKind).KeysOnly(), nil)
	if err != nil {
		return err
	}
	return dc.client.DeleteMulti(ctx, keys)
}

func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}
