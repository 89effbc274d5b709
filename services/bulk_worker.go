package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	BulkImportQueueKey  = "bulk_import:queue"
	bulkImportJobPrefix = "bulk_import:job:"
	bulkJobTTL          = 24 * time.Hour
)

// BulkImportJob is the metadata stored in Redis for a queued import.
type BulkImportJob struct {
	ID        string `json:"id"`
	FilePath  string `json:"file_path"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Result    any    `json:"result,omitempty"`
	CreatedAt string `json:"created_at"`
}

func BulkImportJobKey(jobID string) string {
	return bulkImportJobPrefix + jobID
}

// EnqueueBulkImport records job metadata and pushes the job ID onto the queue
// consumed by StartBulkImportWorker.
func EnqueueBulkImport(ctx context.Context, rdb *redis.Client, job BulkImportJob) error {
	job.Status = "queued"
	job.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, BulkImportJobKey(job.ID), data, bulkJobTTL).Err(); err != nil {
		return err
	}
	return rdb.RPush(ctx, BulkImportQueueKey, job.ID).Err()
}

// GetBulkImportJob fetches job metadata, or nil when the job is unknown.
func GetBulkImportJob(ctx context.Context, rdb *redis.Client, jobID string) (*BulkImportJob, error) {
	val, err := rdb.Get(ctx, BulkImportJobKey(jobID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var job BulkImportJob
	if err := json.Unmarshal([]byte(val), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// StartBulkImportWorker starts a background worker that consumes job IDs from
// the Redis queue and processes persisted CSV files with the product service.
func StartBulkImportWorker(ctx context.Context, rdb *redis.Client, productSvc *ProductService, storageDir string) {
	if rdb == nil || productSvc == nil {
		zap.L().Warn("bulk import worker not started: missing dependencies")
		return
	}

	if storageDir == "" {
		storageDir = "./data/bulk_imports"
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		zap.L().Error("failed to create bulk storage dir", zap.Error(err))
		return
	}

	go func() {
		zap.L().Info("bulk import worker started", zap.String("queue", BulkImportQueueKey), zap.String("dir", storageDir))
		for {
			select {
			case <-ctx.Done():
				zap.L().Info("bulk import worker stopping")
				return
			default:
			}

			// BLPop with no timeout blocks until an item is available
			res, err := rdb.BLPop(ctx, 0*time.Second, BulkImportQueueKey).Result()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Error("redis BLPop failed", zap.Error(err))
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if len(res) < 2 {
				continue
			}

			processBulkJob(ctx, rdb, productSvc, res[1])
		}
	}()
}

func processBulkJob(ctx context.Context, rdb *redis.Client, productSvc *ProductService, jobID string) {
	job, err := GetBulkImportJob(ctx, rdb, jobID)
	if err != nil || job == nil {
		zap.L().Error("failed to read job metadata", zap.String("job", jobID), zap.Error(err))
		return
	}

	job.Status = "processing"
	saveBulkJob(ctx, rdb, job)

	f, err := os.Open(filepath.Clean(job.FilePath))
	if err != nil {
		failBulkJob(ctx, rdb, job, fmt.Errorf("failed to open job file: %w", err))
		return
	}

	result, err := productSvc.ProcessBulkImport(ctx, f)
	f.Close()
	_ = os.Remove(job.FilePath)

	if err != nil {
		failBulkJob(ctx, rdb, job, err)
		return
	}

	job.Status = "done"
	job.Result = result
	saveBulkJob(ctx, rdb, job)
	zap.L().Info("bulk import completed",
		zap.String("job", job.ID),
		zap.Int("inserted", result.InsertedCount),
		zap.Int("errors", result.ErrorsCount),
	)
}

func failBulkJob(ctx context.Context, rdb *redis.Client, job *BulkImportJob, err error) {
	zap.L().Error("bulk import failed", zap.String("job", job.ID), zap.Error(err))
	job.Status = "failed"
	job.Error = err.Error()
	saveBulkJob(ctx, rdb, job)
}

func saveBulkJob(ctx context.Context, rdb *redis.Client, job *BulkImportJob) {
	data, err := json.Marshal(job)
	if err != nil {
		zap.L().Error("failed to marshal job metadata", zap.Error(err))
		return
	}
	if err := rdb.Set(ctx, BulkImportJobKey(job.ID), data, bulkJobTTL).Err(); err != nil {
		zap.L().Error("failed to persist job metadata", zap.String("job", job.ID), zap.Error(err))
	}
}
