package registry

import (
	"bytes"
	"context"
	"fmt"

	"registry-ingest/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes raw page bodies to object storage so a run can be
// replayed and diagnosed offline. Archival is best-effort: a failed write
// is logged but never aborts the run.
type Archiver struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewArchiver creates an archiver writing into the given bucket.
func NewArchiver(client storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, log: log}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

// ArchivePage stores one page body under runs/<run_uid>/page-NNNN.json.
func (a *Archiver) ArchivePage(ctx context.Context, runUID string, page int, body []byte) {
	objectName := fmt.Sprintf("runs/%s/page-%04d.json", runUID, page)
	_, err := a.client.PutObject(
		ctx,
		a.bucket,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		a.log.Warn("failed to archive page body",
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}
