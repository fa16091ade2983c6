package application

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/repository"
	"github.com/msaleh/formgate/internal/testutils"
)

type fakeUploader struct {
	bucket      string
	object      string
	contentType string
	body        []byte
	err         error
}

func (f *fakeUploader) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minioSDK.PutObjectOptions) (minioSDK.UploadInfo, error) {
	if f.err != nil {
		return minioSDK.UploadInfo{}, f.err
	}
	f.bucket = bucketName
	f.object = objectName
	f.contentType = opts.ContentType
	body, err := io.ReadAll(reader)
	if err != nil {
		return minioSDK.UploadInfo{}, err
	}
	f.body = body
	return minioSDK.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestExportRejectionBreakdownWritesCSV(t *testing.T) {
	repos := repository.NewRepositories(testutils.OpenTestDB(t))
	analytics := NewAnalyticsService(repos, schema.FieldServiceDuration, "12")
	uploader := &fakeUploader{}
	svc := NewReportService(analytics, uploader, "reports", zap.NewNop())

	now := time.Now().UTC()
	seedRejection(t, repos, "citizens only", "مواطنون فقط", "12", now)
	seedRejection(t, repos, "citizens only", "مواطنون فقط", "12", now.Add(time.Minute))

	object, err := svc.ExportRejectionBreakdown(context.Background(), submission.QueryFilter{})
	require.NoError(t, err)

	assert.Equal(t, "reports", uploader.bucket)
	assert.Equal(t, object, uploader.object)
	assert.True(t, strings.HasPrefix(object, "rejection-breakdown-"))
	assert.True(t, strings.HasSuffix(object, ".csv"))
	assert.Equal(t, "text/csv", uploader.contentType)

	lines := strings.Split(strings.TrimSpace(string(uploader.body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "reason_en,reason_ar,count,percentage", lines[0])
	assert.Contains(t, lines[1], "citizens only")
	assert.Contains(t, lines[1], "2,100.0")
}

func TestExportRejectionBreakdownUploadFailure(t *testing.T) {
	repos := repository.NewRepositories(testutils.OpenTestDB(t))
	analytics := NewAnalyticsService(repos, schema.FieldServiceDuration, "12")
	uploader := &fakeUploader{err: io.ErrClosedPipe}
	svc := NewReportService(analytics, uploader, "reports", zap.NewNop())

	_, err := svc.ExportRejectionBreakdown(context.Background(), submission.QueryFilter{})
	assert.Error(t, err)
}
