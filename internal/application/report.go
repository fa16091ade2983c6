package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	minioSDK "github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/domain/submission"
)

// ObjectUploader is the slice of the MinIO client the report service
// needs; tests substitute a fake.
type ObjectUploader interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minioSDK.PutObjectOptions) (minioSDK.UploadInfo, error)
}

// ReportService renders the rejection breakdown as CSV and uploads it to
// object storage for the reporting consumers.
type ReportService struct {
	analytics *AnalyticsService
	uploader  ObjectUploader
	bucket    string
	logger    *zap.Logger
}

func NewReportService(analytics *AnalyticsService, uploader ObjectUploader, bucket string, logger *zap.Logger) *ReportService {
	return &ReportService{analytics: analytics, uploader: uploader, bucket: bucket, logger: logger}
}

// ExportRejectionBreakdown writes the breakdown for the filter to a
// timestamped CSV object and returns the object name.
func (s *ReportService) ExportRejectionBreakdown(ctx context.Context, filter submission.QueryFilter) (string, error) {
	rows, err := s.analytics.ReasonBreakdown(filter)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"reason_en", "reason_ar", "count", "percentage"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.ReasonEn,
			row.ReasonAr,
			strconv.FormatInt(row.Count, 10),
			strconv.FormatFloat(row.Percentage, 'f', 1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("rejection-breakdown-%s.csv", time.Now().UTC().Format("20060102-150405"))
	_, err = s.uploader.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minioSDK.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}

	s.logger.Info("rejection report exported",
		zap.String("object", objectName),
		zap.Int("rows", len(rows)))
	return objectName, nil
}
