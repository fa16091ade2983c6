package application

import (
	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/repository"
)

type Services struct {
	Schema     *SchemaService
	Submission *SubmissionService
	Catalog    *CatalogService
	Analytics  *AnalyticsService
	Report     *ReportService
	User       *UserService
}

// Options carries the cross-cutting collaborators services need beyond
// the repositories.
type Options struct {
	Policy       ApprovalPolicy
	Dispatcher   Enqueuer
	Uploader     ObjectUploader
	ReportBucket string
	MarkerField  string
	MarkerValue  string
	Logger       *zap.Logger
}

func New(repos *repository.Repos, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	analytics := NewAnalyticsService(repos, opts.MarkerField, opts.MarkerValue)

	svc := &Services{
		Schema:     NewSchemaService(repos),
		Submission: NewSubmissionService(repos, opts.Policy, opts.Dispatcher, opts.Logger),
		Catalog:    NewCatalogService(repos),
		Analytics:  analytics,
		User:       NewUserService(repos),
	}
	if opts.Uploader != nil {
		svc.Report = NewReportService(analytics, opts.Uploader, opts.ReportBucket, opts.Logger)
	}
	return svc
}
