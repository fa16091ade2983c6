package handlers

import (
	"github.com/msaleh/formgate/internal/application"
)

type Handlers struct {
	User       *UserHandler
	Schema     *SchemaHandler
	Submission *SubmissionHandler
	Catalog    *CatalogHandler
	Analytics  *AnalyticsHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		User:       NewUserHandler(svc.User),
		Schema:     NewSchemaHandler(svc.Schema),
		Submission: NewSubmissionHandler(svc.Submission),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Analytics:  NewAnalyticsHandler(svc.Analytics, svc.Report),
	}
}
