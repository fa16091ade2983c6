package application

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/repository"
	"github.com/msaleh/formgate/internal/testutils"
)

// Runs the pipeline against real Postgres. Enable with RUN_INTEGRATION=1;
// uses a throwaway container unless TEST_DB_DSN points at a database.
func TestSubmitPipelineOnPostgres(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") == "" {
		t.Skip("set RUN_INTEGRATION=1 to run Postgres integration tests")
	}

	db, cleanup := testutils.SetupPostgresForIntegration()
	defer cleanup()

	repos := repository.NewRepositories(db)
	svc := NewSubmissionService(repos, DefaultPolicy(), nil, zap.NewNop())
	seedLoanSchema(t, repos)

	approved, err := svc.Submit(0, "Ahmed", eligibleSubmission())
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, approved.Status)

	values := eligibleSubmission()
	values["citizenshipStatus"] = "resident"
	rejected, err := svc.Submit(0, "Sara", values)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusRejected, rejected.Status)
	assert.Contains(t, rejected.RejectionReasonEn, msgCitizensOnlyEn)

	page, err := svc.List(submission.QueryFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
}
