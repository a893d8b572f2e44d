package uploads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	uploadactivities "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/temporal/activities/uploads"
)

type fakeReconciler struct {
	grace  time.Duration
	report domain.ReconcileReport
	err    error
}

func (f *fakeReconciler) Reconcile(_ context.Context, grace time.Duration) (domain.ReconcileReport, error) {
	f.grace = grace
	return f.report, f.err
}

func TestOrphanReconcileWorkflow_ReturnsReport(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	reconciler := &fakeReconciler{report: domain.ReconcileReport{Scanned: 2, Deleted: []string{"a", "b"}}}
	acts := uploadactivities.NewActivities(reconciler)
	env.RegisterActivityWithOptions(acts.ReconcileOrphans, activity.RegisterOptions{Name: uploadactivities.ReconcileOrphansActivityName})

	env.ExecuteWorkflow(OrphanReconcileWorkflow, OrphanReconcileWorkflowInput{GracePeriod: time.Hour})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var report domain.ReconcileReport
	require.NoError(t, env.GetWorkflowResult(&report))
	assert.Equal(t, []string{"a", "b"}, report.Deleted)
	assert.Equal(t, time.Hour, reconciler.grace)
}

func TestOrphanReconcileWorkflow_PropagatesFailure(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	acts := uploadactivities.NewActivities(&fakeReconciler{err: errors.New("redis down")})
	env.RegisterActivityWithOptions(acts.ReconcileOrphans, activity.RegisterOptions{Name: uploadactivities.ReconcileOrphansActivityName})

	env.ExecuteWorkflow(OrphanReconcileWorkflow, OrphanReconcileWorkflowInput{GracePeriod: time.Minute})

	require.True(t, env.IsWorkflowCompleted())
	assert.Error(t, env.GetWorkflowError())
}
