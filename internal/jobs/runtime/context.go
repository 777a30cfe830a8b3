package runtime

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

/*
Context is the execution handle for a single job run.
  - Ctx: carries cancellation and a fresh trace id for the run
  - Log: scoped to the job name and run id
  - Job: the registered job name
  - ScheduledFor: the recurrence instant that triggered the run (now for manual runs)

Handlers never build one themselves; the scheduler does.
*/
type Context struct {
	Ctx          context.Context
	Log          *logger.Logger
	Job          string
	RunID        string
	ScheduledFor time.Time
}

func NewContext(ctx context.Context, log *logger.Logger, job string, scheduledFor time.Time) *Context {
	runID := uuid.NewString()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxutil.WithTraceData(ctx, &ctxutil.TraceData{
		TraceID:   runID,
		RequestID: runID,
	})
	return &Context{
		Ctx:          ctx,
		Log:          log.With("job", job, "run_id", runID),
		Job:          job,
		RunID:        runID,
		ScheduledFor: scheduledFor,
	}
}
