package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisJob_Lifecycle(t *testing.T) {
	job := NewAnalysisJob("v1", 2)
	assert.Equal(t, AnalysisJobStatusPending, job.Status)
	assert.False(t, job.IsTerminal())

	job.MarkAsRunning()
	assert.NotNil(t, job.StartedAt)

	job.IncrementRetry("timeout")
	assert.Equal(t, AnalysisJobStatusRetrying, job.Status)
	assert.True(t, job.IsRetryable())
	job.IncrementRetry("timeout")
	assert.False(t, job.IsRetryable())

	job.MarkAsCompleted("rec-1", []string{"people"})
	assert.True(t, job.IsTerminal())
	assert.Nil(t, job.LastError)
	assert.Equal(t, "rec-1", *job.AnalysisID)
}

func TestAnalysisJob_IsStuck(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	job := &AnalysisJob{Status: AnalysisJobStatusRunning, UpdatedAt: now.Add(-20 * time.Minute)}

	assert.True(t, job.IsStuck(now, 15*time.Minute))
	assert.False(t, job.IsStuck(now, 30*time.Minute))

	job.Status = AnalysisJobStatusPending
	assert.False(t, job.IsStuck(now, 15*time.Minute))
}
