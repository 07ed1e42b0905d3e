package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gauss2302/agrogame/internal/clock"
)

func TestCleanupJob_Process(t *testing.T) {
	repo := new(MockRepository)
	job := NewCleanupJob(NewService(repo, clock.NewSimulatedClock(testNow)), 24*time.Hour)

	repo.On("CleanupOldEvents", mock.Anything, testNow.Add(-24*time.Hour)).Return(int64(100), nil).Once()

	assert.NoError(t, job.Process(context.Background()))
	repo.AssertExpectations(t)
}

func TestCleanupJob_ProcessFailure(t *testing.T) {
	repo := new(MockRepository)
	job := NewCleanupJob(NewService(repo, nil), time.Hour)

	repo.On("CleanupOldEvents", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))

	assert.ErrorContains(t, job.Process(context.Background()), ErrMsgCleanupEvents)
}
