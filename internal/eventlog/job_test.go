package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	job := NewCleanupJob(svc, 90)

	mockRepo.On("CleanupOldEvents", mock.Anything, 90).Return(int64(100), nil)

	err := job.Process(context.Background())
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_ProcessError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	job := NewCleanupJob(svc, 30)

	mockRepo.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), errors.New("db down"))

	err := job.Process(context.Background())
	assert.Error(t, err)
}
