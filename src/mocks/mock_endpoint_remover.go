package mocks

import (
	"github.com/fileproc-eval/task-coordinator-service/src/models"
	"github.com/stretchr/testify/mock"
)

// MockEndpointRemover is a mock implementation of dispatcher.EndpointRemover
type MockEndpointRemover struct {
	mock.Mock
}

func (m *MockEndpointRemover) Remove(ep models.WorkerEndpoint) {
	m.Called(ep)
}
