package mocks

import "time"

// MockConfig is a simple implementation of config.Interface for testing
type MockConfig struct {
	OutputDir               string
	ProbeTimeout            time.Duration
	DispatchTimeout         time.Duration
	MaxConcurrentDispatches int
}

func (m *MockConfig) GetLogLevel() string {
	return "info"
}

func (m *MockConfig) GetServiceName() string {
	return "test-coordinator"
}

func (m *MockConfig) GetListenAddr() string {
	return "127.0.0.1:0"
}

func (m *MockConfig) GetOutputDir() string {
	return m.OutputDir
}

func (m *MockConfig) GetProbeTimeout() time.Duration {
	if m.ProbeTimeout == 0 {
		return 2 * time.Second
	}
	return m.ProbeTimeout
}

func (m *MockConfig) GetDispatchTimeout() time.Duration {
	if m.DispatchTimeout == 0 {
		return 45 * time.Second
	}
	return m.DispatchTimeout
}

func (m *MockConfig) GetMaxConcurrentDispatches() int {
	if m.MaxConcurrentDispatches == 0 {
		return 16
	}
	return m.MaxConcurrentDispatches
}
