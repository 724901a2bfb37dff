package mocks

import (
	"context"

	"github.com/you/pomodorosvc/domain"
)

// MockAuditLogger records audit events for assertions
type MockAuditLogger struct {
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.Events = append(m.Events, event)
}

// EventTypes returns the recorded event types in order
func (m *MockAuditLogger) EventTypes() []domain.AuditEventType {
	types := make([]domain.AuditEventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.EventType
	}
	return types
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
