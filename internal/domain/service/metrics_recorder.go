package service

// MetricsRecorder records business events for monitoring.
type MetricsRecorder interface {
	RecordLogin(success bool)
	RecordEntityOperation(entity, operation string)
	RecordEmail(status string)
}
