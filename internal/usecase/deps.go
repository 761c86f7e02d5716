package usecase

import (
	"context"

	domrepo "Tickfunds/internal/domain/repository"
)

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, string, map[string]string) {}

type noopMetrics struct{}

func (noopMetrics) RecordActivity(string, string) {}
func (noopMetrics) RecordActivityDropped(string) {}
func (noopMetrics) RecordError(string) {}
func (noopMetrics) RecordCacheLookup(string, bool) {}
func (noopMetrics) RecordVerification(string, bool) {}
func (noopMetrics) RecordLatency(string, float64) {}

func recorderOrNoop(r domrepo.ActivityRecorder) domrepo.ActivityRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}

func metricsOrNoop(m domrepo.Metrics) domrepo.Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
