package metrics

import "time"

// IRecorder метрики, которые пишут use case и транспорт
type IRecorder interface {
	RecordCalculation(op, ephemeris string)
	RecordError(op, kind string)
	RecordCache(result string)
	RecordLatency(op string, d time.Duration)
	RecordHTTP(route, status string)
}

// Noop пустая реализация, когда метрики не нужны
type Noop struct{}

func (Noop) RecordCalculation(string, string)    {}
func (Noop) RecordError(string, string)          {}
func (Noop) RecordCache(string)                  {}
func (Noop) RecordLatency(string, time.Duration) {}
func (Noop) RecordHTTP(string, string)           {}
