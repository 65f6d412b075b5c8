// Package metrics provides the Recorder interface and a noop implementation.
package metrics

// Recorder is the interface for recording cache events per namespace.
type Recorder interface {
	RecordHit(namespace string)
	RecordMiss(namespace string)
	RecordExpired(namespace string)
	RecordError(namespace, op string)
}

// Noop is a Recorder that discards all data.
type Noop struct{}

func (Noop) RecordHit(namespace string)       {}
func (Noop) RecordMiss(namespace string)      {}
func (Noop) RecordExpired(namespace string)   {}
func (Noop) RecordError(namespace, op string) {}
