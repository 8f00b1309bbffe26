package configdomain

import "fmt"

// Field names of the CLI configuration.
const (
	FieldHurlPath    = "hurl_path"
	FieldEncoding    = "encoding"
	FieldLogLevel    = "log_level"
	FieldEnvironment = "environment"
)

// Fields lists the configuration fields in display order.
var Fields = []string{FieldHurlPath, FieldEncoding, FieldLogLevel, FieldEnvironment}

// Priorities of the configuration sources. Lower wins.
const (
	PriorityFlag    = 1
	PriorityEnv     = 2
	PriorityFile    = 3
	PriorityDefault = 10
)

// Entry represents a single configuration value with provenance and priority.
type Entry struct {
	Key        string
	Value      interface{}
	Source     string
	SourcePath string
	Priority   int
}

// Snapshot is a collection of config entries keyed by field name.
type Snapshot map[string]Entry

// Merge merges another snapshot into this one respecting priority
// (lower number indicates higher priority).
func (s Snapshot) Merge(other Snapshot) {
	for k, e := range other {
		if existing, ok := s[k]; !ok || e.Priority <= existing.Priority {
			s[k] = e
		}
	}
}

// Set records value for field from source.
func (s Snapshot) Set(field string, value interface{}, source, sourcePath string, priority int) {
	s[field] = Entry{Key: field, Value: value, Source: source, SourcePath: sourcePath, Priority: priority}
}

// String returns the value of field as text, empty when unset.
func (s Snapshot) String(field string) string {
	e, ok := s[field]
	if !ok || e.Value == nil {
		return ""
	}
	if v, ok := e.Value.(string); ok {
		return v
	}
	return fmt.Sprint(e.Value)
}

// Defaults returns the built-in values.
func Defaults() Snapshot {
	snap := make(Snapshot)
	snap.Set(FieldHurlPath, "hurl", "default", "", PriorityDefault)
	snap.Set(FieldEncoding, "utf-8", "default", "", PriorityDefault)
	snap.Set(FieldLogLevel, "warn", "default", "", PriorityDefault)
	snap.Set(FieldEnvironment, "", "default", "", PriorityDefault)
	return snap
}

// Config is the typed view of a merged snapshot.
type Config struct {
	HurlPath    string
	Encoding    string
	LogLevel    string
	Environment string
}

// FromSnapshot reads the typed configuration out of snap.
func FromSnapshot(snap Snapshot) Config {
	return Config{
		HurlPath:    snap.String(FieldHurlPath),
		Encoding:    snap.String(FieldEncoding),
		LogLevel:    snap.String(FieldLogLevel),
		Environment: snap.String(FieldEnvironment),
	}
}
