package match

// ConfigError reports an invalid matcher configuration (empty catalog,
// bad weights). No Matcher is produced when construction returns one.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "matcher config: " + e.Reason
}

// ValidationError reports invalid per-call input (blank query, top_n < 1).
// The Matcher stays usable after returning one.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}
