package docsign

import "github.com/tendermint/tendermint/libs/log"

// DefaultLogger is used by all components that were not given a logger
// explicitly.
var DefaultLogger = log.NewNopLogger()

// LoggerOrDefault returns given logger, or DefaultLogger if it is nil.
func LoggerOrDefault(l log.Logger) log.Logger {
	if l == nil {
		return DefaultLogger
	}
	return l
}
