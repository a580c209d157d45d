package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier, derived from
// the global logger.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
