package observability

import (
	"os"

	"github.com/danmuck/wsterm/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the runtime console logger for app at level.
func InitLogger(app string, level zerolog.Level) zerolog.Logger {
	cfg := logging.DefaultConfig(logging.ProfileRuntime)
	cfg.Out = os.Stderr
	cfg.Level = level
	logging.ApplyEnvOverrides(&cfg)
	logger := logging.New(cfg, app)
	log.Logger = logger
	zerolog.SetGlobalLevel(cfg.Level)
	return logger
}
