// Package logging builds the structured logger that is handed to nilan's
// compiler and VM for internal diagnostics (the compiler logs a debug
// entry per compiled chunk). It is never used for the language's own
// print/output, nor for the VM's execution trace — those always go
// straight to the CLI's output writer.
package logging

import (
	"io"
	"os"

	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/sirupsen/logrus"

	"nilan/config"
)

// New builds a logrus.Logger configured from cfg.Logging: level parsed
// from cfg.Logging.Level (defaulting to Info on a bad value), writing to
// cfg.Logging.File when set, otherwise to stderr.
func New(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "[%lvl%] %time% - %msg%\n",
	})

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	var out io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			out = f
		}
	}
	log.SetOutput(out)

	return log
}
