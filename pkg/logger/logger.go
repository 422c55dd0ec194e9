// Package logger configura el logging estructurado del servicio sobre zerolog.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string    // development -> consola legible; cualquier otro -> JSON
	Level   string    // debug, info, warn, error (info si viene vacío o inválido)
	Service string    // nombre del servicio, va como campo fijo en cada línea
	Out     io.Writer // destino; os.Stdout si es nil
}

// New crea el logger del servicio y redirige el logger global de zerolog
// para las librerías que lo usen. Devuelve el logger por valor; zerolog es
// seguro para uso concurrente.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()

	log.Logger = zl
	return zl
}
