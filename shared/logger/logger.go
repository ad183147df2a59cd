package logger

import (
	"hotelbook/config"
	"hotelbook/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level, used until the config is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(console(os.Stdout))
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and output to the global logger.
func Configure(config *config.Config) {
	ConfigureOutput(config, os.Stdout)
}

// ConfigureOutput writes JSON lines to out in production and console lines elsewhere.
// Every line carries the app name and environment when they are set.
func ConfigureOutput(config *config.Config, out io.Writer) {
	SetLogLevel(config)

	var output io.Writer = console(out)
	if config.Server.Env == constant.ServerEnvProduction {
		output = out
	}

	ctx := zerolog.New(output).With().Timestamp()
	if config.App.Name != "" {
		ctx = ctx.Str("app", config.App.Name)
	}

	if config.Server.Env != "" {
		ctx = ctx.Str("env", config.Server.Env)
	}

	log.Logger = ctx.Logger()
}

func console(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel falls back to trace when the configured level is empty or unknown.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
