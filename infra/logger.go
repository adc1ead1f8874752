package infra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/uploadhub/uploadhub/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// LoggerClient is the process-wide structured logger. When an OTLP endpoint
// is configured the records are shipped through the OpenTelemetry bridge,
// otherwise they go to stdout.
type LoggerClient struct {
	logger *slog.Logger
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.Telemetry.OTLPEndpoint == "" {
		return &LoggerClient{
			logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		}
	}

	telemetry, err := InitTelemetry(context.Background(), cfg)
	if err != nil {
		log.Printf("Telemetry initialization failed, falling back to stdout logging: %v", err)
		return &LoggerClient{
			logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		}
	}

	return &LoggerClient{
		logger: otelslog.NewLogger(
			cfg.Telemetry.ServiceName,
			otelslog.WithLoggerProvider(telemetry.LoggerProvider),
		),
	}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	if err != nil {
		l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...), slog.Any("error", err))
		return
	}
	l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}
