package environment

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvConfig carries environment-provided defaults for the run command.
// Flags always win over these.
type EnvConfig struct {
	DefaultCpuMs  int64
	DefaultMemMB  int64
	DefaultWallMs int64

	ReportPath string

	NatsURL     string
	NatsSubject string

	SqsQueueURL string
	AwsRegion   string
}

// ReadEnvConfig loads .env if present and reads the RUN_* variables.
func ReadEnvConfig() *EnvConfig {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	return &EnvConfig{
		DefaultCpuMs:  envInt64("RUN_CPU_MS", 1000),
		DefaultMemMB:  envInt64("RUN_MEM_MB", 256),
		DefaultWallMs: envInt64("RUN_WALL_MS", 5000),
		ReportPath:    os.Getenv("RUN_REPORT"),
		NatsURL:       os.Getenv("RUN_NATS_URL"),
		NatsSubject:   envString("RUN_NATS_SUBJECT", "pygon.run.results"),
		SqsQueueURL:   os.Getenv("RUN_SQS_QUEUE_URL"),
		AwsRegion:     envString("AWS_REGION", "eu-central-1"),
	}
}

func envString(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("ignoring malformed environment variable", "key", key, "value", v)
		return fallback
	}
	return n
}
