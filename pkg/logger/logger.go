package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. Production JSON encoding by default,
// development encoding when APP_ENV=dev.
func New() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
