package main

import (
	"os"
	"time"

	"github.com/alsham360/prima-api/internal/cli"
	"github.com/sirupsen/logrus"
)

// version é sobrescrita no build com -ldflags "-X main.version=..."
var version = "dev"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetOutput(os.Stderr)

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
