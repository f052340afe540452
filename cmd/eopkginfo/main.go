package main

import (
	"os"
	"time"

	"github.com/ralt/eopkginfo/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Logs go to stderr so rendered output can be piped
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := cli.NewRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
