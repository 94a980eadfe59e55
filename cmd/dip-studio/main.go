package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/dip-studio/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("dip-studio %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("dip-studio - MCP server for image filtering")
			fmt.Println()
			fmt.Println("Usage: dip-studio [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  DIP_STUDIO_LOG_LEVEL=debug         Enable debug logging")
			fmt.Println("  DIP_STUDIO_MAX_KERNEL_SIZE=<n>     Largest accepted kernel size (default 31)")
			fmt.Println("  DIP_STUDIO_JPEG_QUALITY=<1-100>    JPEG output quality (default 95)")
			fmt.Println("  DIP_STUDIO_MAX_OUTPUT_PIXELS=<n>   Largest scaled result in pixels (default 67108864)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	logger := initLogger(os.Getenv("DIP_STUDIO_LOG_LEVEL") == "debug")
	opts := loadOptions(logger)

	if Version != "dev" {
		server.Version = Version
	}

	logger.WithFields(logrus.Fields{
		"version":         Version,
		"build_time":      BuildTime,
		"commit":          GitCommit,
		"max_kernel_size": opts.MaxKernelSize,
		"jpeg_quality":    opts.JPEGQuality,
	}).Debug("dip-studio starting")

	srv := server.New(opts, logger)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}

// initLogger builds the process logger. Output goes to stderr because stdout
// carries the protocol.
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

// loadOptions reads server options from the environment. Unparsable values
// are logged and replaced by the defaults.
func loadOptions(logger *logrus.Logger) server.Options {
	opts := server.DefaultOptions()
	opts.MaxKernelSize = envInt(logger, "DIP_STUDIO_MAX_KERNEL_SIZE", opts.MaxKernelSize)
	opts.JPEGQuality = envInt(logger, "DIP_STUDIO_JPEG_QUALITY", opts.JPEGQuality)
	opts.MaxOutputPixels = envInt(logger, "DIP_STUDIO_MAX_OUTPUT_PIXELS", opts.MaxOutputPixels)
	return opts
}

func envInt(logger *logrus.Logger, key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Ignoring invalid integer setting")
		return def
	}
	return v
}
