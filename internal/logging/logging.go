package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the rotating log file created inside the log directory.
const LogFileName = "delivery-risk.log"

// Options controls where the global logger writes.
type Options struct {
	Verbose bool
	// LogDir overrides DELIVERY_LOGS_FOLDER and the binary-relative default.
	LogDir string
	// Console receives human readable output; nil means os.Stderr.
	Console io.Writer
}

// Init initializes the global logger with dual sinks: stderr and a rotating file.
// stdout is never written so the MCP stdio transport stays clean.
func Init(verbose bool) error {
	return Setup(Options{Verbose: verbose})
}

// Setup initializes the global logger from explicit options.
func Setup(opts Options) error {
	// .env is loaded here as well because Setup runs before config.Load.
	exePath, exeErr := os.Executable()
	if exeErr == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	noColor := true
	if console == nil {
		console = os.Stderr
		noColor = !(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	logDir := resolveLogDir(opts.LogDir, exePath, exeErr)
	fileWriter, err := newFileWriter(logDir)
	if err != nil {
		return err
	}

	multi := zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)
	log.Logger = zerolog.New(multi).
		With().
		Timestamp().
		Logger()
	return nil
}

func resolveLogDir(override, exePath string, exeErr error) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("DELIVERY_LOGS_FOLDER"); dir != "" {
		return dir
	}
	if exeErr == nil {
		return filepath.Join(filepath.Dir(exePath), "logs")
	}
	return "logs"
}

func newFileWriter(logDir string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}

	testFile := filepath.Join(logDir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("log directory %q is not writable: %w", logDir, err)
	}
	_ = os.Remove(testFile)

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}, nil
}
