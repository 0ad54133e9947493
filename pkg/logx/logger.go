package logx

import (
	"io"
	"log"
	"os"
	"path"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// global logger instances
var logger zerolog.Logger
var nolog = zerolog.Nop()

var startTime time.Time
var pid = os.Getpid()

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	// Level is the log level to use (e.g., "info", "debug").
	Level string `yaml:"level" json:"level"`
	// ConsoleLogging enables logging to the console.
	ConsoleLogging bool `yaml:"consoleLogging" json:"consoleLogging"`
	// FileLogging enables logging to a file.
	FileLogging bool `yaml:"fileLogging" json:"fileLogging"`
	// Directory specifies the directory for log files (used if FileLogging is enabled).
	Directory string `yaml:"directory" json:"directory"`
	// Filename is the name of the log file.
	Filename string `yaml:"filename" json:"filename"`
	// MaxSize is the maximum size (in MB) of a log file before it is rolled.
	MaxSize int `yaml:"maxSize" json:"maxSize"`
	// MaxBackups is the maximum number of rolled log files to keep.
	MaxBackups int `yaml:"maxBackups" json:"maxBackups"`
	// MaxAge is the maximum age (in days) to keep a log file.
	MaxAge int `yaml:"maxAge" json:"maxAge"`
	// Compress enables compression of rolled log files.
	Compress bool `yaml:"compress" json:"compress"`
}

func init() {
	StartTimer()
	err := WithConfig(&LoggingConfig{
		Level:          "info",
		ConsoleLogging: true,
	}, nil)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
}

func WithConfig(cfg *LoggingConfig, fields map[string]string) error {
	l, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)

	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	var writers []io.Writer
	if cfg.FileLogging {
		fileWriter := zerolog.New(newRollingFile(cfg)).With().Timestamp().Logger()
		writers = append(writers, console, fileWriter)
	} else {
		writers = append(writers, console)
	}

	mw := zerolog.MultiLevelWriter(writers...)
	c := zerolog.New(mw).
		With().
		Timestamp().
		Int("pid", pid)

	for k, v := range fields {
		c = c.Str(k, v)
	}

	logger = c.Logger()
	return nil
}

func As() *zerolog.Logger {
	return &logger
}

func Nop() *zerolog.Logger {
	return &nolog
}

func StartTimer() {
	startTime = time.Now()
}

func ExecutionTime() string {
	return time.Since(startTime).Round(time.Second).String()
}

func GetPid() int {
	return pid
}

func newRollingFile(cfg *LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(cfg.Directory, cfg.Filename),
		MaxBackups: cfg.MaxBackups, // files
		MaxSize:    cfg.MaxSize,    // megabytes
		MaxAge:     cfg.MaxAge,     // days
		Compress:   cfg.Compress,
	}
}
