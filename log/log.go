package log

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogLevel = "info"
	logDir          = "minerlogs"
	globalLogFile   = "global.log"
)

var defaultLogFilePath = "./" + logDir + "/" + globalLogFile

// Global is the logger used by every package-level convenience function
// below. Call SetGlobalLogger once during startup (cmd/chainweb-miner's
// root command does so in PersistentPreRunE) to point it at a real file and
// level, and ConfigureLogger to adjust it with Options; it defaults to an
// info-level logger writing to defaultLogFilePath and stdout.
var Global Logger

func init() {
	Global = NewLogWrapper(defaultLogFilePath, true)
	ConfigureLogger(WithLevel(defaultLogLevel))
}

// NewLogWrapper constructs a Logger writing to logFilename (rotated via
// lumberjack) and, optionally, to stdout as well.
func NewLogWrapper(logFilename string, stdOut bool) *LogWrapper {
	if logFilename == "" {
		logFilename = defaultLogFilePath
	}
	logger := logrus.New()
	rotating := &lumberjack.Logger{
		Filename:   logFilename,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	if stdOut {
		logger.SetOutput(io.MultiWriter(rotating, os.Stdout))
	} else {
		logger.SetOutput(rotating)
	}
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "01-02|15:04:05.000",
	})
	return &LogWrapper{entry: logrus.NewEntry(logger)}
}

// ConfigureLogger applies opts to the Global logger.
func ConfigureLogger(opts ...Options) {
	wrapper, ok := Global.(*LogWrapper)
	if !ok {
		return
	}
	for _, opt := range opts {
		opt(wrapper)
	}
}

// SetGlobalLogger replaces Global with a fresh logger writing to
// logFilename at logLevel. Used by cmd/chainweb-miner's root command once
// flags have been parsed.
func SetGlobalLogger(logFilename string, logLevel string) {
	Global = NewLogWrapper(logFilename, true)
	ConfigureLogger(WithLevel(logLevel))
}

func WithField(key string, val interface{}) Logger { return Global.WithField(key, val) }

func Trace(keyvals ...interface{}) { Global.Trace(keyvals...) }

func Tracef(msg string, args ...interface{}) { Global.Tracef(msg, args...) }

func Debug(keyvals ...interface{}) { Global.Debug(keyvals...) }

func Debugf(msg string, args ...interface{}) { Global.Debugf(msg, args...) }

func Info(keyvals ...interface{}) { Global.Info(keyvals...) }

func Infof(msg string, args ...interface{}) { Global.Infof(msg, args...) }

func Warn(keyvals ...interface{}) { Global.Warn(keyvals...) }

func Warnf(msg string, args ...interface{}) { Global.Warnf(msg, args...) }

func Error(keyvals ...interface{}) { Global.Error(keyvals...) }

func Errorf(msg string, args ...interface{}) { Global.Errorf(msg, args...) }

func Fatal(keyvals ...interface{}) { Global.Fatal(keyvals...) }

func Fatalf(msg string, args ...interface{}) { Global.Fatalf(msg, args...) }
