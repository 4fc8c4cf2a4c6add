package logger

import (
	"fmt"
	"os"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// NewLogger builds a daily-rotated file logger. The settlement audit trail
// ("settlement" logType) keeps 30 days; everything else keeps 7.
func NewLogger(logType string) *logrus.Logger {
	log := logrus.New()
	logPath := "./logs/" + logType
	_ = os.MkdirAll(logPath, 0755)

	maxAge := 7 * 24 * time.Hour
	if logType == "settlement" {
		maxAge = 30 * 24 * time.Hour
	}

	writer, _ := rotatelogs.New(
		logPath+"/"+logType+".log.%Y-%m-%d",
		rotatelogs.WithLinkName(logPath+"/"+logType+".log"),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(maxAge),
	)

	log.SetOutput(writer)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			funcName := f.Function
			fileLine := fmt.Sprintf("%s:%d", f.File, f.Line)
			return funcName, fileLine
		},
	})
	log.SetLevel(logrus.InfoLevel)

	return log
}

// Settlement is the audit logger for fee computation, balance checks and
// payout transitions. Initialized in InitLoggers.
var Settlement *logrus.Logger

func InitLoggers() {
	Settlement = NewLogger("settlement")
}

// Audit returns the settlement audit logger, initializing it lazily when
// InitLoggers has not run (tests, tooling).
func Audit() *logrus.Logger {
	if Settlement == nil {
		Settlement = NewLogger("settlement")
	}
	return Settlement
}
