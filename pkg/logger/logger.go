package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// InitWithOutput は、出力先を指定してロガーを初期化します
// 標準出力は結果表示に使うため、CLIからは標準エラー出力を渡します
func InitWithOutput(level, format string, out io.Writer) error {
	l := logrus.New()

	switch level {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info", "":
		l.SetLevel(logrus.InfoLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		return fmt.Errorf("不明なログレベルです: %s", level)
	}

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return fmt.Errorf("不明なログフォーマットです: %s", format)
	}

	l.SetOutput(out)
	log = l

	return nil
}

// WithField は、フィールド付きのエントリを返します
// 未初期化の場合は出力を捨てるエントリを返します
func WithField(key string, value interface{}) *logrus.Entry {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		return discard.WithField(key, value)
	}
	return log.WithField(key, value)
}

func Debugf(format string, args ...interface{}) {
	if log != nil {
		log.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if log != nil {
		log.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if log != nil {
		log.Warnf(format, args...)
	}
}
