package logsvc

import (
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/sirupsen/logrus"

	"github.com/trezcool/institut/core"
)

// RollbarLogger reports to rollbar and prints through logrus.
type RollbarLogger struct {
	std *logrus.Entry
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewStdLogger returns the process logrus logger; debug level in debug mode.
func NewStdLogger(conf *core.Config) *logrus.Logger {
	std := logrus.New()
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if conf.Debug {
		std.SetLevel(logrus.DebugLevel)
	}
	return std
}

func NewRollbarLogger(std *logrus.Logger, component string, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std.WithField("component", component)}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected args fmt: error | map[string]interface{} | any printable value
func (l *RollbarLogger) entry(args []interface{}) *logrus.Entry {
	e := l.std
	var extra []string
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			e = e.WithError(a)
		case map[string]interface{}:
			e = e.WithFields(a)
		default:
			extra = append(extra, fmt.Sprintf("%+v", a))
		}
	}
	if len(extra) > 0 {
		e = e.WithField("extra", extra)
	}
	return e
}

func (l *RollbarLogger) report(level, msg string, args []interface{}) {
	rollbar.Log(level, append([]interface{}{msg}, args...)...)
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.DEBUG, msg, args)
	l.entry(args).Debug(msg)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.INFO, msg, args)
	l.entry(args).Info(msg)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.WARN, msg, args)
	l.entry(args).Warn(msg)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.ERR, msg, args)
	l.entry(args).Error(msg)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.entry(args).Fatal(msg)
}
