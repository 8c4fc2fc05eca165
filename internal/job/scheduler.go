package job

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler registers the job under a cron spec ("@every 1h", "0 3 * * *").
// A panicking run is recovered and a run still in progress is not started twice.
// The caller starts and stops the returned scheduler.
func NewScheduler(spec string, job cron.Job, logger *zap.Logger) (*cron.Cron, error) {
	log := cronLogger{sugar: logger.Sugar()}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("invalid job schedule %q: %w", spec, err)
	}
	return c, nil
}
