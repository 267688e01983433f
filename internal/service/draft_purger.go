package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DraftPurger periodically deletes abandoned drafts.
type DraftPurger struct {
	cron   *cron.Cron
	drafts *DraftService
	log    zerolog.Logger
}

// NewDraftPurger schedules DraftService.PurgeExpired. schedule accepts standard five-field cron
// expressions and descriptors such as "@every 15m".
func NewDraftPurger(drafts *DraftService, schedule string, log zerolog.Logger) (*DraftPurger, error) {
	log = log.With().Str("component", "draft_purger").Logger()
	cl := cronLogger{log: log}

	p := &DraftPurger{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		drafts: drafts,
		log:    log,
	}
	if _, err := p.cron.AddFunc(schedule, p.Run); err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start runs the schedule in the background.
func (p *DraftPurger) Start() {
	p.cron.Start()
}

// Stop halts the schedule and waits for a running purge to finish or ctx to expire.
func (p *DraftPurger) Stop(ctx context.Context) {
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run performs one purge.
func (p *DraftPurger) Run() {
	n, err := p.drafts.PurgeExpired(context.Background())
	if err != nil {
		p.log.Error().Err(err).Msg("draft purge failed")
		return
	}
	if n > 0 {
		p.log.Info().Int64("purged", n).Msg("purged expired drafts")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
