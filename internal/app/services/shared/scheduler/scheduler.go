package scheduler

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultLockTTL = 2 * time.Minute

// Job runs on a cron spec on at most one instance at a time.
type Job struct {
	Name    string
	Spec    string
	LockKey string
	LockTTL time.Duration
	Run     func(ctx context.Context)
}

// Scheduler runs jobs under a Redis leader lock that is refreshed while the
// job is in flight.
type Scheduler struct {
	log    *zap.Logger
	locker contracts.LockerService
	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
	jobs   []Job
	once   sync.Once
}

func NewScheduler(log *zap.Logger, locker contracts.LockerService) *Scheduler {
	return &Scheduler{
		log:    log,
		locker: locker,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Register schedules job. It fails on an invalid spec, the job is not added.
func (s *Scheduler) Register(job Job) error {
	if job.LockTTL <= 0 {
		job.LockTTL = defaultLockTTL
	}

	_, err := s.cron.AddFunc(job.Spec, func() { s.RunOnce(s.runCtx, job) })
	if err != nil {
		return err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) Start(ctx context.Context) {
	s.runCtx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	for _, job := range s.jobs {
		s.log.Info("scheduler job registered",
			zap.String("job", job.Name),
			zap.String("spec", job.Spec),
		)
	}
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		<-s.cron.Stop().Done()
	})
}

// RunOnce runs job if this instance wins the leader lock.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := utils.GenerateRequestID()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)

	acquired, token, err := s.locker.TryLock(ctx, job.LockKey, job.LockTTL)
	if err != nil {
		s.log.Warn("scheduler leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("job", job.Name),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		s.log.Debug("scheduler leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("job", job.Name),
		)
		return
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.locker.Unlock(unlockCtx, job.LockKey, token); err != nil {
			s.log.Error("scheduler leader unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("job", job.Name),
				zap.Error(err),
			)
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go s.keepLock(refreshCtx, job, token)

	_ = utils.LogOperation(s.log, "scheduler."+job.Name, requestID, func() error {
		job.Run(ctx)
		return nil
	})
}

// keepLock refreshes the lock at half its TTL until ctx is done.
func (s *Scheduler) keepLock(ctx context.Context, job Job, token string) {
	tick := time.NewTicker(job.LockTTL / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := s.locker.Refresh(ctx, job.LockKey, token, job.LockTTL); err != nil {
				s.log.Warn("scheduler failed to refresh leader lock",
					zap.String("job", job.Name),
					zap.Error(err),
				)
			}
		}
	}
}
