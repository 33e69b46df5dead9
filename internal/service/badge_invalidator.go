package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/tripmarket/internal/cache"
	"github.com/d60-Lab/tripmarket/pkg/logger"
)

type invalidateJob struct {
	userID string
	enqAt  time.Time
}

// BadgeInvalidator 简单的本地异步角标缓存失效执行器
// 置已读后入队，由 worker 删除该用户的角标缓存键
type BadgeInvalidator struct {
	badges    *cache.BadgeCache
	ch        chan invalidateJob
	metricsCh chan time.Duration
}

func NewBadgeInvalidator(badges *cache.BadgeCache, queueSize int) *BadgeInvalidator {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &BadgeInvalidator{badges: badges, ch: make(chan invalidateJob, queueSize), metricsCh: make(chan time.Duration, 65536)}
}

func (r *BadgeInvalidator) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case job := <-r.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := r.badges.Invalidate(ctx, job.userID); err != nil {
						logger.Warn("badge invalidate failed", zap.String("user", job.userID), zap.Error(err))
					}
					cancel()
					if !job.enqAt.IsZero() {
						select {
						case r.metricsCh <- time.Since(job.enqAt):
						default:
						}
					}
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		// 等待队列自然排空一小段时间
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(r.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

func (r *BadgeInvalidator) Enqueue(userID string) {
	select {
	case r.ch <- invalidateJob{userID: userID, enqAt: time.Now()}:
	default:
		logger.Warn("invalidator queue full, drop", zap.String("user", userID))
	}
}

// Metrics 返回失效落地耗时的只读通道（每处理一条发送一次 duration）。
func (r *BadgeInvalidator) Metrics() <-chan time.Duration { return r.metricsCh }

// QueueLen 返回当前队列长度（采样值）。
func (r *BadgeInvalidator) QueueLen() int { return len(r.ch) }
