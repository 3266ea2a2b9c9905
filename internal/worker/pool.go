package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"estudamais-backend/internal/services"
)

// Pool drains the e-mail queue. Handlers enqueue jobs with LPush so the
// request path never blocks on SMTP; workers pick them up with BLPop.
type Pool struct {
	redis       *redis.Client
	email       *services.EmailService
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, email *services.EmailService, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		email:       email,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d e-mail worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout so shutdown is picked up between jobs
		result, err := p.redis.BLPop(ctx, 30*time.Second, services.EmailQueueKey).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job services.EmailJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse e-mail job: %v", id, err)
			continue
		}

		p.process(id, job)
	}
}

func (p *Pool) process(id int, job services.EmailJob) {
	var err error
	switch job.Type {
	case services.EmailJobVerification:
		err = p.email.SendVerificationEmail(job.To, job.Token)
	default:
		log.Printf("Worker %d: unknown e-mail job type %q", id, job.Type)
		return
	}

	if err != nil {
		log.Printf("✗ Worker %d: failed to send %s e-mail to %s: %v", id, job.Type, job.To, err)
		return
	}
	log.Printf("📧 Worker %d: sent %s e-mail to %s", id, job.Type, job.To)
}
