package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReporte = "jobs:reporte"
	QueueEmail   = "jobs:email"

	JobReporte = "reporte"
	JobEmail   = "email"

	// MaxJobAttempts is how many times a failing job runs before it lands in the DLQ.
	MaxJobAttempts = 3
)

var colaPorTipo = map[string]string{
	JobReporte: QueueReporte,
	JobEmail:   QueueEmail,
}

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A returned error triggers a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReporte pushes a report job to Redis.
func (d *Dispatcher) EnqueueReporte(ctx context.Context, payload ReporteJobPayload) error {
	return d.enqueue(ctx, JobReporte, payload)
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, job Job) error {
	queue, ok := colaPorTipo[job.Type]
	if !ok {
		return fmt.Errorf("worker: tipo de job desconocido %q", job.Type)
	}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP and uses no CPU when idle. The returned
// WaitGroup is done once every worker has seen ctx cancelled.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, id, handlers)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return &wg
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]Handler) {
	queues := []string{QueueReporte, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		sendRawToDLQ(ctx, rdb, queue, raw, "invalid envelope: "+err.Error())
		return
	}
	h, ok := handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, rdb, queue, job, "no handler registered")
		return
	}

	job.Attempts++
	log.Info().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("processing job")
	err := h(ctx, job.Payload)
	if err == nil {
		return
	}
	if job.Attempts >= MaxJobAttempts {
		SendToDLQ(ctx, rdb, queue, job, fmt.Sprintf("max attempts (%d) exceeded: %v", MaxJobAttempts, err))
		return
	}
	log.Warn().Err(err).Str("type", job.Type).Int("attempt", job.Attempts).Msg("job failed, requeued")
	if err := push(ctx, rdb, job); err != nil {
		log.Error().Err(err).Str("type", job.Type).Msg("failed to requeue job")
	}
}
