package worker

// dlq.go: dead letter lists, one per job queue (dlq:jobs:reporte,
// dlq:jobs:email). Entries keep the envelope as it was last run so an
// operator can fix the cause and push it back with LPUSH.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// TrabajoFallido is one dead job.
type TrabajoFallido struct {
	Cola string `json:"cola"`
	Job  Job    `json:"job"`
	// Raw is set instead of Job when the envelope could not be decoded.
	Raw string `json:"raw,omitempty"`

	// Destinatario and Detalle summarise the payload for whoever reads the list:
	// the recipient and subject of an email, the requester and range of a report.
	Destinatario string `json:"destinatario,omitempty"`
	Detalle      string `json:"detalle,omitempty"`

	Error     string    `json:"error"`
	FallidoEn time.Time `json:"fallido_en"`
}

func nuevoTrabajoFallido(cola string, job Job, causa string) TrabajoFallido {
	t := TrabajoFallido{Cola: cola, Job: job, Error: causa, FallidoEn: time.Now().UTC()}
	switch job.Type {
	case JobEmail:
		var p EmailJobPayload
		if json.Unmarshal(job.Payload, &p) == nil {
			t.Destinatario, t.Detalle = p.ToEmail, p.Subject
		}
	case JobReporte:
		var p ReporteJobPayload
		if json.Unmarshal(job.Payload, &p) == nil {
			t.Destinatario, t.Detalle = p.Email, p.StartDate+".."+p.EndDate
		}
	}
	return t
}

// SendToDLQ parks a job that will not be retried.
func SendToDLQ(ctx context.Context, rdb *redis.Client, cola string, job Job, causa string) {
	pushDLQ(ctx, rdb, nuevoTrabajoFallido(cola, job, causa))
}

// sendRawToDLQ parks input that is not a valid Job envelope.
func sendRawToDLQ(ctx context.Context, rdb *redis.Client, cola, raw, causa string) {
	t := nuevoTrabajoFallido(cola, Job{}, causa)
	t.Raw = raw
	pushDLQ(ctx, rdb, t)
}

func pushDLQ(ctx context.Context, rdb *redis.Client, t TrabajoFallido) {
	data, err := json.Marshal(t)
	if err != nil {
		log.Error().Err(err).Str("queue", t.Cola).Msg("dlq: failed to marshal entry")
		return
	}
	key := DLQPrefix + t.Cola
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: failed to push entry")
		return
	}
	log.Warn().
		Str("queue", t.Cola).
		Str("type", t.Job.Type).
		Str("to", t.Destinatario).
		Int("attempts", t.Job.Attempts).
		Str("error", t.Error).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of entries in a queue's DLQ.
func DLQLength(ctx context.Context, rdb *redis.Client, cola string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+cola).Result()
}

// DLQLengths returns the DLQ size of every job queue; the health endpoint
// reports it.
func DLQLengths(ctx context.Context, rdb *redis.Client) (map[string]int64, error) {
	out := make(map[string]int64, len(colaPorTipo))
	for _, q := range colaPorTipo {
		n, err := DLQLength(ctx, rdb, q)
		if err != nil {
			return nil, err
		}
		out[q] = n
	}
	return out, nil
}
