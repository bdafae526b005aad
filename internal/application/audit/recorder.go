// Package audit registra la traza de auditoría de las acciones que modifican datos.
//
// El registro es best-effort: Record nunca bloquea al llamador ni devuelve error, y un
// fallo del almacenamiento jamás hace fallar la operación de negocio que lo originó.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	"github.com/jhoicas/axion-crm/pkg/logger"
)

const defaultTimeout = 5 * time.Second

// Recorder escribe entradas de auditoría en segundo plano.
// Con repo nil (backend no configurado) Record no hace nada.
type Recorder struct {
	repo    repository.AuditLogRepository
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRecorder construye el recorder. timeout <= 0 usa 5s por escritura.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger, timeout time.Duration) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Recorder{repo: repo, log: log.Module("audit"), timeout: timeout}
}

// Record despacha la escritura y retorna de inmediato.
func (r *Recorder) Record(e entity.AuditLog) {
	if r == nil || r.repo == nil {
		return
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.wg.Add(1)
	go r.write(e)
}

func (r *Recorder) write(e entity.AuditLog) {
	defer r.wg.Done()
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Str("entity", e.Entity).Msg("audit: escritura abortada")
		}
	}()

	// Contexto propio: la escritura no depende de que la petición siga viva.
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.repo.Insert(ctx, &e); err != nil {
		r.log.Warn().Err(err).
			Str("module", e.Module).
			Str("entity", e.Entity).
			Str("action", e.Action).
			Msg("audit: entrada descartada")
	}
}

// Wait espera a que terminen las escrituras en curso (apagado y tests).
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

// NewEntry arma una entrada serializando before/after a JSON. Valores nil quedan vacíos.
func NewEntry(userID, module, entityName, entityID, action string, before, after any) entity.AuditLog {
	return entity.AuditLog{
		UserID:   userID,
		Module:   module,
		Entity:   entityName,
		EntityID: entityID,
		Action:   action,
		Before:   toJSON(before),
		After:    toJSON(after),
	}
}

// WithMeta adjunta metadatos a la entrada.
func WithMeta(e entity.AuditLog, meta map[string]any) entity.AuditLog {
	e.Meta = toJSON(meta)
	return e
}

func toJSON(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return nil
	}
	return b
}
