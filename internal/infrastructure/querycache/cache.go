// Package querycache es la caché de consultas compartida por el proceso.
//
// Cada resultado se guarda bajo una clave y una o más etiquetas (colecciones lógicas como
// "admin-users"). Invalidate marca obsoletas todas las entradas de una etiqueta; una entrada
// obsoleta o ausente se vuelve a consultar antes de entregarse. Opcionalmente la recarga se
// programa en segundo plano justo después de invalidar.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/axion-crm/pkg/logger"
)

// Entry contenido almacenado de una consulta.
type Entry struct {
	Data  []byte
	Stale bool
}

// Store backend de almacenamiento (memoria del proceso o Redis).
type Store interface {
	// Load devuelve la entrada; found=false si no existe o expiró.
	Load(ctx context.Context, key string) (e Entry, found bool, err error)
	// Save guarda data como fresca y asocia la clave a tags.
	Save(ctx context.Context, key string, data []byte, tags []string, ttl time.Duration) error
	// MarkStale marca obsoletas las entradas de tags y devuelve sus claves.
	MarkStale(ctx context.Context, tags ...string) ([]string, error)
}

// Options ajustes de la caché.
type Options struct {
	TTL               time.Duration // 0 = sin expiración
	BackgroundRefresh bool
	RefreshTimeout    time.Duration
	// MaxRegistered tope de claves con recarga registrada; se descarta la de uso más antiguo.
	MaxRegistered int
	// RefreshLimit máximo de claves recargadas por invalidación (las de uso más reciente).
	RefreshLimit int
}

type fetchFunc func(ctx context.Context) ([]byte, error)

type registration struct {
	tags  []string
	fetch fetchFunc
	used  uint64
}

// Cache caché de consultas con invalidación por etiqueta.
type Cache struct {
	store Store
	log   *logger.Logger
	opts  Options
	group singleflight.Group

	// saveMu ordena guardados frente a invalidaciones: nada se guarda como fresco
	// con una generación de etiquetas ya superada.
	saveMu sync.RWMutex

	mu       sync.Mutex
	tagGen   map[string]uint64
	fetchers map[string]registration
	clock    uint64

	wg sync.WaitGroup
}

// New construye la caché. log puede ser nil.
func New(store Store, log *logger.Logger, opts Options) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 10 * time.Second
	}
	if opts.MaxRegistered <= 0 {
		opts.MaxRegistered = 256
	}
	if opts.RefreshLimit <= 0 {
		opts.RefreshLimit = 16
	}
	return &Cache{
		store:    store,
		log:      log,
		opts:     opts,
		tagGen:   make(map[string]uint64),
		fetchers: make(map[string]registration),
	}
}

// Get devuelve el valor de key. Si no está en caché o está obsoleto, llama a fetch,
// guarda el resultado y lo devuelve. Un error de fetch no se guarda y se propaga.
func Get[T any](ctx context.Context, c *Cache, key string, tags []string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	raw := func(ctx context.Context) ([]byte, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
	data, err := c.get(ctx, key, tags, raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("querycache: decodificar %s: %w", key, err)
	}
	return out, nil
}

func (c *Cache) get(ctx context.Context, key string, tags []string, fetch fetchFunc) ([]byte, error) {
	c.register(key, tags, fetch)

	e, found, err := c.store.Load(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("querycache: lectura fallida, se consulta el origen")
	} else if found && !e.Stale {
		return e.Data, nil
	}
	return c.refresh(ctx, key, tags, fetch)
}

// refresh consulta el origen una sola vez por clave y generación de etiquetas.
// Si las etiquetas se invalidan durante la consulta, el resultado se entrega al llamador
// pero no se guarda como fresco.
func (c *Cache) refresh(ctx context.Context, key string, tags []string, fetch fetchFunc) ([]byte, error) {
	gen := c.generation(tags)
	v, err, _ := c.group.Do(key+"#"+gen, func() (any, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.saveMu.RLock()
		defer c.saveMu.RUnlock()
		if c.generation(tags) != gen {
			return data, nil
		}
		if err := c.store.Save(ctx, key, data, tags, c.opts.TTL); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("querycache: no se pudo guardar")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate marca obsoletas las entradas de tags. Con BackgroundRefresh programa la recarga
// de las claves que el store reporta vivas, hasta RefreshLimit y empezando por las de uso más
// reciente. Las demás dejan de estar registradas y se recargan cuando alguien las vuelva a leer.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	c.saveMu.Lock()
	c.mu.Lock()
	for _, t := range tags {
		c.tagGen[t]++
	}
	c.mu.Unlock()
	keys, err := c.store.MarkStale(ctx, tags...)
	c.saveMu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Strs("tags", tags).Msg("querycache: no se pudo marcar obsoleto")
	}
	c.log.Debug().Strs("tags", tags).Int("entries", len(keys)).Msg("querycache: invalidado")

	if !c.opts.BackgroundRefresh {
		return
	}
	for key, reg := range c.takeForRefresh(tags, keys) {
		c.wg.Add(1)
		go func(key string, reg registration) {
			defer c.wg.Done()
			rctx, cancel := context.WithTimeout(context.Background(), c.opts.RefreshTimeout)
			defer cancel()
			if _, err := c.refresh(rctx, key, reg.tags, reg.fetch); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("querycache: recarga en segundo plano fallida")
			}
		}(key, reg)
	}
}

// Wait espera a que terminen las recargas en segundo plano.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Registered número de claves con recarga registrada.
func (c *Cache) Registered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fetchers)
}

func (c *Cache) register(key string, tags []string, fetch fetchFunc) {
	if !c.opts.BackgroundRefresh {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock++
	c.fetchers[key] = registration{tags: tags, fetch: fetch, used: c.clock}
	for len(c.fetchers) > c.opts.MaxRegistered {
		c.evictOldestLocked()
	}
}

func (c *Cache) evictOldestLocked() {
	var (
		oldest    string
		oldestUse uint64
		found     bool
	)
	for key, reg := range c.fetchers {
		if !found || reg.used < oldestUse {
			oldest, oldestUse, found = key, reg.used, true
		}
	}
	if found {
		delete(c.fetchers, oldest)
	}
}

// takeForRefresh saca del registro las claves de tags y devuelve las que se recargan:
// vivas en el store, como máximo RefreshLimit, las de uso más reciente primero.
// Solo esas siguen registradas.
func (c *Cache) takeForRefresh(tags, live []string) map[string]registration {
	alive := make(map[string]struct{}, len(live))
	for _, k := range live {
		alive[k] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	type candidate struct {
		key string
		reg registration
	}
	var candidates []candidate
	for key, reg := range c.fetchers {
		if !sharesTag(reg.tags, tags) {
			continue
		}
		delete(c.fetchers, key)
		if _, ok := alive[key]; ok {
			candidates = append(candidates, candidate{key: key, reg: reg})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].reg.used > candidates[j].reg.used })
	if len(candidates) > c.opts.RefreshLimit {
		candidates = candidates[:c.opts.RefreshLimit]
	}
	out := make(map[string]registration, len(candidates))
	for _, cd := range candidates {
		c.fetchers[cd.key] = cd.reg
		out[cd.key] = cd.reg
	}
	return out
}

func (c *Cache) generation(tags []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t + "=" + strconv.FormatUint(c.tagGen[t], 10)
	}
	return strings.Join(parts, ",")
}

func sharesTag(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
