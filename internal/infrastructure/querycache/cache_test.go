package querycache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/axion-crm/internal/infrastructure/querycache"
)

const tagUsers = "admin-users"

// counter es un origen de datos que devuelve "v<n>" en la n-ésima llamada.
type counter struct {
	calls atomic.Int32
}

func (c *counter) fetch(context.Context) (string, error) {
	n := c.calls.Add(1)
	return "v" + string(rune('0'+n)), nil
}

func newCache(background bool) *querycache.Cache {
	return querycache.New(querycache.NewMemoryStore(), nil, querycache.Options{BackgroundRefresh: background})
}

func TestGet_CacheaResultado(t *testing.T) {
	c := newCache(false)
	src := &counter{}
	ctx := context.Background()

	v1, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)
	v2, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)

	assert.Equal(t, "v1", v1)
	assert.Equal(t, "v1", v2)
	assert.EqualValues(t, 1, src.calls.Load(), "la segunda lectura sale de caché")
}

func TestInvalidate_SiguienteLecturaReconsulta(t *testing.T) {
	c := newCache(false)
	src := &counter{}
	ctx := context.Background()

	_, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)

	c.Invalidate(ctx, tagUsers)

	v, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", v, "tras invalidar se consulta el origen antes de entregar")
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestInvalidate_OtraEtiqueta_NoAfecta(t *testing.T) {
	c := newCache(false)
	src := &counter{}
	ctx := context.Background()

	_, _ = querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	c.Invalidate(ctx, "admin-collaborators")
	v, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
}

func TestGet_ErrorNoSeCachea(t *testing.T) {
	c := newCache(false)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := querycache.Get(ctx, c, "k", []string{tagUsers}, func(context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	v, err := querycache.Get(ctx, c, "k", []string{tagUsers}, func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

// Una consulta que empezó antes de invalidar puede devolver datos viejos a su llamador,
// pero no debe quedar guardada como fresca.
func TestInvalidate_ConsultaEnCurso_NoQuedaFresca(t *testing.T) {
	c := newCache(false)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	slow := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
			return "viejo", nil
		}
		return "nuevo", nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := querycache.Get(ctx, c, "k", []string{tagUsers}, slow)
		assert.NoError(t, err)
		assert.Equal(t, "viejo", v)
	}()

	<-entered
	c.Invalidate(ctx, tagUsers)
	close(release)
	wg.Wait()

	v, err := querycache.Get(ctx, c, "k", []string{tagUsers}, slow)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", v)
}

func TestInvalidate_RecargaEnSegundoPlano(t *testing.T) {
	c := newCache(true)
	src := &counter{}
	ctx := context.Background()

	_, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)

	c.Invalidate(ctx, tagUsers)
	c.Wait()
	assert.EqualValues(t, 2, src.calls.Load(), "la recarga ocurre sin esperar a un lector")

	v, err := querycache.Get(ctx, c, "users:list", []string{tagUsers}, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.EqualValues(t, 2, src.calls.Load(), "el lector recibe el valor ya recargado")
}

func TestGet_Estructuras(t *testing.T) {
	type row struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	c := newCache(false)
	got, err := querycache.Get(context.Background(), c, "rows", []string{tagUsers},
		func(context.Context) ([]row, error) {
			return []row{{ID: "1", Name: "Ana"}}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, []row{{ID: "1", Name: "Ana"}}, got)
}

func TestMemoryStore_Expira(t *testing.T) {
	s := querycache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "k", []byte(`"x"`), []string{tagUsers}, time.Nanosecond))
	time.Sleep(time.Millisecond)
	_, found, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_MarkStale(t *testing.T) {
	s := querycache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "a", []byte("1"), []string{tagUsers}, 0))
	require.NoError(t, s.Save(ctx, "b", []byte("2"), []string{"other"}, 0))

	keys, err := s.MarkStale(ctx, tagUsers)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys)

	e, found, _ := s.Load(ctx, "a")
	assert.True(t, found)
	assert.True(t, e.Stale)
	e, _, _ = s.Load(ctx, "b")
	assert.False(t, e.Stale)
}

// Muchas páginas distintas bajo la misma etiqueta: una invalidación recarga como máximo
// RefreshLimit claves y el registro no crece sin límite.
func TestInvalidate_RecargasAcotadas(t *testing.T) {
	c := querycache.New(querycache.NewMemoryStore(), nil, querycache.Options{
		BackgroundRefresh: true,
		MaxRegistered:     50,
		RefreshLimit:      10,
	})
	ctx := context.Background()
	var calls atomic.Int32
	fetch := func(context.Context) (int, error) { return int(calls.Add(1)), nil }

	for i := 0; i < 500; i++ {
		_, err := querycache.Get(ctx, c, fmt.Sprintf("users:list:20:%d", i), []string{tagUsers}, fetch)
		require.NoError(t, err)
	}
	require.EqualValues(t, 500, calls.Load())
	assert.Equal(t, 50, c.Registered())

	c.Invalidate(ctx, tagUsers)
	c.Wait()
	assert.EqualValues(t, 510, calls.Load())
	assert.Equal(t, 10, c.Registered())

	c.Invalidate(ctx, tagUsers)
	c.Wait()
	assert.EqualValues(t, 520, calls.Load())
}

// Se recargan las claves de uso más reciente; el resto se consulta al volver a leerlas.
func TestInvalidate_RecargaLasMasRecientes(t *testing.T) {
	c := querycache.New(querycache.NewMemoryStore(), nil, querycache.Options{
		BackgroundRefresh: true,
		RefreshLimit:      1,
	})
	ctx := context.Background()
	old, recent := &counter{}, &counter{}

	_, _ = querycache.Get(ctx, c, "old", []string{tagUsers}, old.fetch)
	_, _ = querycache.Get(ctx, c, "recent", []string{tagUsers}, recent.fetch)

	c.Invalidate(ctx, tagUsers)
	c.Wait()
	assert.EqualValues(t, 1, old.calls.Load())
	assert.EqualValues(t, 2, recent.calls.Load())

	v, err := querycache.Get(ctx, c, "old", []string{tagUsers}, old.fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", v, "la obsoleta sin recarga se consulta antes de entregarse")
}

func TestMemoryStore_MarkStale_IgnoraExpiradas(t *testing.T) {
	s := querycache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "viva", []byte("1"), []string{tagUsers}, 0))
	require.NoError(t, s.Save(ctx, "expira", []byte("2"), []string{tagUsers}, time.Nanosecond))
	time.Sleep(time.Millisecond)

	keys, err := s.MarkStale(ctx, tagUsers)
	require.NoError(t, err)
	assert.Equal(t, []string{"viva"}, keys)
}
