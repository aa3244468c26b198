package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-view/internal/view"
)

type memoryStore map[string]map[string]interface{}

func (m memoryStore) Load(_ context.Context, key string) (map[string]interface{}, error) {
	data, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDataNotFound, key)
	}
	return data, nil
}

func writeTemplate(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestParseRenderRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req, err := parseRenderRequest(map[string]interface{}{
			"data": `{"request_id":"r-1","template":"user/card","data":{"name":"ada"},"locale":"de"}`,
		})
		require.NoError(t, err)
		assert.Equal(t, "r-1", req.RequestID)
		assert.Equal(t, "user/card", req.Template)
		assert.Equal(t, "de", req.Locale)
		assert.Equal(t, map[string]interface{}{"name": "ada"}, req.Data)
	})

	t.Run("generates request id", func(t *testing.T) {
		req, err := parseRenderRequest(map[string]interface{}{
			"data": `{"template":"home"}`,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, req.RequestID)
	})

	t.Run("missing data field", func(t *testing.T) {
		_, err := parseRenderRequest(map[string]interface{}{})
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := parseRenderRequest(map[string]interface{}{"data": "{"})
		assert.Error(t, err)
	})

	t.Run("missing template", func(t *testing.T) {
		_, err := parseRenderRequest(map[string]interface{}{"data": `{"request_id":"r-2"}`})
		assert.EqualError(t, err, "render request has no template")
	})
}

func TestRequestRenderer_RawScript(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "user/card.rtpl", "<?= greeting ?> <?= upper(name) ?>!")

	store := memoryStore{"defaults": {"greeting": "Hello"}}
	renderer := NewRequestRenderer(view.NewFactory(root), store, zap.NewNop())

	result, err := renderer.Render(context.Background(), &RenderRequest{
		RequestID: "r-1",
		Template:  "user/card",
		Data:      map[string]interface{}{"name": "ada"},
		DataKey:   "defaults",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello ADA!", result.Output)
	assert.Equal(t, view.EngineRaw, result.Engine)
	assert.Equal(t, "r-1", result.RequestID)
	assert.False(t, result.Timestamp.IsZero())
}

func TestRequestRenderer_CompiledWithLocale(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "home.hbs", "{{name}} ({{locale}})")

	renderer := NewRequestRenderer(view.NewFactory(root), nil, zap.NewNop())

	result, err := renderer.Render(context.Background(), &RenderRequest{
		Template: "home",
		Data:     map[string]interface{}{"name": "ada"},
		Locale:   "de",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada (de)", result.Output)
	assert.Equal(t, view.EngineCompiled, result.Engine)
}

func TestRequestRenderer_Errors(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "home.hbs", "hi")

	t.Run("template not found", func(t *testing.T) {
		renderer := NewRequestRenderer(view.NewFactory(root), nil, zap.NewNop())
		_, err := renderer.Render(context.Background(), &RenderRequest{Template: "missing"})
		assert.ErrorIs(t, err, view.ErrTemplateNotFound)
	})

	t.Run("unknown data key", func(t *testing.T) {
		renderer := NewRequestRenderer(view.NewFactory(root), memoryStore{}, zap.NewNop())
		_, err := renderer.Render(context.Background(), &RenderRequest{Template: "home", DataKey: "nope"})
		assert.ErrorIs(t, err, ErrDataNotFound)
	})

	t.Run("data key without store", func(t *testing.T) {
		renderer := NewRequestRenderer(view.NewFactory(root), nil, zap.NewNop())
		_, err := renderer.Render(context.Background(), &RenderRequest{Template: "home", DataKey: "defaults"})
		assert.Error(t, err)
	})
}

func TestHealthServer_TemplateRoot(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		hs := NewHealthServer(0, nil, t.TempDir(), zap.NewNop())
		rec := httptest.NewRecorder()
		hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "healthy", resp.Checks["templates"])
	})

	t.Run("missing root", func(t *testing.T) {
		hs := NewHealthServer(0, nil, filepath.Join(t.TempDir(), "absent"), zap.NewNop())
		rec := httptest.NewRecorder()
		hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "not ready")
	})
}
