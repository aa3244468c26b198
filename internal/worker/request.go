package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-view/internal/helper"
	"github.com/aescanero/dago-node-view/internal/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RenderRequest represents a render work request
type RenderRequest struct {
	RequestID string                 `json:"request_id"`
	Template  string                 `json:"template"`
	Data      map[string]interface{} `json:"data,omitempty"`
	DataKey   string                 `json:"data_key,omitempty"`
	Locale    string                 `json:"locale,omitempty"`
}

// RenderResult represents the outcome of a render request
type RenderResult struct {
	RequestID string    `json:"request_id"`
	Template  string    `json:"template"`
	Engine    string    `json:"engine"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// DataStore loads shared view data by key
type DataStore interface {
	Load(ctx context.Context, key string) (map[string]interface{}, error)
}

// RequestRenderer turns render requests into rendered output
type RequestRenderer struct {
	views  *view.Factory
	store  DataStore
	logger *zap.Logger
}

// NewRequestRenderer creates a request renderer. store may be nil when requests
// never reference stored data.
func NewRequestRenderer(views *view.Factory, store DataStore, logger *zap.Logger) *RequestRenderer {
	return &RequestRenderer{
		views:  views,
		store:  store,
		logger: logger,
	}
}

// Render renders one request through a fresh view
func (r *RequestRenderer) Render(ctx context.Context, request *RenderRequest) (*RenderResult, error) {
	var base map[string]interface{}
	if request.DataKey != "" {
		if r.store == nil {
			return nil, fmt.Errorf("data_key %q given but no data store configured", request.DataKey)
		}
		stored, err := r.store.Load(ctx, request.DataKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load view data: %w", err)
		}
		base = stored
	}

	v := r.views.Get(request.Template, base, helper.Standard())
	if request.Locale != "" {
		v.SetOne("locale", request.Locale)
	}

	engine := v.Engine()
	output, err := v.RenderContext(ctx, request.Data, nil)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("rendered request",
		zap.String("request_id", request.RequestID),
		zap.String("template", request.Template),
		zap.String("engine", engine),
		zap.Int("bytes", len(output)),
	)

	return &RenderResult{
		RequestID: request.RequestID,
		Template:  request.Template,
		Engine:    engine,
		Output:    output,
		Timestamp: time.Now().UTC(),
	}, nil
}

// parseRenderRequest parses a render request from a Redis message
func parseRenderRequest(values map[string]interface{}) (*RenderRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request RenderRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal render request: %w", err)
	}

	if request.Template == "" {
		return nil, fmt.Errorf("render request has no template")
	}

	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	return &request, nil
}
