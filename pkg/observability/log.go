package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes events to a logger, at debug level except for HTTP
// responses. It implements every hook interface.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnResolveStart(_ context.Context, passID string, tokens int) {
	h.logger.Debug("resolve start", "pass", passID, "tokens", tokens)
}

func (h *LogHooks) OnResolveComplete(_ context.Context, passID string, resolved, failed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "pass", passID, "err", err, "duration", d)
		return
	}
	h.logger.Debug("resolve complete", "pass", passID, "resolved", resolved, "failed", failed, "duration", d)
}

func (h *LogHooks) OnValidateComplete(_ context.Context, passID string, errors, warnings int, d time.Duration) {
	h.logger.Debug("validate complete", "pass", passID, "errors", errors, "warnings", warnings, "duration", d)
}

func (h *LogHooks) OnProjectComplete(_ context.Context, passID string, keys int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("project failed", "pass", passID, "err", err)
		return
	}
	h.logger.Debug("project complete", "pass", passID, "keys", keys, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnDocumentsLoaded(_ context.Context, store string, documents int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load documents failed", "store", store, "err", err, "duration", d)
		return
	}
	h.logger.Debug("documents loaded", "store", store, "documents", documents, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ StoreHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
