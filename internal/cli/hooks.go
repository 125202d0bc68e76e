package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline stages and cache traffic at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLoadStart(_ context.Context, dir string) {
	h.logger.Debug("Load started", "dir", dir)
}

func (h logHooks) OnLoadComplete(_ context.Context, dir string, loaded, failed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Load failed", "dir", dir, "err", err)
		return
	}
	h.logger.Debug("Load finished", "loaded", loaded, "failed", failed, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnLayoutStart(_ context.Context, images int) {
	h.logger.Debug("Layout started", "images", images)
}

func (h logHooks) OnLayoutComplete(_ context.Context, columns int, d time.Duration, err error) {
	h.logger.Debug("Layout finished", "columns", columns, "duration", d, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("Render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("Render finished", "formats", formats, "duration", d.Round(time.Millisecond), "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "type", keyType, "bytes", size)
}
