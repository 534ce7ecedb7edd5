package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowboardhq/flowboard/pkg/cache"
	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/observability"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// Runner encapsulates view composition with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store composed results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Stats collects timings and sizes for one Execute call.
type Stats struct {
	ComposeTime time.Duration `json:"compose_time"`
	NodeCount   int           `json:"node_count"`
	EdgeCount   int           `json:"edge_count"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	ComposeHit bool `json:"compose_hit"`
}

// Result bundles the composed view with execution metadata.
type Result struct {
	Data         *ViewData `json:"data"`
	SnapshotHash string    `json:"snapshot_hash"`
	ViewHash     string    `json:"view_hash"`
	Stats        Stats     `json:"stats"`
	CacheInfo    CacheInfo `json:"cache_info"`
}

// Execute composes a view with caching. The cache key derives from the
// snapshot and view content hashes, so any change to either recomputes.
func (r *Runner) Execute(ctx context.Context, snap model.Snapshot, cfg view.Config) (*Result, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid view: %w", err)
	}

	result := &Result{
		Stats: Stats{NodeCount: len(snap.Nodes), EdgeCount: len(snap.Edges)},
	}

	snapData, err := model.MarshalSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot for cache key: %w", err)
	}
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("serialize view for cache key: %w", err)
	}
	result.SnapshotHash = cache.Hash(snapData)
	result.ViewHash = cache.Hash(cfgData)
	cacheKey := r.Keyer.ComposeKey(result.SnapshotHash, result.ViewHash)

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached ViewData
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "compose")
			result.Data = &cached
			result.CacheInfo.ComposeHit = true
			r.Logger.Debug("compose cache hit", "style", cfg.Style, "key", cacheKey)
			return result, nil
		}
		// Undecodable entry - fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "compose")

	composeStart := time.Now()
	data, err := Compose(ctx, snap, cfg)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Stats.ComposeTime = time.Since(composeStart)

	r.Logger.Info("composed view",
		"style", cfg.Style,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ComposeTime)

	// Cache the result
	if encoded, err := json.Marshal(data); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, encoded, cache.TTLCompose)
		observability.Cache().OnCacheSet(ctx, "compose", len(encoded))
	}

	return result, nil
}

// ComposeHash returns the combined content hash identifying this result.
// Derived artifacts (rendered SVGs) key off it.
func (res *Result) ComposeHash() string {
	return cache.Hash([]byte(res.SnapshotHash + ":" + res.ViewHash))
}

// RenderArtifact returns a cached rendered artifact for res, invoking produce
// on a miss and caching whatever it returns. The boolean reports a cache hit.
func (r *Runner) RenderArtifact(ctx context.Context, res *Result, format string, produce func() ([]byte, error)) ([]byte, bool, error) {
	key := r.Keyer.RenderKey(res.ComposeHash(), format)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		r.Logger.Debug("render cache hit", "format", format, "key", key)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := produce()
	if err != nil {
		return nil, false, err
	}
	_ = r.Cache.Set(ctx, key, data, cache.TTLRender)
	observability.Cache().OnCacheSet(ctx, "render", len(data))
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
