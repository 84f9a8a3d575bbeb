package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/decred/slog"
)

// ModelMetadata describes a registered model checkpoint. The JSON field
// names match the inference service's metadata files so an existing cache
// directory can be reused as-is.
type ModelMetadata struct {
	Name       string     `json:"model_name"`
	Path       string     `json:"model_path"`
	FileSize   int64      `json:"file_size"`
	FileHash   string     `json:"file_hash"`
	LoadedAt   *time.Time `json:"loaded_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	UseCount   int        `json:"use_count"`
	IsLoaded   bool       `json:"is_loaded"`
}

// CacheStats summarizes the cache contents.
type CacheStats struct {
	TotalModels    int   `json:"total_models"`
	LoadedModels   int   `json:"loaded_models"`
	TotalCacheSize int64 `json:"total_cache_size"`
	MaxModels      int   `json:"max_models"`
}

// ModelCache registers model checkpoints by name and tracks load and usage
// metadata across restarts. It holds no model weights; inference backends
// attach through ModelEngine. Past maxModels registrations the least-used
// entry is evicted.
type ModelCache struct {
	mu        sync.Mutex
	log       slog.Logger
	maxModels int
	cacheDir  string
	models    map[string]*ModelMetadata
}

const metadataFile = "metadata.json"

// NewModelCache opens (or creates) a cache directory and loads any
// persisted metadata from it.
func NewModelCache(cacheDir string, maxModels int, log slog.Logger) (*ModelCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	c := &ModelCache{
		log:       log,
		maxModels: maxModels,
		cacheDir:  cacheDir,
		models:    make(map[string]*ModelMetadata),
	}

	data, err := os.ReadFile(filepath.Join(cacheDir, metadataFile))
	switch {
	case os.IsNotExist(err):
		// Fresh cache.
	case err != nil:
		return nil, fmt.Errorf("read cache metadata: %w", err)
	default:
		if err := json.Unmarshal(data, &c.models); err != nil {
			return nil, fmt.Errorf("parse cache metadata: %w", err)
		}
		c.log.Infof("Loaded cache metadata for %d models", len(c.models))
	}

	return c, nil
}

// Register adds a model file to the cache. An empty name defaults to the
// file's base name. Registering an already-known name is a no-op.
func (c *ModelCache) Register(modelPath, name string) (string, error) {
	info, err := os.Stat(modelPath)
	if err != nil {
		return "", fmt.Errorf("model file: %w", err)
	}
	if name == "" {
		name = filepath.Base(modelPath)
	}

	hash, err := hashFile(modelPath)
	if err != nil {
		return "", fmt.Errorf("hash model file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.models[name]; ok {
		c.log.Debugf("Model %s already registered", name)
		return name, nil
	}

	if len(c.models) >= c.maxModels {
		c.evictLeastUsed()
	}

	c.models[name] = &ModelMetadata{
		Name:     name,
		Path:     modelPath,
		FileSize: info.Size(),
		FileHash: hash,
	}

	if err := c.save(); err != nil {
		c.log.Errorf("Failed to save cache metadata: %v", err)
	}
	c.log.Infof("Registered model: %s (%d bytes)", name, info.Size())
	return name, nil
}

// evictLeastUsed drops the entry with the lowest use count, breaking ties
// by oldest last use. Caller holds c.mu.
func (c *ModelCache) evictLeastUsed() {
	var victim string
	for name, md := range c.models {
		if victim == "" || lessUsed(md, c.models[victim]) {
			victim = name
		}
	}
	if victim != "" {
		c.log.Infof("Evicting model: %s", victim)
		delete(c.models, victim)
	}
}

func lessUsed(a, b *ModelMetadata) bool {
	if a.UseCount != b.UseCount {
		return a.UseCount < b.UseCount
	}
	at, bt := time.Time{}, time.Time{}
	if a.LastUsedAt != nil {
		at = *a.LastUsedAt
	}
	if b.LastUsedAt != nil {
		bt = *b.LastUsedAt
	}
	return at.Before(bt)
}

// Metadata returns a copy of the metadata for a registered model.
func (c *ModelCache) Metadata(name string) (ModelMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	md, ok := c.models[name]
	if !ok {
		return ModelMetadata{}, false
	}
	return *md, true
}

// List returns metadata for every registered model, ordered by name.
func (c *ModelCache) List() []ModelMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ModelMetadata, 0, len(c.models))
	for _, md := range c.models {
		out = append(out, *md)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Touch records one use of a model.
func (c *ModelCache) Touch(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	md, ok := c.models[name]
	if !ok {
		return
	}
	now := time.Now()
	md.LastUsedAt = &now
	md.UseCount++
	if err := c.save(); err != nil {
		c.log.Errorf("Failed to save cache metadata: %v", err)
	}
}

// MarkLoaded records that a model's weights are resident in an inference
// backend.
func (c *ModelCache) MarkLoaded(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	md, ok := c.models[name]
	if !ok {
		return
	}
	now := time.Now()
	md.IsLoaded = true
	md.LoadedAt = &now
	if err := c.save(); err != nil {
		c.log.Errorf("Failed to save cache metadata: %v", err)
	}
}

// Stats reports aggregate cache statistics.
func (c *ModelCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := CacheStats{
		TotalModels: len(c.models),
		MaxModels:   c.maxModels,
	}
	for _, md := range c.models {
		stats.TotalCacheSize += md.FileSize
		if md.IsLoaded {
			stats.LoadedModels++
		}
	}
	return stats
}

// save persists metadata to disk. Caller holds c.mu.
func (c *ModelCache) save() error {
	data, err := json.MarshalIndent(c.models, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.cacheDir, metadataFile), data, 0o644)
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
