// Package cache persists ledger categories in a small JSON file so the
// bot does not hit the spreadsheet API on every category lookup.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"finbot/internal/domain"

	"go.uber.org/zap"
)

// TTL is how long a cache entry stays valid; checked at read time.
const TTL = 24 * time.Hour

// fileFormat is the on-disk document:
// {"timestamp": "<RFC 3339>", "categories": {"<kind>": ["<name>", ...]}}
type fileFormat struct {
	Timestamp  string              `json:"timestamp"`
	Categories map[string][]string `json:"categories"`
}

// Info describes the state of the cache file for the management menu.
type Info struct {
	Exists    bool
	Corrupt   bool
	Expired   bool
	CreatedAt time.Time
	AgeHours  float64
	Counts    map[domain.Kind]int
	Kinds     []string
	Total     int
}

// Manager reads and writes the category cache file.
type Manager struct {
	path   string
	ttl    time.Duration
	logger *zap.Logger
}

// NewManager creates a manager for the given cache file path.
func NewManager(path string, logger *zap.Logger) *Manager {
	return &Manager{path: path, ttl: TTL, logger: logger}
}

// Load returns the cached categories, or nil when the cache is missing,
// expired, or unreadable. Cache problems never surface as errors; they
// degrade to a miss.
func (m *Manager) Load() map[domain.Kind][]string {
	doc, err := m.read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.logger.Warn("Category cache unreadable, treating as miss",
				zap.String("path", m.path),
				zap.Error(err),
			)
		}
		return nil
	}

	if m.expired(doc.Timestamp) {
		m.logger.Info("Category cache expired", zap.String("path", m.path))
		return nil
	}

	categories := make(map[domain.Kind][]string, len(doc.Categories))
	for kind, names := range doc.Categories {
		categories[domain.Kind(kind)] = names
	}
	return categories
}

// Save overwrites the cache with the given categories and a fresh
// timestamp. The document is written to a temp file and renamed so a
// concurrent reader sees either the old or the new complete document.
func (m *Manager) Save(categories map[domain.Kind][]string) error {
	doc := fileFormat{
		Timestamp:  time.Now().Format(time.RFC3339),
		Categories: make(map[string][]string, len(categories)),
	}
	for kind, names := range categories {
		doc.Categories[string(kind)] = names
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(m.path), ".categories-*.json")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	total := 0
	for _, names := range categories {
		total += len(names)
	}
	m.logger.Info("Category cache saved",
		zap.String("path", m.path),
		zap.Int("total_categories", total),
	)
	return nil
}

// Clear deletes the cache file. Clearing an already-absent cache succeeds.
func (m *Manager) Clear() error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// IsValid reports whether a non-expired cache entry exists.
func (m *Manager) IsValid() bool {
	doc, err := m.read()
	if err != nil {
		return false
	}
	return !m.expired(doc.Timestamp)
}

// GetInfo inspects the cache file without ever failing: a missing file
// reports Exists=false, an undecodable one reports Corrupt=true.
func (m *Manager) GetInfo() Info {
	doc, err := m.read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}
		}
		return Info{Exists: true, Corrupt: true}
	}

	info := Info{
		Exists: true,
		Counts: make(map[domain.Kind]int, len(doc.Categories)),
	}
	for kind, names := range doc.Categories {
		info.Counts[domain.Kind(kind)] = len(names)
		info.Kinds = append(info.Kinds, kind)
		info.Total += len(names)
	}
	sort.Strings(info.Kinds)

	createdAt, err := time.Parse(time.RFC3339, doc.Timestamp)
	if err != nil {
		info.Corrupt = true
		return info
	}
	info.CreatedAt = createdAt
	info.AgeHours = time.Since(createdAt).Hours()
	info.Expired = m.expired(doc.Timestamp)
	return info
}

func (m *Manager) read() (*fileFormat, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, err
	}
	var doc fileFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cache: %w", err)
	}
	return &doc, nil
}

// expired treats a missing or malformed timestamp as expired.
func (m *Manager) expired(timestamp string) bool {
	createdAt, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return true
	}
	return time.Since(createdAt) >= m.ttl
}
