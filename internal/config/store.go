// Package config persists application settings to a small JSON file. The
// file is read once at startup; the download path is written back on every
// change and the whole config is written again on shutdown. I/O errors are
// logged and swallowed so the application always starts with usable defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ytget/yt-playlist-downloader/internal/platform"
)

// DefaultFileName is the config file created next to the executable
const DefaultFileName = "downloader_config.json"

// Default values
const (
	DefaultQuality      = "best"
	DefaultFormat       = "mp4"
	DefaultFastAnalysis = true
)

// Config holds the persisted settings. download_path is the only key older
// config files are guaranteed to contain; unknown keys are ignored.
type Config struct {
	DownloadPath string `json:"download_path"`
	Quality      string `json:"quality,omitempty"`
	Format       string `json:"format,omitempty"`
	FastAnalysis bool   `json:"fast_analysis"`
}

// Store loads and persists the configuration file
type Store struct {
	path   string
	logger *log.Logger

	mu  sync.Mutex
	cfg Config
}

// NewStore reads the config file at path. A missing file or a parse error
// yields defaults: the user's Downloads folder, best quality, mp4.
func NewStore(path string, logger *log.Logger) *Store {
	s := &Store{path: path, logger: logger, cfg: defaults()}
	s.load()
	return s
}

// defaults returns the settings used when no config file exists
func defaults() Config {
	dir, err := platform.HomeDownloadsDir()
	if err != nil {
		dir = os.TempDir()
	}
	return Config{
		DownloadPath: dir,
		Quality:      DefaultQuality,
		Format:       DefaultFormat,
		FastAnalysis: DefaultFastAnalysis,
	}
}

// load merges the file contents over the defaults. Errors are logged and
// swallowed; the defaults stay in effect.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read config file", "path", s.path, "err", err)
		}
		return
	}

	// FastAnalysis is a pointer here so a file written before the key
	// existed keeps the default instead of forcing false
	var loaded struct {
		DownloadPath string `json:"download_path"`
		Quality      string `json:"quality"`
		Format       string `json:"format"`
		FastAnalysis *bool  `json:"fast_analysis"`
	}
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("failed to parse config file", "path", s.path, "err", err)
		return
	}

	if loaded.DownloadPath != "" {
		s.cfg.DownloadPath = loaded.DownloadPath
	}
	if loaded.Quality != "" {
		s.cfg.Quality = loaded.Quality
	}
	if loaded.Format != "" {
		s.cfg.Format = loaded.Format
	}
	if loaded.FastAnalysis != nil {
		s.cfg.FastAnalysis = *loaded.FastAnalysis
	}
}

// Config returns a copy of the current settings
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetDownloadPath updates the download directory and persists immediately
func (s *Store) SetDownloadPath(dir string) {
	s.mu.Lock()
	s.cfg.DownloadPath = dir
	s.mu.Unlock()

	if err := s.Save(); err != nil {
		s.logger.Warn("failed to save config", "err", err)
	}
}

// SetQuality updates the quality preset; persisted on shutdown
func (s *Store) SetQuality(quality string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Quality = quality
}

// SetFormat updates the container format; persisted on shutdown
func (s *Store) SetFormat(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Format = format
}

// SetFastAnalysis updates the fast-analysis toggle; persisted on shutdown
func (s *Store) SetFastAnalysis(fast bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.FastAnalysis = fast
}

// Save writes the current settings to the config file
func (s *Store) Save() error {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
