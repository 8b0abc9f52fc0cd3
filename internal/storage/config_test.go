package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/gallery/internal/model"
	"github.com/nikbrunner/gallery/internal/storage"
	"gotest.tools/v3/assert"
)

func TestLoadConfig_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery", "config.json")

	cfg, err := storage.LoadConfig(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, storage.DefaultConfig())

	_, err = os.Stat(path)
	assert.NilError(t, err, "config file should be created with defaults")
}

func TestLoadConfig_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"sources":{"art":"/tmp/art.json"},"pageSize":4}`), 0644)
	assert.NilError(t, err)

	cfg, err := storage.LoadConfig(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Sources["art"], "/tmp/art.json")
	assert.Equal(t, cfg.PageSize, 4)
	assert.Equal(t, cfg.SwipeThreshold, storage.DefaultConfig().SwipeThreshold)
	assert.Equal(t, cfg.Timeout(), 15*time.Second)

	category, err := cfg.Category()
	assert.NilError(t, err)
	assert.Equal(t, category, model.CategoryComic)

	layout, err := cfg.Layout()
	assert.NilError(t, err)
	assert.Equal(t, layout, model.LayoutGrid)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := storage.LoadConfig(path)
	assert.Assert(t, err != nil)
}

func TestConfig_InvalidDefaults(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.DefaultCategory = "music"
	cfg.DefaultLayout = "masonry"

	_, err := cfg.Category()
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
	_, err = cfg.Layout()
	assert.ErrorIs(t, err, model.ErrUnknownLayout)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := storage.DefaultConfig()
	cfg.LogFile = "/tmp/gallery.log"
	cfg.Sources = map[string]string{"nft": "https://mirror.example.com/nfts.json"}

	assert.NilError(t, storage.SaveConfig(path, &cfg))

	loaded, err := storage.LoadConfig(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *loaded, cfg)
}
