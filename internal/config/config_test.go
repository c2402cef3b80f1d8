package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickaction/internal/domain"
)

const sampleConfig = `
version = 1

[hotkey]
modifier = "alt"
keys = ["space"]

[item_source]
url = "http://localhost:8080/quick_actions"
timeout = "3s"

[item_source.headers]
Authorization = "Bearer abc"

[navigation]
base_url = "http://localhost:8080"

[display]
min_icons = 1
max_rows = 5

[display.icons]
"fas fa-user" = "U"

[[items]]
label = "Users"
keywords = ["user", "people"]
icons = ["fas fa-user"]
url = "/users"

[[items]]
label = "New Widget"
keywords = ["widget new"]
input = "name"
placeholder = "Widget name"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := NewConfigServiceWithBus(nil, path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "alt", cfg.Hotkey.Modifier)
	assert.Equal(t, []string{"space"}, cfg.Hotkey.Keys)
	assert.Equal(t, 3*time.Second, cfg.ItemSource.Timeout.Duration)
	assert.Equal(t, "Bearer abc", cfg.ItemSource.Headers["Authorization"])
	assert.Equal(t, "http://localhost:8080", cfg.Navigation.BaseURL)
	assert.NotEmpty(t, cfg.Navigation.Opener, "opener keeps its default")
	assert.Equal(t, 1, cfg.Display.MinIcons)
	assert.Equal(t, 5, cfg.Display.MaxRows)
	assert.Equal(t, "U", cfg.Display.Icons["fas fa-user"])

	items, err := cfg.StaticItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.NavigateTarget{URL: "/users"}, items[0].Target)
	assert.Equal(t, domain.FormTarget{Field: "name", Placeholder: "Widget name", Method: "POST"}, items[1].Target)
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "version = 1\n")

	cfg, err := NewConfigServiceWithBus(nil, path).LoadFromPath(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Hotkey, cfg.Hotkey)
	assert.Equal(t, def.ItemSource.Timeout, cfg.ItemSource.Timeout)
	assert.Equal(t, def.Display.MaxRows, cfg.Display.MaxRows)
	assert.Empty(t, cfg.Items)
}

func TestLoadFromPathRejectsInvalidItem(t *testing.T) {
	path := writeConfig(t, `
[[items]]
label = "Broken"
keywords = ["broken"]
`)

	_, err := NewConfigServiceWithBus(nil, path).LoadFromPath(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTarget)
}

func TestLoadFromPathRejectsBadModifier(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
modifier = "hyper"
`)

	_, err := NewConfigServiceWithBus(nil, path).LoadFromPath(path)
	assert.ErrorContains(t, err, "hyper")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", FileName)

	cfg, err := NewConfigServiceWithBus(nil, path).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	svc := NewConfigServiceWithBus(nil, path)

	cfg := DefaultConfig()
	cfg.ItemSource.URL = "http://example.test/items"
	cfg.Items = []domain.WireItem{
		{Label: "Docs", Keywords: []string{"docs"}, URL: "/docs"},
		{Label: "Help", Keywords: []string{"help"}, JS: "help"},
	}
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.ItemSource, loaded.ItemSource)
	assert.Equal(t, cfg.Items, loaded.Items)
	assert.Equal(t, cfg.Hotkey, loaded.Hotkey)
}
