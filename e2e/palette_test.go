//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

const paletteConfig = `
[navigation]
base_url = "https://example.com"
opener = ["true"]

[[items]]
label = "Users"
keywords = ["users", "accounts"]
url = "/users"
`

func TestPaletteOpensWithFetchedItems(t *testing.T) {
	t.Parallel()
	srv, hits := itemServer(t, `[
		{"label": "Reports", "keywords": ["reports"], "url": "/reports"},
		{"label": "New widget", "keywords": ["widget"], "url": "/widgets", "input": "name", "method": "POST"}
	]`)

	tf := NewTUITest(t)
	defer tf.Cleanup()
	path := tf.WriteConfig(paletteConfig)

	require.NoError(t, tf.StartApp("--config", path, "--items-url", srv.URL))
	require.True(t, tf.SeePlain("to open the action palette"), "startup hint not shown")

	require.NoError(t, tf.Hotkey())
	require.True(t, tf.SeePlain("Reports"), "fetched item not shown:\n%s", tf.SnapshotPlain())
	assert.True(t, tf.SeePlain("Users"))
	assert.True(t, tf.SeePlain("New widget"))
	assert.Equal(t, int32(1), hits.Load())

	require.NoError(t, tf.SendKeys(KeyEsc))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, tf.Hotkey())
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), hits.Load(), "items are fetched once per session")
}

func TestPaletteFilterAndNavigate(t *testing.T) {
	t.Parallel()
	srv, _ := itemServer(t, `[{"label": "Reports", "keywords": ["reports"], "url": "/reports"}]`)

	tf := NewTUITest(t)
	defer tf.Cleanup()
	path := tf.WriteConfig(paletteConfig)

	require.NoError(t, tf.StartApp("--config", path, "--items-url", srv.URL))
	require.True(t, tf.SeePlain("to open the action palette"))

	require.NoError(t, tf.Hotkey())
	require.True(t, tf.SeePlain("Reports"))
	require.NoError(t, tf.Type("rep"))
	require.NoError(t, tf.SendKeys(KeyEnter))

	assert.True(t, tf.SeePlain("Opened https://example.com/reports"), "navigation status missing:\n%s", tf.SnapshotPlain())
}

func TestPaletteNoMatches(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	path := tf.WriteConfig(paletteConfig)

	require.NoError(t, tf.StartApp("--config", path))
	require.True(t, tf.SeePlain("to open the action palette"))

	require.NoError(t, tf.Hotkey())
	require.True(t, tf.SeePlain("Users"))
	require.NoError(t, tf.Type("zzz"))
	assert.True(t, tf.SeePlain("No matching actions"))
}

func TestFetchFailureIsReported(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tf := NewTUITest(t)
	defer tf.Cleanup()
	path := tf.WriteConfig(paletteConfig)

	require.NoError(t, tf.StartApp("--config", path, "--items-url", srv.URL))
	require.True(t, tf.SeePlain("to open the action palette"))

	require.NoError(t, tf.Hotkey())
	assert.True(t, tf.SeePlain("quick actions unavailable"), "fetch error not shown:\n%s", tf.SnapshotPlain())
}

func TestQuitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	path := tf.WriteConfig(paletteConfig)

	require.NoError(t, tf.StartApp("--config", path))
	require.True(t, tf.SeePlain("to open the action palette"))

	require.NoError(t, tf.SendKeys(KeyCtrlC))
	require.NoError(t, tf.WaitExit(3*time.Second))
}

func TestOpenFlagShowsPaletteAtStart(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	path := tf.WriteConfig(paletteConfig)

	require.NoError(t, tf.StartApp("--config", path, "--open"))
	assert.True(t, tf.SeePlain("Keyboard shortcuts"))
}
