package rules_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lamyinia/riichicore/rules"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsCompetitiveBaseline(t *testing.T) {
	opts := rules.Default()
	require.True(t, opts.AkaDora)
	require.False(t, opts.KiriageMangan)
	require.True(t, opts.StrictAnkanAfterRiichi)
	require.Equal(t, 6, opts.ShantenThreshold)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	const body = "kiriage_mangan: true\nstrict_ankan_after_riichi: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	opts, err := rules.Load(path)
	require.NoError(t, err)
	require.True(t, opts.KiriageMangan)
	require.False(t, opts.StrictAnkanAfterRiichi)
	// Untouched fields keep their default values.
	require.True(t, opts.AkaDora)
	require.Equal(t, 6, opts.ShantenThreshold)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := rules.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shanten_threshold: 6\n"), 0o644))

	w, err := rules.NewWatcher(path, nil)
	require.NoError(t, err)
	require.Equal(t, 6, w.Get().ShantenThreshold)

	require.NoError(t, os.WriteFile(path, []byte("shanten_threshold: 3\n"), 0o644))
	require.Eventually(t, func() bool {
		return w.Get().ShantenThreshold == 3
	}, time.Second, 10*time.Millisecond)
}
