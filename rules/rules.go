// Package rules holds the table-rule toggles the engine leaves open as
// explicit options rather than hardcoded behavior (spec §9 Open Questions).
package rules

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Options is the full set of rule toggles a table can be configured with.
// Default returns the competitive-ruleset baseline; the zero Options differs
// from it (aka dora off, lax post-riichi ankan, shanten threshold 0).
type Options struct {
	Base `mapstructure:",squash"`
}

// Base is the flat set of mapstructure-tagged fields, split out from
// Options so future grouped sections (e.g. a per-table override block) can
// embed it the same way the teacher's per-server Configuration structs
// embed AConfig.
type Base struct {
	AkaDora                bool `mapstructure:"aka_dora"`
	KiriageMangan          bool `mapstructure:"kiriage_mangan"`
	StrictAnkanAfterRiichi bool `mapstructure:"strict_ankan_after_riichi"`
	ShantenThreshold       int  `mapstructure:"shanten_threshold"`
}

// Default returns the competitive-ruleset baseline: aka dora on, kiriage
// mangan off, strict post-riichi ankan, shanten threshold 6 (spec §4.5:
// "for cur_shanten > 6 the engine returns a degenerate result").
func Default() Options {
	return Options{Base{
		AkaDora:                true,
		KiriageMangan:          false,
		StrictAnkanAfterRiichi: true,
		ShantenThreshold:       6,
	}}
}

// Load reads rule options from configFile (any format viper supports: yaml,
// json, toml) layered over Default(), following the teacher's
// common/config.Load shape: a fresh viper instance, defaults seeded before
// reading, then Unmarshal into the target struct.
func Load(configFile string) (Options, error) {
	opts := Default()

	v := viper.New()
	v.SetConfigFile(configFile)
	seedDefaults(v, opts)

	if err := v.ReadInConfig(); err != nil {
		return Options{}, fmt.Errorf("rules: reading config %q: %w", configFile, err)
	}
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("rules: unmarshaling config %q: %w", configFile, err)
	}
	return opts, nil
}

func seedDefaults(v *viper.Viper, opts Options) {
	v.SetDefault("aka_dora", opts.AkaDora)
	v.SetDefault("kiriage_mangan", opts.KiriageMangan)
	v.SetDefault("strict_ankan_after_riichi", opts.StrictAnkanAfterRiichi)
	v.SetDefault("shanten_threshold", opts.ShantenThreshold)
}

// Watcher holds a live-reloadable Options value, reloaded from disk on
// every write to configFile via fsnotify, matching the teacher's
// viper.WatchConfig wiring in common/config (there gated behind a
// NATS-driven reload notice; here driven directly by fsnotify since this
// module has no message bus).
type Watcher struct {
	mu   sync.RWMutex
	opts Options
	v    *viper.Viper
}

// NewWatcher loads configFile once and starts watching it for changes.
// onError, if non-nil, receives errors from subsequent reload attempts
// (the initial load's error is returned directly).
func NewWatcher(configFile string, onError func(error)) (*Watcher, error) {
	opts := Default()

	v := viper.New()
	v.SetConfigFile(configFile)
	seedDefaults(v, opts)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("rules: reading config %q: %w", configFile, err)
	}
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("rules: unmarshaling config %q: %w", configFile, err)
	}

	w := &Watcher{opts: opts, v: v}

	v.OnConfigChange(func(_ fsnotify.Event) {
		w.mu.Lock()
		defer w.mu.Unlock()
		var next Options
		if err := v.Unmarshal(&next); err != nil {
			if onError != nil {
				onError(fmt.Errorf("rules: reload %q: %w", configFile, err))
			}
			return
		}
		w.opts = next
	})
	v.WatchConfig()

	return w, nil
}

// Get returns the current Options snapshot.
func (w *Watcher) Get() Options {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.opts
}
