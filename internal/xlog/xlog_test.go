package xlog_test

import (
	"testing"

	"github.com/lamyinia/riichicore/internal/xlog"
)

func TestNewAndLevelsDoNotPanic(t *testing.T) {
	lg := xlog.New("test")
	lg.SetLevel("debug")
	lg.Debug("starting", "seat", 0)
	lg.Info("query dispatched", "query_id", "abc-123")

	scoped := lg.With("query_id", "abc-123")
	scoped.Warn("high shanten, degenerate result")
	scoped.Error("unexpected table miss")
}

func TestSetLevelIgnoresUnknownValue(t *testing.T) {
	lg := xlog.New("test")
	lg.SetLevel("not-a-real-level")
	lg.Info("still logs at the default level")
}
