package common

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCacheLogsIncludeKey(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prevLogger, prevMode := Logger, LogMode
	Logger, LogMode = zap.New(core), ""
	defer func() { Logger, LogMode = prevLogger, prevMode }()

	LogCacheHit("nutrition", "Garlic, raw")
	LogCacheMiss("nutrition", "Onions, raw")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	for i, want := range []string{"Garlic, raw", "Onions, raw"} {
		fields := entries[i].ContextMap()
		if fields["類型"] != "nutrition" {
			t.Errorf("entry %d missing cache type, fields: %v", i, fields)
		}
		if fields["鍵"] != want {
			t.Errorf("entry %d key = %v, want %q", i, fields["鍵"], want)
		}
	}
}
