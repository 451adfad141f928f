package nutrition

import (
	"errors"
	"testing"

	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/pkg/common"
)

func TestNewUSDAClientRequiresAPIKey(t *testing.T) {
	client, err := NewUSDAClient(&config.USDAConfig{BaseURL: "https://api.nal.usda.gov/fdc/v1"})
	if err == nil {
		t.Fatal("expected error when API key is missing")
	}
	if client != nil {
		t.Error("expected nil client on configuration error")
	}

	var customErr *common.CustomError
	if !errors.As(err, &customErr) {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if customErr.Code != common.ErrMissingAPIKey.Code {
		t.Errorf("expected code %q, got %q", common.ErrMissingAPIKey.Code, customErr.Code)
	}
}
