package disk

import (
	"runtime"
	"testing"
)

func Test_Classify(t *testing.T) {
	tests := []struct {
		name        string
		usedPercent float64
		expected    Status
	}{
		{"Good_50", 50, StatusGood},
		{"Good_79.9", 79.9, StatusGood},
		{"Warning_80", 80, StatusWarning},
		{"Warning_85", 85, StatusWarning},
		{"Warning_89.9", 89.9, StatusWarning},
		{"Critical_90", 90, StatusCritical},
		{"Critical_95", 95, StatusCritical},
		{"Critical_100", 100, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.usedPercent)
			if got.Status != tt.expected {
				t.Errorf("Classify(%v) = %q, want %q", tt.usedPercent, got.Status, tt.expected)
			}
			if got.Message == "" {
				t.Error("expected a non-empty advisory message")
			}
		})
	}
}

func Test_Usage_ValidPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("statfs not available on windows")
	}

	usage, err := Usage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usage.TotalBytes <= 0 {
		t.Errorf("expected positive total, got %d", usage.TotalBytes)
	}
	if usage.UsedBytes < 0 || usage.FreeBytes < 0 {
		t.Errorf("expected non-negative used/free, got %d/%d", usage.UsedBytes, usage.FreeBytes)
	}
	if usage.UsedPercent < 0 || usage.UsedPercent > 100 {
		t.Errorf("expected percent in [0,100], got %v", usage.UsedPercent)
	}
}

func Test_Usage_MissingPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("statfs not available on windows")
	}

	if _, err := Usage("/definitely/not/a/real/path"); err == nil {
		t.Error("expected error for nonexistent path")
	}
}
