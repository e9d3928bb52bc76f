package appdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOverrideAndPath(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "state")
	SetOverride(tmp)
	defer SetOverride("")

	p, err := Path("logs.db")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if p != filepath.Join(tmp, "logs.db") {
		t.Errorf("Expected path under override, got %s", p)
	}
	if _, err := os.Stat(tmp); err != nil {
		t.Errorf("Expected directory to be created: %v", err)
	}
}

func TestAbsolutePathUntouched(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.db")
	p, err := Path(abs)
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if p != abs {
		t.Errorf("Expected %s, got %s", abs, p)
	}
}
