package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_ProdWritesFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cleanup := Setup("prod", Options{Dir: filepath.Join(dir, "nested"), File: "test.log"})
	log.Printf("[itemd] hello")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "nested", "test.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[itemd] hello") {
		t.Fatalf("log file missing line: %q", string(data))
	}
}

func TestSetup_DevUsesStdout(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cleanup := Setup("dev", Options{Dir: t.TempDir()})
	defer cleanup()

	if log.Writer() != os.Stdout {
		t.Fatalf("dev logger should write to stdout")
	}
}
