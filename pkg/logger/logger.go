package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Options controls where Setup sends the standard logger in prod.
type Options struct {
	Dir  string // defaults to "logs"
	File string // defaults to "itemd.log"
}

// Setup configures the standard logger. Outside prod it writes to stdout,
// in prod it appends to Dir/File and falls back to stdout when the file
// can't be opened. The returned func closes the file.
func Setup(env string, opts Options) func() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	if env != "prod" {
		log.SetOutput(os.Stdout)
		return func() {}
	}

	logDir := opts.Dir
	if logDir == "" {
		logDir = "logs"
	}
	name := opts.File
	if name == "" {
		name = "itemd.log"
	}

	f, err := openLogFile(filepath.Join(logDir, name))
	if err != nil {
		log.SetOutput(os.Stdout)
		log.Printf("[logger] %v, fallback to stdout", err)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
