package config

import "time"

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, path string) *Repository {
	return &Repository{backend: backend, path: path, busyTimeout: time.Second}
}

// NewCacheForTest creates a Cache config for testing purposes
func NewCacheForTest(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, maxBytes: 1024 * 1024}
}

// NewExportForTest creates an Export config for testing purposes
func NewExportForTest(dir string) *Export {
	return &Export{dir: dir}
}

// NewAppForTest creates an App config for testing purposes
func NewAppForTest(path string) *App {
	return &App{path: path}
}

var NewLogHandler = newLogHandler
