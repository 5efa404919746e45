package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var once sync.Once

func init() {
	once.Do(func() {
		modulePrefix := getModulePrefix()

		logLevel := slog.LevelInfo
		if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
			if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
				panic(fmt.Sprintf("invalid log level: %s", logLevelStr))
			}
		}

		if logLevel == slog.LevelDebug {
			replacer := func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					if source, ok := a.Value.Any().(*slog.Source); ok {
						source.File = cleanSourcePath(source.File, modulePrefix)
					}
				}
				if err, ok := a.Value.Any().(error); ok {
					aErr := tint.Err(err)
					aErr.Key = a.Key
					return aErr
				}
				return a
			}

			handler := tint.NewHandler(os.Stdout, &tint.Options{
				Level:       slog.LevelDebug,
				TimeFormat:  time.TimeOnly,
				ReplaceAttr: replacer,
				AddSource:   true,
			})

			slog.SetDefault(slog.New(handler))
			slog.Info("debug logging enabled")
			return
		}

		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	})
}

// getModulePrefix extracts the module path from runtime build info so source
// paths in debug logs can be shown relative to the repository root.
func getModulePrefix() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		if wd, err := os.Getwd(); err == nil {
			return "/" + filepath.Base(wd) + "/"
		}
		return "/supaportal/"
	}

	parts := strings.Split(info.Main.Path, "/")
	if len(parts) > 0 {
		return "/" + parts[len(parts)-1] + "/"
	}

	return "/" + info.Main.Path + "/"
}

// cleanSourcePath strips the module prefix from a source file path.
func cleanSourcePath(filePath, modulePrefix string) string {
	parts := strings.Split(filePath, modulePrefix)
	if len(parts) == 2 {
		return parts[1]
	}

	cleaned := filePath
	if idx := strings.LastIndex(cleaned, "/go/src/"); idx != -1 {
		cleaned = cleaned[idx+8:]
	} else if idx := strings.LastIndex(cleaned, "/src/"); idx != -1 {
		cleaned = cleaned[idx+5:]
	}

	return cleaned
}
