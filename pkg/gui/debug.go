package gui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/config"
)

// logFileName is written next to the config file
const logFileName = "bottleneck-gui.log"

// DebugLog logs a message to the standard logger and appends it to the
// GUI log file
func DebugLog(level, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", level, message)

	if f, err := os.OpenFile(LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
		fmt.Fprintf(f, "[%s] %s: %s\n", timestamp, level, message)
		_ = f.Close()
	}
}

// LogPath returns the GUI log file location
func LogPath() string {
	return filepath.Join(config.Dir(), logFileName)
}
