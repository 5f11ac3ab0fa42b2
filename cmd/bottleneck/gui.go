package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/mscrnt/project_bottleneck/pkg/config"
	"github.com/spf13/cobra"
)

const guiBinaryName = "bottleneck-gui"

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical analyzer",
		Long: `Launch the Bottleneck desktop window.

The window shows the detected hardware, the bottleneck verdict and an
upgrade suggestion for the component picked in the dropdown. Saved
analyses can be browsed in the History tab.

The --benchmarks and --mode flags are passed on to the window.

Note: The GUI requires a graphical environment (X11, Wayland, or Windows/macOS desktop).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !hasGUIEnvironment() {
				return fmt.Errorf("GUI environment not detected. The GUI requires a graphical desktop environment")
			}

			guiBinary := guiBinaryName
			if runtime.GOOS == "windows" {
				guiBinary += ".exe"
			}

			// Next to the CLI first, then PATH
			if execPath, err := os.Executable(); err == nil {
				guiPath := filepath.Join(filepath.Dir(execPath), guiBinary)
				if _, err := os.Stat(guiPath); err == nil {
					return runGUI(guiPath)
				}
			}
			if guiPath, err := exec.LookPath(guiBinary); err == nil {
				return runGUI(guiPath)
			}

			return fmt.Errorf("GUI binary '%s' not found. Please ensure it's built and in your PATH", guiBinary)
		},
	}
}

// hasGUIEnvironment checks if a GUI environment is available
func hasGUIEnvironment() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	case "linux", "freebsd", "openbsd", "netbsd":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	default:
		return false
	}
}

// guiEnv forwards the persistent flags through the environment overrides
// the window's config loader reads
func guiEnv(base []string, benchmarks, mode string) []string {
	env := append([]string(nil), base...)
	if benchmarks != "" {
		env = append(env, config.EnvBenchmarksDir+"="+benchmarks)
	}
	if mode != "" {
		env = append(env, config.EnvScoreMode+"="+mode)
	}
	return env
}

// runGUI launches the GUI binary without waiting for it
func runGUI(path string) error {
	cmd := exec.Command(path) // #nosec G204 -- path is the bottleneck-gui binary located next to the CLI or on PATH
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = guiEnv(os.Environ(), benchmarksDir, scoreMode)
	if configPath != "" {
		cmd.Args = append(cmd.Args, "--config", configPath)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start GUI: %w", err)
	}

	fmt.Printf("GUI launched (PID: %d)\n", cmd.Process.Pid)
	fmt.Println("The GUI is running in a separate window.")
	return nil
}
