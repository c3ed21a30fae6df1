package invoice

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// FontRegistrar makes a font file available to the converter
type FontRegistrar interface {
	Register(fontPath string) error
}

// UserFontRegistrar installs fonts into the per-user font directory
type UserFontRegistrar struct {
	// Dir overrides the platform font directory
	Dir string
}

// FontDir returns the directory fonts are installed into
func (r UserFontRegistrar) FontDir() (string, error) {
	if r.Dir != "" {
		return r.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Fonts"), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "Microsoft", "Windows", "Fonts"), nil
		}
		return filepath.Join(home, "AppData", "Local", "Microsoft", "Windows", "Fonts"), nil
	default:
		if data := os.Getenv("XDG_DATA_HOME"); data != "" {
			return filepath.Join(data, "fonts"), nil
		}
		return filepath.Join(home, ".local", "share", "fonts"), nil
	}
}

// Register copies fontPath into the font directory unless a file with the
// same name is already there, then refreshes fontconfig when it is present.
func (r UserFontRegistrar) Register(fontPath string) error {
	dir, err := r.FontDir()
	if err != nil {
		return fmt.Errorf("failed to locate font directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create font directory: %w", err)
	}

	dst := filepath.Join(dir, filepath.Base(fontPath))
	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if err := copyFile(fontPath, dst); err != nil {
		return fmt.Errorf("failed to install font: %w", err)
	}

	if fcCache, err := exec.LookPath("fc-cache"); err == nil && r.Dir == "" {
		if out, err := exec.Command(fcCache, "-f", dir).CombinedOutput(); err != nil {
			Warn("fc-cache failed: %v: %s", err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Join(err, os.Remove(dst))
	}
	return out.Close()
}

var fontOnce sync.Once

// RegisterFontOnce registers fontPath the first time it is called in the
// process. Failures are logged as warnings; invoice generation works
// without the font, only with a fallback face.
func RegisterFontOnce(registrar FontRegistrar, fontPath string) {
	fontOnce.Do(func() {
		if fontPath == "" {
			return
		}
		if _, err := os.Stat(fontPath); err != nil {
			Warn("Font %s not available: %v", fontPath, err)
			return
		}
		if err := registrar.Register(fontPath); err != nil {
			Warn("Font registration failed: %v", err)
			return
		}
		Debug("Registered font %s", fontPath)
	})
}

// Viewer shows a generated PDF to the user
type Viewer interface {
	Open(path string) error
}

// SystemViewer opens files with the desktop's default application
type SystemViewer struct{}

// Open starts the viewer and returns without waiting for it to exit
func (SystemViewer) Open(path string) error {
	name, args := viewerCommand(runtime.GOOS, path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	go cmd.Wait()
	return nil
}

func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
