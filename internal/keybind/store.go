package keybind

import (
	"bufio"
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultKey is the recenter key used when the file is missing or invalid.
const DefaultKey uint32 = 'E'

// Load reads the recenter key from path. A missing file is created with the
// default key. Unparseable content logs a warning and yields the default. The
// returned key is always usable, even when err is non-nil.
func Load(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := Save(path, DefaultKey); err != nil {
				return DefaultKey, errors.Wrap(err, "failed to write default key binding")
			}
			log.Printf("keybind: wrote default recenter key %s to %s", Name(DefaultKey), path)
			return DefaultKey, nil
		}
		return DefaultKey, errors.Wrap(err, "failed to read key binding")
	}
	line := firstLine(data)
	vk, err := Parse(line)
	if err != nil {
		log.Printf("keybind: invalid recenter key %q in %s, using %s: %v", line, path, Name(DefaultKey), err)
		return DefaultKey, nil
	}
	return vk, nil
}

// Save writes vk to path, creating parent directories as needed.
func Save(path string, vk uint32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create key binding directory")
	}
	if err := os.WriteFile(path, []byte(Name(vk)+"\n"), 0o600); err != nil {
		return errors.Wrap(err, "failed to save key binding")
	}
	return nil
}

// firstLine returns the first non-empty, non-comment line.
func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}
