package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the hwmon directory of the LTC3350 on the Dynagate board.
const DefaultDir = "/sys/bus/i2c/devices/i2c-2/2-0009/hwmon/hwmon4"

// DirStore reads sysfs attributes from the local filesystem.
type DirStore struct{}

// List returns the names of the regular files in dir, sorted. Symlinks are
// followed; sysfs attributes are reported as regular files.
func (DirStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadText returns the content of the file at path with surrounding
// whitespace removed.
func (DirStore) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
