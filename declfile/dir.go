package declfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	depset "github.com/albertocavalcante/go-depset"
)

const jarPattern = "*.jar"

// ParseDir builds declarations from jars laid out as <dir>/<bucket>/*.jar.
// Every jar becomes one file dependency, in lexical order. Subdirectories are
// not descended into and a missing bucket directory is an empty bucket.
func ParseDir(dir string) (*Declarations, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("declarations directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("declarations directory: %s is not a directory", dir)
	}

	d := &Declarations{}
	for _, b := range Buckets {
		bucketDir := filepath.Join(dir, b.String())
		entries, err := os.ReadDir(bucketDir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", b, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ok, _ := filepath.Match(jarPattern, e.Name()); !ok {
				continue
			}
			d.Add(b, depset.NewFileDependency(filepath.Join(bucketDir, e.Name())))
		}
	}
	return d, nil
}
