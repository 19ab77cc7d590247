package chm2md

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-chm2md/internal/pipeline"
)

// Discover lists the files directly inside dir whose names match one of
// patterns, ignoring case, in byte order. Names equal to one of exclude
// (ignoring case) are skipped.
// A missing directory yields no files and no error.
func Discover(dir string, patterns []string, exclude ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: listing %s: %v", ErrReadSource, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || isExcluded(e.Name(), exclude) {
			continue
		}
		ok, err := matchAny(e.Name(), patterns)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

func matchAny(name string, patterns []string) (bool, error) {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		ok, err := doublestar.Match(strings.ToLower(p), lower)
		if err != nil {
			return false, fmt.Errorf("%w: pattern %q: %v", ErrInvalidLayout, p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func isExcluded(name string, exclude []string) bool {
	for _, x := range exclude {
		if x != "" && strings.EqualFold(name, x) {
			return true
		}
	}
	return false
}

// planUnits numbers discovered files and derives their chapter paths.
func planUnits(inputDir, outputDir string, names []string) []*Unit {
	units := make([]*Unit, len(names))
	for i, name := range names {
		prefix := fmt.Sprintf("%02d", i+1)
		slug := pipeline.Slug(name)
		units[i] = &Unit{
			Seq:    i + 1,
			Prefix: prefix,
			Source: filepath.Join(inputDir, name),
			Slug:   slug,
			Output: filepath.Join(outputDir, pipeline.OutputName(prefix, slug)),
			State:  StateDiscovered,
		}
	}
	return units
}

// checkRenames rejects an in-place plan where a unit's chapter would
// replace the source of a later unit before that unit is read.
func checkRenames(units []*Unit) error {
	for i, u := range units {
		for _, later := range units[i+1:] {
			if strings.EqualFold(filepath.Base(u.Output), filepath.Base(later.Source)) {
				return fmt.Errorf("%w: %s would overwrite %s before it is processed",
					ErrInvalidLayout, u.SourceName(), later.SourceName())
			}
		}
	}
	return nil
}
