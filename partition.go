package chm2md

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-chm2md/internal/fileutil"
)

// partition copies the images u shows into its scoped folder.
//
// Pool references are copied from the pool. Links already pointing into
// the scoped folder are kept when the file is there and otherwise restored
// from the pool. Missing images are recorded on the unit and logged, never
// fatal. Files left in the folder by an earlier run are removed unless the
// chapter still shows them. A unit without images gets no folder and
// nothing is touched.
func (p *Pipeline) partition(u *Unit, log logrus.FieldLogger) error {
	if !u.HasImages() {
		return nil
	}

	dir := filepath.Join(p.layout.OutputDir, u.ImageDirName(p.layout.Marker))
	if err := os.MkdirAll(dir, fileutil.DirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	pooled := make(map[string]struct{}, len(u.Refs))
	for _, ref := range u.Refs {
		pooled[ref] = struct{}{}
	}

	keep := make(map[string]struct{}, len(u.Refs)+len(u.Scoped))
	for _, ref := range u.Images() {
		if _, ok := pooled[ref]; !ok {
			if rel, _, ok := resolveIn(dir, ref); ok {
				keep[rel] = struct{}{}
				continue
			}
		}

		rel, src, ok := resolveIn(p.layout.ImageDir, ref)
		if !ok {
			u.Missing = append(u.Missing, ref)
			log.WithField("image", ref).Warn("missing image")
			continue
		}

		if err := fileutil.CopyFile(src, filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("%w: copying %s: %v", ErrWriteOutput, rel, err)
		}
		u.Copied = append(u.Copied, rel)
		keep[rel] = struct{}{}
		log.WithField("image", rel).Debug("copied")
	}

	return pruneStale(dir, keep, log)
}

// resolveIn finds ref under root. A percent-encoded reference
// ("a%20b.png") is retried decoded. References leaving root are treated
// as missing.
func resolveIn(root, ref string) (rel, src string, ok bool) {
	candidates := []string{ref}
	if decoded, err := url.PathUnescape(ref); err == nil && decoded != ref {
		candidates = append(candidates, decoded)
	}

	for _, c := range candidates {
		local := filepath.FromSlash(c)
		if !filepath.IsLocal(local) {
			continue
		}
		path := filepath.Join(root, local)
		if fileutil.FileExists(path) {
			return c, path, true
		}
	}
	return "", "", false
}

// pruneStale removes regular files under dir whose slash-separated
// relative path is not in keep.
func pruneStale(dir string, keep map[string]struct{}, log logrus.FieldLogger) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if _, ok := keep[filepath.ToSlash(rel)]; ok {
			return nil
		}
		log.WithField("image", filepath.ToSlash(rel)).Debug("removing stale copy")
		return os.Remove(path)
	})
	if err != nil {
		return fmt.Errorf("%w: pruning %s: %v", ErrWriteOutput, dir, err)
	}
	return nil
}
