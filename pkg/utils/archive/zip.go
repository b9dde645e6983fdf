package archive

import (
	"archive/zip"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kforge/pkg/domain/model"
)

// Write packages a bundle into a ZIP archive under a fresh temporary
// directory and returns the archive path. Feature files are placed under
// `features/`; entries use the default deflate compression. The archive is
// left for OS temp cleanup; callers do not manage its lifecycle.
func Write(bundle *model.Bundle) (string, error) {
	dir, err := os.MkdirTemp("", "karate-suite-")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary directory")
	}

	path := filepath.Join(dir, "karate-test-suite.zip")
	f, err := os.Create(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create archive file", goerr.V("path", path))
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	entries := map[string]string{
		"karate-config.js": bundle.Config,
		"TestRunner.java":  bundle.Runner,
	}
	for name, content := range bundle.Features {
		entries["features/"+name] = content
	}

	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			return "", goerr.Wrap(err, "failed to create archive entry", goerr.V("entry", name))
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return "", goerr.Wrap(err, "failed to write archive entry", goerr.V("entry", name))
		}
	}

	if err := zw.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize archive")
	}

	return path, nil
}
