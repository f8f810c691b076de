package env

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"

	"github.com/dataflow-dl/mlnode/node/domain"
)

// startupScript bootstraps the workload with unbuffered output and the entry
// script's directory on the import path, then hands control to the entry
// script. It is materialized into every node's working directory.
const startupScript = `import os
import runpy
import sys

os.environ.setdefault("PYTHONUNBUFFERED", "1")

entry = sys.argv[1]
sys.path.insert(0, os.path.dirname(os.path.abspath(entry)))
sys.argv = sys.argv[1:]
runpy.run_path(entry, run_name="__main__")
`

// Preparer materializes a node's runtime environment: the working directory,
// the user's code archive, and the bootstrap script. Preparation runs once,
// before the control loop starts.
type Preparer struct {
	log logger.Logger
}

func NewPreparer() *Preparer {
	p := &Preparer{}
	config.InitLogger(&p.log, p)
	return p
}

// Prepare resolves the node's runtime environment in place. On return the
// context's Properties name the script directory, the entry and startup
// scripts, and the PythonDir/PythonFiles fields are populated. All failures
// wrap ErrEnvPreparation.
func (p *Preparer) Prepare(ctx context.Context, nodeCtx *domain.NodeContext) error {
	if err := os.MkdirAll(nodeCtx.WorkDir, 0o755); err != nil {
		return errors.Wrapf(domain.ErrEnvPreparation, "failed to create work dir %s: %v", nodeCtx.WorkDir, err)
	}

	scriptDir := nodeCtx.WorkDir
	if uri := nodeCtx.Property(domain.PropRemoteCodeZipFile, ""); uri != "" {
		codeDir, err := p.fetchCode(ctx, nodeCtx, uri)
		if err != nil {
			return err
		}
		nodeCtx.Properties[domain.PropCodeDir] = codeDir
		scriptDir = codeDir
	}
	nodeCtx.Properties[domain.PropScriptDir] = scriptDir

	if entry := nodeCtx.Property(domain.PropEntryScriptFile, ""); entry != "" && !filepath.IsAbs(entry) {
		nodeCtx.Properties[domain.PropEntryScriptFile] = filepath.Join(scriptDir, entry)
	}

	if err := p.materializeStartupScript(nodeCtx); err != nil {
		return err
	}

	nodeCtx.PythonDir = scriptDir
	files, err := collectPythonFiles(scriptDir)
	if err != nil {
		return errors.Wrapf(domain.ErrEnvPreparation, "failed to enumerate python files under %s: %v", scriptDir, err)
	}
	nodeCtx.PythonFiles = files

	p.log.Info("Prepared runtime environment for %s: scriptDir=%s, %d python file(s).",
		nodeCtx.Identity(), scriptDir, len(files))
	return nil
}

// fetchCode downloads and extracts the user's code archive, returning the
// directory it was extracted into.
func (p *Preparer) fetchCode(ctx context.Context, nodeCtx *domain.NodeContext, uri string) (string, error) {
	fetcher, err := ForURI(ctx, uri)
	if err != nil {
		return "", errors.Wrapf(domain.ErrEnvPreparation, "%v", err)
	}

	p.log.Debug("Fetching code archive %s for %s.", uri, nodeCtx.Identity())
	archive, err := fetcher.Fetch(ctx, uri, nodeCtx.WorkDir)
	if err != nil {
		return "", errors.Wrapf(domain.ErrEnvPreparation, "failed to fetch code archive %s: %v", uri, err)
	}

	codeDirName := nodeCtx.Property(domain.PropCodeDirName, "code")
	codeDir := filepath.Join(nodeCtx.WorkDir, codeDirName)
	if err := unzip(archive, codeDir); err != nil {
		return "", errors.Wrapf(domain.ErrEnvPreparation, "failed to extract %s into %s: %v", archive, codeDir, err)
	}
	return codeDir, nil
}

// materializeStartupScript writes the bootstrap script into the work dir and
// records its path, unless the launcher already supplied one.
func (p *Preparer) materializeStartupScript(nodeCtx *domain.NodeContext) error {
	if nodeCtx.Property(domain.PropStartupScriptFile, "") != "" {
		return nil
	}

	dest := filepath.Join(nodeCtx.WorkDir, domain.StartupScriptName)
	if err := os.WriteFile(dest, []byte(startupScript), 0o644); err != nil {
		return errors.Wrapf(domain.ErrEnvPreparation, "failed to write %s: %v", dest, err)
	}
	nodeCtx.Properties[domain.PropStartupScriptFile] = dest
	return nil
}

func collectPythonFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// unzip extracts the archive into destDir, refusing entries that would escape
// it.
func unzip(archive string, destDir string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, entry := range reader.File {
		dest := filepath.Join(destDir, entry.Name)
		if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return errors.Errorf("archive entry %q escapes extraction dir", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, entry.Mode()); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := extractFile(entry, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(entry *zip.File, dest string) error {
	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
