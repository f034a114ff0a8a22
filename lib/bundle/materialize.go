// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/relaunch/lib/binhash"
	"github.com/bureau-foundation/relaunch/lib/manifest"
)

// ErrWriteFailed wraps every failure to build or install a bundle. The
// target is left as it was before the call.
var ErrWriteFailed = errors.New("bundle write failed")

// errExchangeUnsupported is returned by exchange on platforms or
// filesystems without an atomic directory swap.
var errExchangeUnsupported = errors.New("atomic exchange not supported")

// Resource is a file or directory copied verbatim into
// Contents/Resources.
type Resource struct {
	// Source is the path of the file or directory to copy.
	Source string

	// Name is the entry name inside Resources. Empty means the base
	// name of Source.
	Name string
}

func (r Resource) name() string {
	if r.Name != "" {
		return r.Name
	}
	return filepath.Base(r.Source)
}

// MaterializeRequest describes one bundle to build.
type MaterializeRequest struct {
	// Root is the bundle directory to install, ending in ".app".
	Root string

	Manifest manifest.Manifest

	// Image is the path of the executable image to package.
	Image string

	Resources []Resource

	// Mode selects what the stamp records about Image.
	Mode binhash.Mode

	// Logger receives progress and cleanup warnings. Nil uses
	// slog.Default().
	Logger *slog.Logger
}

// Materialize builds the bundle described by request in a staging
// directory next to Root and installs it atomically. On failure the
// staging directory is removed, Root is unchanged, and the error wraps
// [ErrWriteFailed].
func Materialize(request MaterializeRequest) error {
	return newMaterializer().materialize(request)
}

// materializer carries the filesystem operations Materialize uses, so
// tests can inject failures at any step.
type materializer struct {
	link     func(oldname, newname string) error
	rename   func(oldpath, newpath string) error
	exchange func(a, b string) error

	// beforeInstall runs after the staging tree is complete and synced,
	// immediately before it is installed.
	beforeInstall func(staging string) error
}

func newMaterializer() materializer {
	return materializer{
		link:     os.Link,
		rename:   os.Rename,
		exchange: exchange,
	}
}

func (m materializer) materialize(request MaterializeRequest) error {
	logger := request.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if filepath.Ext(request.Root) != Extension {
		return fmt.Errorf("%w: bundle root %q does not end in %s", ErrWriteFailed, request.Root, Extension)
	}
	for _, resource := range request.Resources {
		if err := validateResourceName(resource.name()); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	target := Layout{Root: request.Root, Executable: request.Manifest.Executable}
	parent := filepath.Dir(target.Root)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("%w: creating install directory %s: %w", ErrWriteFailed, parent, err)
	}

	staging, err := os.MkdirTemp(parent, stagingPattern(target.Root))
	if err != nil {
		return fmt.Errorf("%w: creating staging directory in %s: %w", ErrWriteFailed, parent, err)
	}

	if err := m.stage(target.rebase(staging), request); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("%w: staging %s: %w", ErrWriteFailed, target.Root, err)
	}
	if m.beforeInstall != nil {
		if err := m.beforeInstall(staging); err != nil {
			os.RemoveAll(staging)
			return fmt.Errorf("%w: staging %s: %w", ErrWriteFailed, target.Root, err)
		}
	}

	displaced, err := m.install(staging, target.Root, logger)
	if err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("%w: installing %s: %w", ErrWriteFailed, target.Root, err)
	}
	syncDirectory(parent)

	if displaced != "" {
		if err := os.RemoveAll(displaced); err != nil {
			logger.Warn("removing displaced bundle failed", "path", displaced, "error", err)
		}
	}

	logger.Info("bundle installed",
		"root", target.Root,
		"identifier", request.Manifest.Identifier,
		"version", request.Manifest.BuildVersion,
	)
	return nil
}

// stage writes the complete bundle tree under layout.Root and syncs it.
func (m materializer) stage(layout Layout, request MaterializeRequest) error {
	// MkdirTemp creates the directory 0700; a bundle is world-readable.
	if err := os.Chmod(layout.Root, 0o755); err != nil {
		return err
	}
	for _, directory := range []string{layout.ContentsPath(), layout.MacOSPath(), layout.ResourcesPath()} {
		if err := os.Mkdir(directory, 0o755); err != nil {
			return err
		}
	}

	manifestBytes, err := request.Manifest.Marshal()
	if err != nil {
		return err
	}
	if err := writeFile(layout.ManifestPath(), manifestBytes, 0o644); err != nil {
		return err
	}

	fingerprint, err := m.placeImage(request.Image, layout.ExecutablePath(), request.Mode)
	if err != nil {
		return err
	}

	for _, resource := range request.Resources {
		destination := filepath.Join(layout.ResourcesPath(), resource.name())
		if err := copyTree(resource.Source, destination); err != nil {
			return fmt.Errorf("copying resource %s: %w", resource.Source, err)
		}
	}

	stampBytes, err := NewStamp(layout.Executable, fingerprint).Marshal()
	if err != nil {
		return fmt.Errorf("encoding stamp: %w", err)
	}
	if err := writeFile(layout.StampPath(), stampBytes, 0o644); err != nil {
		return err
	}

	for _, directory := range []string{layout.MacOSPath(), layout.ResourcesPath(), layout.ContentsPath(), layout.Root} {
		if err := syncDirectory(directory); err != nil {
			return err
		}
	}
	return nil
}

// placeImage puts the executable image at destination, hard-linked
// when the filesystem allows it and copied otherwise, and returns the
// fingerprint the stamp records.
func (m materializer) placeImage(image, destination string, mode binhash.Mode) (binhash.Fingerprint, error) {
	source, err := os.Stat(image)
	if err != nil {
		return binhash.Fingerprint{}, fmt.Errorf("executable image: %w", err)
	}
	if !source.Mode().IsRegular() {
		return binhash.Fingerprint{}, fmt.Errorf("executable image %s is not a regular file", image)
	}

	if err := m.link(image, destination); err == nil {
		return binhash.Take(destination, mode)
	}

	input, err := os.Open(image)
	if err != nil {
		return binhash.Fingerprint{}, fmt.Errorf("opening executable image: %w", err)
	}
	defer input.Close()

	output, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o755)
	if err != nil {
		return binhash.Fingerprint{}, err
	}
	digest, written, err := binhash.Copy(output, input)
	if err != nil {
		output.Close()
		return binhash.Fingerprint{}, fmt.Errorf("copying executable image: %w", err)
	}
	if err := output.Sync(); err != nil {
		output.Close()
		return binhash.Fingerprint{}, err
	}
	if err := output.Close(); err != nil {
		return binhash.Fingerprint{}, err
	}
	if written != source.Size() {
		return binhash.Fingerprint{}, fmt.Errorf("executable image changed while copying: read %d bytes, expected %d", written, source.Size())
	}

	// The copy carries the source modification time so stat
	// fingerprints of the running image and the bundle agree.
	if err := os.Chtimes(destination, time.Time{}, source.ModTime()); err != nil {
		return binhash.Fingerprint{}, err
	}

	fingerprint := binhash.Fingerprint{Size: written, ModTime: source.ModTime().UnixNano()}
	if mode == binhash.ModeDigest {
		fingerprint.Digest = digest
	}
	return fingerprint, nil
}

// install moves staging to target. When a bundle is already present it
// is exchanged atomically; the returned path then holds the displaced
// tree for the caller to remove.
func (m materializer) install(staging, target string, logger *slog.Logger) (string, error) {
	err := m.rename(staging, target)
	if err == nil {
		return "", nil
	}
	if !errors.Is(err, fs.ErrExist) {
		if _, statErr := os.Lstat(target); statErr != nil {
			return "", err
		}
	}

	err = m.exchange(staging, target)
	if err == nil {
		return staging, nil
	}
	if !errors.Is(err, errExchangeUnsupported) {
		return "", err
	}
	return m.swap(staging, target, logger)
}

// swap replaces target with staging through two renames. Between them
// target is briefly absent, but never partial.
func (m materializer) swap(staging, target string, logger *slog.Logger) (string, error) {
	trash, err := os.MkdirTemp(filepath.Dir(target), trashPattern(target))
	if err != nil {
		return "", err
	}
	if err := os.Remove(trash); err != nil {
		return "", err
	}

	if err := m.rename(target, trash); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Another writer moved it first; target is absent now.
			return "", m.rename(staging, target)
		}
		return "", fmt.Errorf("moving existing bundle aside: %w", err)
	}
	if err := m.rename(staging, target); err != nil {
		if restoreErr := m.rename(trash, target); restoreErr != nil {
			logger.Warn("displaced bundle left behind",
				"path", trash,
				"target", target,
				"error", restoreErr,
			)
			return "", errors.Join(err, fmt.Errorf("restoring %s from %s: %w", target, trash, restoreErr))
		}
		return "", err
	}
	return trash, nil
}

func validateResourceName(name string) error {
	switch {
	case name == "" || name == "." || name == "..":
		return fmt.Errorf("resource name %q is not a file name", name)
	case filepath.Base(name) != name:
		return fmt.Errorf("resource name %q must be a single path element", name)
	case name == StampName:
		return fmt.Errorf("resource name %q is reserved", name)
	}
	return nil
}

// writeFile creates path, writes data, and syncs it before closing.
func writeFile(path string, data []byte, perm os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	return file.Close()
}

func syncDirectory(path string) error {
	directory, err := os.Open(path)
	if err != nil {
		return err
	}
	defer directory.Close()
	if err := directory.Sync(); err != nil {
		return fmt.Errorf("syncing directory %s: %w", path, err)
	}
	return nil
}

// copyTree copies a file, symlink, or directory tree from source to
// destination, preserving permission bits.
func copyTree(source, destination string) error {
	return filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, relative)

		info, err := entry.Info()
		if err != nil {
			return err
		}
		switch {
		case entry.IsDir():
			return os.Mkdir(target, info.Mode().Perm()|0o700)
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			return fmt.Errorf("%s: unsupported file type %s", path, info.Mode().Type())
		}
	})
}

func copyFile(source, destination string, perm os.FileMode) error {
	input, err := os.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(output, input); err != nil {
		output.Close()
		return err
	}
	if err := output.Sync(); err != nil {
		output.Close()
		return err
	}
	return output.Close()
}
