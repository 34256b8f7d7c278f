// Package catalogsync installs question catalog bundles published outside
// the binary, so question sets can be revised without a new release.
//
// A bundle is a tar.gz holding catalog.yaml and the set files it names,
// published next to a checksums.txt in sha256sum format.
package catalogsync

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/praxis/internal/questions"
)

var (
	ErrAlreadyLatest = errors.New("catalog is already at or above the bundle version")
	ErrIncompatible  = errors.New("bundle catalog has a different major version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// maxBundleSize caps downloads and extracted files.
const maxBundleSize = 8 << 20

// Progress reports one stage of an update.
type Progress struct {
	Stage   string
	Message string
}

// UpdateInput describes one update.
type UpdateInput struct {
	// BundleURL points at the .tar.gz; checksums.txt is fetched from the same directory.
	BundleURL string
	// CurrentVersion is the version in use. Bundles must be newer and share its major version.
	CurrentVersion string
	// Dir is where the catalog is installed. Its previous contents are replaced.
	Dir string
	// Force skips the newer-version check, not the major-version check.
	Force bool
}

// Result describes an installed catalog.
type Result struct {
	Version   string
	Dir       string
	Questions int
}

// Updater downloads and installs catalog bundles.
type Updater struct {
	client *http.Client
}

// New returns an Updater. A nil client gets a 30 second timeout.
func New(client *http.Client) *Updater {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Updater{client: client}
}

// Update downloads, verifies, validates and installs the bundle. progress may be nil.
func (u *Updater) Update(ctx context.Context, in UpdateInput, progress func(Progress)) (*Result, error) {
	if progress == nil {
		progress = func(Progress) {}
	}
	bundleName, checksumsURL, err := siblings(in.BundleURL)
	if err != nil {
		return nil, err
	}

	progress(Progress{Stage: "download", Message: "Downloading " + bundleName + "..."})
	bundle, err := u.download(ctx, in.BundleURL)
	if err != nil {
		return nil, fmt.Errorf("download bundle: %w", err)
	}

	progress(Progress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := u.download(ctx, checksumsURL)
	if err != nil {
		return nil, fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[bundleName]
	if !ok {
		return nil, fmt.Errorf("no checksum for %s in checksums.txt", bundleName)
	}
	if err := verifyChecksum(bundle, want); err != nil {
		return nil, err
	}

	progress(Progress{Stage: "extract", Message: "Extracting catalog..."})
	parent := filepath.Dir(filepath.Clean(in.Dir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog parent: %w", err)
	}
	staging, err := os.MkdirTemp(parent, ".catalog-update-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()
	if err := extractTarGz(bundle, staging); err != nil {
		return nil, fmt.Errorf("extract bundle: %w", err)
	}

	progress(Progress{Stage: "validate", Message: "Validating questions..."})
	cat, err := questions.Load(os.DirFS(staging))
	if err != nil {
		return nil, fmt.Errorf("validate bundle: %w", err)
	}
	if err := checkVersion(in.CurrentVersion, cat.Version(), in.Force); err != nil {
		return nil, err
	}

	progress(Progress{Stage: "apply", Message: "Installing " + cat.Version() + "..."})
	if err := swapDir(staging, in.Dir); err != nil {
		return nil, fmt.Errorf("install catalog: %w", err)
	}

	progress(Progress{Stage: "done", Message: "Installed catalog " + cat.Version()})
	return &Result{Version: cat.Version(), Dir: in.Dir, Questions: cat.Len()}, nil
}

// checkVersion enforces same-major and, unless forced, strictly newer.
func checkVersion(current, next string, force bool) error {
	if current == "" {
		return nil
	}
	if semver.Major(current) != semver.Major(next) {
		return fmt.Errorf("%w: have %s, bundle is %s", ErrIncompatible, current, next)
	}
	if !force && semver.Compare(next, current) <= 0 {
		return fmt.Errorf("%w: have %s, bundle is %s", ErrAlreadyLatest, current, next)
	}
	return nil
}

// siblings returns the bundle's file name and the URL of checksums.txt beside it.
func siblings(bundleURL string) (name, checksums string, err error) {
	u, err := url.Parse(bundleURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("invalid bundle URL %q", bundleURL)
	}
	name = path.Base(u.Path)
	if !strings.HasSuffix(name, ".tar.gz") {
		return "", "", fmt.Errorf("bundle %q is not a .tar.gz", name)
	}
	c := *u
	c.Path = path.Join(path.Dir(u.Path), "checksums.txt")
	c.RawQuery = ""
	return name, c.String(), nil
}

func (u *Updater) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBundleSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, maxBundleSize)
	}
	return data, nil
}

// parseChecksums reads "<hex>  <name>" lines.
func parseChecksums(data []byte) map[string]string {
	out := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		f := strings.Fields(line)
		if len(f) != 2 {
			continue
		}
		out[strings.TrimPrefix(f[1], "*")] = strings.ToLower(f[0])
	}
	return out
}

func verifyChecksum(data []byte, wantHex string) error {
	h := sha256.Sum256(data)
	if got := hex.EncodeToString(h[:]); got != wantHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// extractTarGz writes the archive's regular files into dir. Entries must be
// plain YAML file names; directories in the archive are flattened away.
func extractTarGz(data []byte, dir string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	n := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if strings.Contains(hdr.Name, "..") {
			return fmt.Errorf("unsafe path %q in bundle", hdr.Name)
		}
		name := path.Base(hdr.Name)
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if hdr.Size > maxBundleSize {
			return fmt.Errorf("%s exceeds %d bytes", name, maxBundleSize)
		}
		body, err := io.ReadAll(io.LimitReader(tr, maxBundleSize))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), body, 0o644); err != nil {
			return err
		}
		n++
	}
	if n == 0 {
		return errors.New("bundle contains no YAML files")
	}
	return nil
}

// swapDir replaces dst with src, keeping the old catalog until the new one is in place.
func swapDir(src, dst string) error {
	old := dst + ".old"
	_ = os.RemoveAll(old)
	if _, err := os.Stat(dst); err == nil {
		if err := os.Rename(dst, old); err != nil {
			return err
		}
	}
	if err := os.Rename(src, dst); err != nil {
		_ = os.Rename(old, dst)
		return err
	}
	return os.RemoveAll(old)
}

// Open returns the catalog installed in dir, or the embedded catalog when dir
// is empty or holds no manifest. An installed catalog whose major version
// differs from the embedded one is rejected.
func Open(dir string) (*questions.Catalog, error) {
	if dir == "" {
		return questions.Default(), nil
	}
	if _, err := os.Stat(filepath.Join(dir, questions.ManifestFile)); errors.Is(err, os.ErrNotExist) {
		return questions.Default(), nil
	}
	cat, err := questions.Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", dir, err)
	}
	if semver.Major(cat.Version()) != semver.Major(questions.Version()) {
		return nil, fmt.Errorf("%w: %s holds %s, built-in catalog is %s", ErrIncompatible, dir, cat.Version(), questions.Version())
	}
	return cat, nil
}
