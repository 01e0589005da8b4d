package datasets

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
	"github.com/FocuswithJustin/CedarFabric/internal/logging"
)

// dbFileName is the payload name inside each dataset's cache directory.
const dbFileName = "corpus.db"

// DefaultBaseURL is where dataset releases are hosted.
const DefaultBaseURL = "https://github.com"

// Fetcher downloads dataset databases into a local cache directory and
// maintains BLAKE3 integrity pointers beside them.
type Fetcher struct {
	// Root is the cache directory root.
	Root string

	// BaseURL is the release host, DefaultBaseURL unless overridden.
	BaseURL string

	// Client is the HTTP client used for downloads.
	Client *http.Client
}

// NewFetcher creates a Fetcher caching under root.
func NewFetcher(root string) *Fetcher {
	return &Fetcher{
		Root:    root,
		BaseURL: DefaultBaseURL,
		Client:  http.DefaultClient,
	}
}

// Path returns the cache location of a dataset's database, whether or
// not it has been fetched yet.
func (f *Fetcher) Path(spec Spec) string {
	return filepath.Join(f.Root, spec.Key, spec.Version, dbFileName)
}

// blake3Pointer is the structure stored in integrity pointer files.
type blake3Pointer struct {
	BLAKE3 string `json:"blake3"`
}

// Fetch ensures the dataset database is present and intact in the cache,
// downloading it if missing, and returns its path. Downloads stream
// through xz decompression; the decompressed payload's BLAKE3 hash is
// recorded in a pointer file and re-verified on every later call.
func (f *Fetcher) Fetch(ctx context.Context, spec Spec) (string, error) {
	dest := f.Path(spec)
	if _, err := os.Stat(dest); err == nil {
		if err := f.verify(dest); err != nil {
			return "", err
		}
		return dest, nil
	}

	ctx = logging.WithJobID(ctx, uuid.NewString())
	url := fmt.Sprintf("%s/%s/releases/download/%s/%s.xz", f.BaseURL, spec.Name, spec.Version, dbFileName)
	logging.InfoContext(ctx, "fetching dataset",
		"key", spec.Key, "name", spec.Name, "version", spec.Version, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &cerrors.IOError{Operation: "fetch", Path: url, Err: err}
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", &cerrors.IOError{Operation: "fetch", Path: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &cerrors.IOError{
			Operation: "fetch", Path: url,
			Err: fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	xzr, err := xz.NewReader(resp.Body)
	if err != nil {
		return "", &cerrors.ParseError{Format: "xz", Input: url, Message: err.Error(), Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", &cerrors.IOError{Operation: "create cache dir", Path: filepath.Dir(dest), Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fetch-*")
	if err != nil {
		return "", &cerrors.IOError{Operation: "create temp file", Path: dest, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	hasher := blake3.New()
	n, err := io.Copy(io.MultiWriter(tmp, hasher), xzr)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", &cerrors.IOError{Operation: "download", Path: url, Err: err}
	}

	sum := hex.EncodeToString(hasher.Sum(nil))
	if err := writePointer(dest, sum); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", &cerrors.IOError{Operation: "store", Path: dest, Err: err}
	}

	logging.InfoContext(ctx, "dataset fetched", "key", spec.Key, "bytes", n, "blake3", sum)
	return dest, nil
}

func pointerPath(dest string) string {
	return dest + ".blake3.json"
}

func writePointer(dest, sum string) error {
	data, err := json.Marshal(blake3Pointer{BLAKE3: sum})
	if err != nil {
		return &cerrors.IOError{Operation: "encode pointer", Path: dest, Err: err}
	}
	if err := os.WriteFile(pointerPath(dest), data, 0o644); err != nil {
		return &cerrors.IOError{Operation: "write pointer", Path: pointerPath(dest), Err: err}
	}
	return nil
}

// verify re-hashes the cached payload against its pointer file. A
// missing pointer is recreated from the payload; a mismatch is an error.
func (f *Fetcher) verify(dest string) error {
	payload, err := os.Open(dest)
	if err != nil {
		return &cerrors.IOError{Operation: "open", Path: dest, Err: err}
	}
	defer payload.Close()
	hasher := blake3.New()
	if _, err := io.Copy(hasher, payload); err != nil {
		return &cerrors.IOError{Operation: "hash", Path: dest, Err: err}
	}
	sum := hex.EncodeToString(hasher.Sum(nil))

	data, err := os.ReadFile(pointerPath(dest))
	if os.IsNotExist(err) {
		return writePointer(dest, sum)
	}
	if err != nil {
		return &cerrors.IOError{Operation: "read pointer", Path: pointerPath(dest), Err: err}
	}
	var ptr blake3Pointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return &cerrors.ParseError{Format: "pointer file", Input: pointerPath(dest), Message: err.Error(), Err: err}
	}
	if ptr.BLAKE3 != sum {
		return &cerrors.IOError{
			Operation: "verify", Path: dest,
			Err: fmt.Errorf("blake3 mismatch: pointer %s, payload %s", ptr.BLAKE3, sum),
		}
	}
	return nil
}
