package datasets

import (
	"context"
	"os"
	"sync"

	"github.com/FocuswithJustin/CedarFabric/core/corpus"
	"github.com/FocuswithJustin/CedarFabric/internal/cache"
	"github.com/FocuswithJustin/CedarFabric/internal/logging"
	"github.com/FocuswithJustin/CedarFabric/internal/store"
)

// maxOpenStores bounds how many dataset databases stay open at once.
const maxOpenStores = 5

// Loader fetches datasets on demand and keeps their stores open in an
// LRU cache, so repeated loads of the same dataset share one database
// handle.
type Loader struct {
	fetcher *Fetcher

	mu     sync.Mutex
	stores *cache.Cache[string, *store.Store]
}

// NewLoader creates a Loader caching databases under root.
func NewLoader(root string) *Loader {
	return &Loader{
		fetcher: NewFetcher(root),
		stores: cache.New[string, *store.Store](maxOpenStores, func(_ string, s *store.Store) {
			s.Close()
		}),
	}
}

// Fetcher returns the underlying fetcher, for callers that want to
// prefetch or inspect cache paths.
func (l *Loader) Fetcher() *Fetcher {
	return l.fetcher
}

// Load resolves a dataset key, fetches the database if it is not cached
// on disk, and returns the loaded corpus bundle.
func (l *Loader) Load(ctx context.Context, key string) (*corpus.API, error) {
	spec, err := Lookup(key)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.stores.Get(spec.Key); ok {
		return s.API(spec.Name, spec.Version), nil
	}

	path, err := l.fetcher.Fetch(ctx, spec)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	l.stores.Put(spec.Key, s)
	logging.DebugContext(ctx, "dataset loaded", "key", spec.Key, "path", path)
	return s.API(spec.Name, spec.Version), nil
}

// Close releases every open store.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stores.Clear()
}

// Info describes a dataset's registry entry and local cache state.
type Info struct {
	Key       string
	Dataset   string
	Version   string
	Mod       string
	StorePath string
	Present   bool
}

// Info reports the cache state of one dataset.
func (l *Loader) Info(key string) (Info, error) {
	spec, err := Lookup(key)
	if err != nil {
		return Info{}, err
	}
	return l.info(spec), nil
}

// InfoAll reports the cache state of every registered dataset.
func (l *Loader) InfoAll() []Info {
	specs := Specs()
	infos := make([]Info, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, l.info(spec))
	}
	return infos
}

func (l *Loader) info(spec Spec) Info {
	path := l.fetcher.Path(spec)
	_, statErr := os.Stat(path)
	return Info{
		Key:       spec.Key,
		Dataset:   spec.Name,
		Version:   spec.Version,
		Mod:       spec.Mod,
		StorePath: path,
		Present:   statErr == nil,
	}
}
