package datasets

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/CedarFabric/core/corpus"
	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
	"github.com/FocuswithJustin/CedarFabric/internal/store"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B", "B"},
		{"b", "B"},
		{"bhsa", "B"},
		{"BHS", "B"},
		{"lxx", "L"},
		{"dss", "D"},
		{"macula", "M"},
		{"gnt", "N"},
		{"n1904", "N"},
		{" n ", "N"},
	}
	for _, tt := range tests {
		spec, err := Lookup(tt.in)
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", tt.in, err)
			continue
		}
		if spec.Key != tt.want {
			t.Errorf("Lookup(%q).Key = %q; want %q", tt.in, spec.Key, tt.want)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("vulgate")
	if err == nil {
		t.Fatal("Lookup(vulgate) should fail")
	}
	if !cerrors.Is(err, cerrors.ErrNotFound) {
		t.Errorf("Lookup(vulgate) error = %v; want ErrNotFound in chain", err)
	}
}

func TestSpecs(t *testing.T) {
	specs := Specs()
	if len(specs) != 5 {
		t.Fatalf("Specs() returned %d entries; want 5", len(specs))
	}
	want := []string{"B", "L", "D", "M", "N"}
	for i, spec := range specs {
		if spec.Key != want[i] {
			t.Errorf("Specs()[%d].Key = %q; want %q", i, spec.Key, want[i])
		}
	}
}

// buildFixtureDB writes a tiny dataset database and returns its bytes.
func buildFixtureDB(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.db")
	s, err := store.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := s.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AddBook("Jesaia"); err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	if err := b.AddChapter(1); err != nil {
		t.Fatalf("AddChapter: %v", err)
	}
	if err := b.AddVerse(1); err != nil {
		t.Fatalf("AddVerse: %v", err)
	}
	for _, w := range []string{"the", "vision", "of", "Isaiah"} {
		if err := b.AddWord(map[string]string{"text": w}); err != nil {
			t.Fatalf("AddWord: %v", err)
		}
	}
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return data
}

func xzCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

// fixtureServer serves the compressed database at the release path the
// fetcher expects for spec.
func fixtureServer(t *testing.T, spec Spec, payload []byte) *httptest.Server {
	t.Helper()
	wantPath := fmt.Sprintf("/%s/releases/download/%s/corpus.db.xz", spec.Name, spec.Version)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	db := buildFixtureDB(t)
	spec, _ := Lookup("B")
	srv := fixtureServer(t, spec, xzCompress(t, db))

	f := NewFetcher(t.TempDir())
	f.BaseURL = srv.URL

	path, err := f.Fetch(context.Background(), spec)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if want := f.Path(spec); path != want {
		t.Errorf("Fetch path = %q; want %q", path, want)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, db) {
		t.Error("fetched database differs from fixture")
	}
	if _, err := os.Stat(path + ".blake3.json"); err != nil {
		t.Errorf("integrity pointer missing: %v", err)
	}
}

func TestFetcher_CachedFetchSkipsDownload(t *testing.T) {
	db := buildFixtureDB(t)
	spec, _ := Lookup("B")
	srv := fixtureServer(t, spec, xzCompress(t, db))

	f := NewFetcher(t.TempDir())
	f.BaseURL = srv.URL

	if _, err := f.Fetch(context.Background(), spec); err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	srv.Close() // a second download attempt would now fail
	if _, err := f.Fetch(context.Background(), spec); err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
}

func TestFetcher_DetectsCorruption(t *testing.T) {
	db := buildFixtureDB(t)
	spec, _ := Lookup("B")
	srv := fixtureServer(t, spec, xzCompress(t, db))

	f := NewFetcher(t.TempDir())
	f.BaseURL = srv.URL

	path, err := f.Fetch(context.Background(), spec)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if err := os.WriteFile(path, append(db, 0xFF), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, err := f.Fetch(context.Background(), spec); err == nil {
		t.Error("Fetch should fail on a corrupted cached database")
	}
}

func TestFetcher_RecreatesMissingPointer(t *testing.T) {
	db := buildFixtureDB(t)
	spec, _ := Lookup("B")
	srv := fixtureServer(t, spec, xzCompress(t, db))

	f := NewFetcher(t.TempDir())
	f.BaseURL = srv.URL

	path, err := f.Fetch(context.Background(), spec)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if err := os.Remove(path + ".blake3.json"); err != nil {
		t.Fatalf("remove pointer: %v", err)
	}
	if _, err := f.Fetch(context.Background(), spec); err != nil {
		t.Fatalf("Fetch without pointer: %v", err)
	}
	if _, err := os.Stat(path + ".blake3.json"); err != nil {
		t.Errorf("pointer not recreated: %v", err)
	}
}

func TestFetcher_NotFoundRelease(t *testing.T) {
	spec, _ := Lookup("B")
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	f.BaseURL = srv.URL
	if _, err := f.Fetch(context.Background(), spec); err == nil {
		t.Error("Fetch should fail when the release does not exist")
	}
}

func TestLoader_Load(t *testing.T) {
	db := buildFixtureDB(t)
	spec, _ := Lookup("B")
	srv := fixtureServer(t, spec, xzCompress(t, db))

	l := NewLoader(t.TempDir())
	defer l.Close()
	l.Fetcher().BaseURL = srv.URL

	api, err := l.Load(context.Background(), "bhsa")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if api.Name != spec.Name || api.Version != spec.Version {
		t.Errorf("api identity = %s@%s; want %s@%s", api.Name, api.Version, spec.Name, spec.Version)
	}
	labels := api.T.BookLabels()
	if len(labels) != 1 || labels[0] != "Jesaia" {
		t.Errorf("BookLabels() = %v; want [Jesaia]", labels)
	}
	verse, ok := api.T.NodeFromSection(corpus.Section{Book: "Jesaia", Chapter: 1, Verse: 1})
	if !ok {
		t.Fatal("NodeFromSection(Jesaia 1:1) not found")
	}
	if got := corpus.RefSBL(api.T, verse); got != "Isa 1:1" {
		t.Errorf("RefSBL(verse) = %q; want %q", got, "Isa 1:1")
	}
}

func TestLoader_SecondLoadUsesOpenStore(t *testing.T) {
	db := buildFixtureDB(t)
	spec, _ := Lookup("B")
	srv := fixtureServer(t, spec, xzCompress(t, db))

	l := NewLoader(t.TempDir())
	defer l.Close()
	l.Fetcher().BaseURL = srv.URL

	if _, err := l.Load(context.Background(), "B"); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	srv.Close()
	api, err := l.Load(context.Background(), "b")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if api.Name != spec.Name {
		t.Errorf("api.Name = %q; want %q", api.Name, spec.Name)
	}
}

func TestLoader_UnknownKey(t *testing.T) {
	l := NewLoader(t.TempDir())
	defer l.Close()
	if _, err := l.Load(context.Background(), "peshitta"); !cerrors.Is(err, cerrors.ErrNotFound) {
		t.Errorf("Load(peshitta) error = %v; want ErrNotFound in chain", err)
	}
}

func TestLoader_Info(t *testing.T) {
	l := NewLoader(t.TempDir())
	defer l.Close()

	info, err := l.Info("bhsa")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Key != "B" || info.Present {
		t.Errorf("Info = %+v; want Key B, not present", info)
	}

	all := l.InfoAll()
	if len(all) != 5 {
		t.Errorf("InfoAll() returned %d entries; want 5", len(all))
	}
}
