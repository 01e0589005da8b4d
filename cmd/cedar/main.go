// Command cedar is the CLI tool for CedarFabric.
// It resolves book names, formats and expands scripture references,
// manages the local dataset cache, and cleans notebook files.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CedarFabric/core/booknames"
	"github.com/FocuswithJustin/CedarFabric/core/corpus"
	"github.com/FocuswithJustin/CedarFabric/core/ref"
	"github.com/FocuswithJustin/CedarFabric/internal/datasets"
	"github.com/FocuswithJustin/CedarFabric/internal/logging"
	"github.com/FocuswithJustin/CedarFabric/internal/notebook"
	"github.com/FocuswithJustin/CedarFabric/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for cedar.
var CLI struct {
	// Global flags
	CacheDir  string `name:"cache-dir" help:"Dataset cache directory (default: ~/.cache/cedarfabric)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text"`

	// Command groups (noun-first organization)
	Book     BookGroup     `cmd:"" help:"Book name resolution and abbreviation"`
	Cite     CiteCmd       `cmd:"" help:"Format a single citation"`
	Ref      RefGroup      `cmd:"" help:"Reference parsing and expansion"`
	Dataset  DatasetGroup  `cmd:"" help:"Dataset cache management"`
	Corpus   CorpusGroup   `cmd:"" help:"Corpus database operations"`
	Notebook NotebookGroup `cmd:"" help:"Jupyter notebook cleanup"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// cacheRoot resolves the dataset cache directory from the global flag or
// the user's cache home.
func cacheRoot() (string, error) {
	if CLI.CacheDir != "" {
		return CLI.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(base, "cedarfabric"), nil
}

// BookGroup contains book name operations.
type BookGroup struct {
	Resolve BookResolveCmd `cmd:"" help:"Resolve a book label to its canonical name"`
	Abbrev  BookAbbrevCmd  `cmd:"" help:"Resolve a book label to its SBL abbreviation"`
	List    BookListCmd    `cmd:"" help:"List all canonical books"`
}

// BookResolveCmd resolves a label to a canonical book name.
type BookResolveCmd struct {
	Label string `arg:"" help:"Book label in any supported form (e.g. 'Jesaia', 'II Kings')"`
}

func (c *BookResolveCmd) Run() error {
	b, err := booknames.Resolve(c.Label)
	if err != nil {
		return err
	}
	fmt.Println(b.String())
	return nil
}

// BookAbbrevCmd resolves a label to its SBL abbreviation.
type BookAbbrevCmd struct {
	Label string `arg:"" help:"Book label in any supported form"`
}

func (c *BookAbbrevCmd) Run() error {
	b, err := booknames.Resolve(c.Label)
	if err != nil {
		return err
	}
	fmt.Println(b.Abbrev())
	return nil
}

// BookListCmd lists every canonical book with its abbreviation.
type BookListCmd struct{}

func (c *BookListCmd) Run() error {
	for _, b := range booknames.Books() {
		fmt.Printf("%-20s %-8s %s\n", b.String(), b.Abbrev(), b.Osis())
	}
	return nil
}

// CiteCmd formats a citation in SBL style.
type CiteCmd struct {
	Book     string `arg:"" help:"Book label in any supported form"`
	Chapter  int    `arg:"" help:"Chapter number"`
	Verse    int    `arg:"" help:"Verse number"`
	EndVerse int    `arg:"" optional:"" help:"End verse for a range"`
}

func (c *CiteCmd) Run() error {
	var out string
	var err error
	if c.EndVerse != 0 {
		out, err = booknames.CiteRange(c.Book, c.Chapter, c.Verse, c.EndVerse)
	} else {
		out, err = booknames.Cite(c.Book, c.Chapter, c.Verse)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// RefGroup contains reference operations.
type RefGroup struct {
	Parse  RefParseCmd  `cmd:"" help:"Parse a reference spec into citations"`
	Verses RefVersesCmd `cmd:"" help:"Expand a reference spec to verses in a dataset"`
}

// RefParseCmd parses a reference spec and prints the normalized citations.
type RefParseCmd struct {
	Spec string `arg:"" help:"Reference spec (e.g. 'Ezek 1:1-3; Reges II 2:1')"`
}

func (c *RefParseCmd) Run() error {
	citations, err := ref.ParseSpec(c.Spec)
	if err != nil {
		return err
	}
	for _, cit := range citations {
		fmt.Println(cit.String())
	}
	return nil
}

// RefVersesCmd expands a reference spec to verse references, optionally
// with text, against a loaded dataset.
type RefVersesCmd struct {
	Spec    string `arg:"" help:"Reference spec"`
	Dataset string `required:"" short:"d" help:"Dataset key (B, L, D, M, N or an alias)"`
	Text    bool   `help:"Print verse text after each reference"`
}

func (c *RefVersesCmd) Run() error {
	root, err := cacheRoot()
	if err != nil {
		return err
	}
	loader := datasets.NewLoader(root)
	defer loader.Close()

	api, err := loader.Load(context.Background(), c.Dataset)
	if err != nil {
		return err
	}
	nodes, err := ref.VerseNodes(api, c.Spec)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if !c.Text {
			fmt.Println(corpus.RefSBL(api.T, n))
			continue
		}
		var words []string
		for _, values := range corpus.VerseWords(api, n) {
			words = append(words, values[0])
		}
		fmt.Printf("%s  %s\n", corpus.RefSBL(api.T, n), strings.Join(words, " "))
	}
	return nil
}

// DatasetGroup contains dataset cache operations.
type DatasetGroup struct {
	List  DatasetListCmd  `cmd:"" help:"List registered datasets and their cache state"`
	Fetch DatasetFetchCmd `cmd:"" help:"Fetch a dataset into the local cache"`
	Info  DatasetInfoCmd  `cmd:"" help:"Show one dataset's registry entry and cache state"`
}

// DatasetListCmd lists all registered datasets.
type DatasetListCmd struct{}

func (c *DatasetListCmd) Run() error {
	root, err := cacheRoot()
	if err != nil {
		return err
	}
	loader := datasets.NewLoader(root)
	defer loader.Close()

	for _, info := range loader.InfoAll() {
		state := "not fetched"
		if info.Present {
			state = "cached"
		}
		fmt.Printf("%s  %-22s %-8s %s\n", info.Key, info.Dataset, info.Version, state)
	}
	return nil
}

// DatasetFetchCmd downloads a dataset database.
type DatasetFetchCmd struct {
	Key string `arg:"" help:"Dataset key (B, L, D, M, N or an alias)"`
}

func (c *DatasetFetchCmd) Run() error {
	root, err := cacheRoot()
	if err != nil {
		return err
	}
	spec, err := datasets.Lookup(c.Key)
	if err != nil {
		return err
	}
	path, err := datasets.NewFetcher(root).Fetch(context.Background(), spec)
	if err != nil {
		return err
	}
	fmt.Printf("Fetched: %s %s@%s\n", spec.Key, spec.Name, spec.Version)
	fmt.Printf("  Path: %s\n", path)
	return nil
}

// DatasetInfoCmd shows one dataset's details.
type DatasetInfoCmd struct {
	Key string `arg:"" help:"Dataset key (B, L, D, M, N or an alias)"`
}

func (c *DatasetInfoCmd) Run() error {
	root, err := cacheRoot()
	if err != nil {
		return err
	}
	loader := datasets.NewLoader(root)
	defer loader.Close()

	info, err := loader.Info(c.Key)
	if err != nil {
		return err
	}
	fmt.Printf("Dataset: %s\n", info.Key)
	fmt.Printf("  Repository: %s\n", info.Dataset)
	fmt.Printf("  Version: %s\n", info.Version)
	if info.Mod != "" {
		fmt.Printf("  Add-on module: %s\n", info.Mod)
	}
	fmt.Printf("  Store: %s\n", info.StorePath)
	fmt.Printf("  Cached: %v\n", info.Present)
	return nil
}

// CorpusGroup contains corpus database operations.
type CorpusGroup struct {
	ImportOsis CorpusImportOsisCmd `cmd:"" name:"import-osis" help:"Build a corpus database from an OSIS XML file"`
}

// CorpusImportOsisCmd builds a corpus database from OSIS XML.
type CorpusImportOsisCmd struct {
	Path string `arg:"" help:"Path to OSIS XML file" type:"existingfile"`
	Out  string `required:"" help:"Output database path" type:"path"`
}

func (c *CorpusImportOsisCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open OSIS file: %w", err)
	}
	defer f.Close()

	s, err := store.Create(c.Out)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ImportOSIS(context.Background(), f); err != nil {
		return err
	}
	labels := s.BookLabels()
	fmt.Printf("Imported: %s\n", c.Path)
	fmt.Printf("  Books: %d\n", len(labels))
	fmt.Printf("  Output: %s\n", c.Out)
	return nil
}

// NotebookGroup contains notebook cleanup operations.
type NotebookGroup struct {
	Strip    NotebookStripCmd    `cmd:"" help:"Remove outputs and execution counts from notebooks"`
	Truncate NotebookTruncateCmd `cmd:"" help:"Truncate long notebook outputs"`
}

// NotebookStripCmd strips outputs from one or more notebooks.
type NotebookStripCmd struct {
	Paths []string `arg:"" help:"Notebook files" type:"existingfile"`
}

func (c *NotebookStripCmd) Run() error {
	for _, path := range c.Paths {
		changed, err := notebook.StripOutputs(path)
		if err != nil {
			return err
		}
		if changed {
			fmt.Printf("Stripped: %s\n", path)
		} else {
			fmt.Printf("Unchanged: %s\n", path)
		}
	}
	return nil
}

// NotebookTruncateCmd truncates long outputs in one or more notebooks.
type NotebookTruncateCmd struct {
	Paths  []string `arg:"" help:"Notebook files" type:"existingfile"`
	MaxLen int      `name:"max-len" default:"2000" help:"Maximum output length in characters"`
}

func (c *NotebookTruncateCmd) Run() error {
	for _, path := range c.Paths {
		changed, err := notebook.TruncateOutputs(path, c.MaxLen)
		if err != nil {
			return err
		}
		if changed {
			fmt.Printf("Truncated: %s\n", path)
		} else {
			fmt.Printf("Unchanged: %s\n", path)
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("cedar version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cedar"),
		kong.Description("CedarFabric - scripture reference and corpus toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
