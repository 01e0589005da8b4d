// Package datasets knows the conventional corpora, fetches their
// prebuilt databases into a local cache, and hands out loaded corpus
// API bundles.
package datasets

import (
	"strings"

	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
)

// Spec identifies one fetchable dataset.
type Spec struct {
	// Key is the canonical one-letter key (B, L, D, M, N).
	Key string

	// Name is the hosting repository, org/repo.
	Name string

	// Version is the dataset release to fetch.
	Version string

	// Mod names an add-on feature module bundled with the release, empty
	// if none.
	Mod string

	// Description is a short human-readable dataset description.
	Description string
}

// The conventional dataset set. Versions track the releases the
// companion notebooks are written against.
var registry = []Spec{
	{
		Key:         "B",
		Name:        "etcbc/bhsa",
		Version:     "2021",
		Mod:         "CenterBLC/BHSaddons",
		Description: "Biblia Hebraica Stuttgartensia Amstelodamensis",
	},
	{
		Key:         "L",
		Name:        "CenterBLC/LXX",
		Version:     "1935",
		Description: "Septuagint (Rahlfs 1935)",
	},
	{
		Key:         "D",
		Name:        "etcbc/dss",
		Version:     "1.9",
		Description: "Dead Sea Scrolls",
	},
	{
		Key:         "M",
		Name:        "sergpanf/LXX-Link-P",
		Version:     "0.0.8",
		Description: "Macula Hebrew-Greek alignment links",
	},
	{
		Key:         "N",
		Name:        "CenterBLC/N1904",
		Version:     "1.0.0",
		Mod:         "CenterBLC/N1904/BOLcomplement",
		Description: "Nestle 1904 Greek New Testament",
	},
}

// keyAliases maps long dataset names to canonical keys.
var keyAliases = map[string]string{
	"b": "B", "bhsa": "B", "bhs": "B",
	"l": "L", "lxx": "L",
	"d": "D", "dss": "D",
	"m": "M", "macula": "M",
	"n": "N", "gnt": "N", "n1904": "N",
}

// Lookup resolves a dataset key or alias, case-insensitively.
func Lookup(key string) (Spec, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	canonical, ok := keyAliases[k]
	if !ok {
		canonical = strings.ToUpper(k)
	}
	for _, spec := range registry {
		if spec.Key == canonical {
			return spec, nil
		}
	}
	return Spec{}, &cerrors.NotFoundError{Resource: "dataset", ID: key}
}

// Specs returns all registered datasets in conventional order.
func Specs() []Spec {
	return append([]Spec(nil), registry...)
}
