package corpus

import (
	"strings"

	"github.com/FocuswithJustin/CedarFabric/core/booknames"
	"github.com/FocuswithJustin/CedarFabric/core/errors"
)

// BookMaps builds the two directional maps between this dataset's native
// book labels and canonical books. Labels that resolve to no canonical
// book are skipped: a corpus may carry apocryphal or editorial material
// outside the shared canon.
func BookMaps(t Text) (map[string]booknames.Book, map[booknames.Book]string) {
	labelToBook := make(map[string]booknames.Book)
	bookToLabel := make(map[booknames.Book]string)
	for _, label := range t.BookLabels() {
		b, err := booknames.Resolve(label)
		if err != nil {
			continue
		}
		labelToBook[label] = b
		if _, seen := bookToLabel[b]; !seen {
			bookToLabel[b] = label
		}
	}
	return labelToBook, bookToLabel
}

// DatasetBook translates any recognizable book designation (canonical
// name, SBL abbreviation, alias, or the dataset's own label) into this
// dataset's native label. Fails with *errors.NotFoundError when the book
// is recognized but absent from the dataset, or *errors.UnknownBookError
// when the designation itself is unrecognizable.
func DatasetBook(t Text, designation string) (string, error) {
	b, err := booknames.Resolve(designation)
	if err != nil {
		// Maybe the caller passed a dataset label the canon tables don't
		// know. Accept it verbatim, case-insensitively.
		for _, label := range t.BookLabels() {
			if strings.EqualFold(label, designation) {
				return label, nil
			}
		}
		return "", err
	}
	_, bookToLabel := BookMaps(t)
	label, ok := bookToLabel[b]
	if !ok {
		return "", &errors.NotFoundError{Resource: "book", ID: b.String()}
	}
	return label, nil
}
