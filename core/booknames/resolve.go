package booknames

import (
	"strings"
	"unicode"

	"github.com/FocuswithJustin/CedarFabric/core/errors"
)

// extraAliases holds aliases beyond the canonical English name, SBL
// abbreviation, and OSIS id (those three are registered automatically for
// every book). The bulk of these are the Latin labels used by the BHSA
// dataset, historical spellings, and common short forms.
var extraAliases = map[Book][]string{
	Genesis:          {"Gn"},
	Exodus:           {"Exo", "Ex"},
	Leviticus:        {"Lv"},
	Numbers:          {"Numeri", "Nm"},
	Deuteronomy:      {"Deuteronomium", "Deu", "Dt"},
	Joshua:           {"Josua", "Jos"},
	Judges:           {"Judices", "Jdg"},
	FirstSamuel:      {"Samuel_I", "1Sm"},
	SecondSamuel:     {"Samuel_II", "2Sm"},
	FirstKings:       {"Reges_I", "1Ki"},
	SecondKings:      {"Reges_II", "2Ki"},
	FirstChronicles:  {"Chronica_I", "1Ch"},
	SecondChronicles: {"Chronica_II", "2Ch"},
	Ezra:             {"Esra", "Ezr"},
	Nehemiah:         {"Nehemia"},
	Esther:           {"Est"},
	Job:              {"Iob"},
	Psalms:           {"Psalmi", "Psalm", "Psa", "Psalter"},
	Proverbs:         {"Proverbia", "Pro"},
	Ecclesiastes:     {"Ecc", "Qoheleth", "Qohelet"},
	SongOfSongs:      {"Canticum", "Canticles", "Song of Solomon", "SoS"},
	Isaiah:           {"Jesaia", "Jesaiah", "Isaias"},
	Jeremiah:         {"Jeremia", "Jeremias"},
	Lamentations:     {"Threni"},
	Ezekiel:          {"Ezechiel", "Eze"},
	Hosea:            {"Osee"},
	Obadiah:          {"Obadia", "Oba", "Abdias"},
	Jonah:            {"Jona", "Jonas", "Jon"},
	Micah:            {"Micha"},
	Habakkuk:         {"Habakuk"},
	Zephaniah:        {"Zephania", "Zep"},
	Zechariah:        {"Sacharia", "Zecharias", "Zec"},
	Malachi:          {"Maleachi"},
	Matthew:          {"Mat", "Mt"},
	Mark:             {"Mrk", "Mk"},
	Luke:             {"Luk", "Lk"},
	John:             {"Joh", "Jn"},
	Acts:             {"Act"},
	FirstCorinthians: {"1 Co"},
	SecondCorinthians: {"2 Co"},
	Philippians:      {"Php"},
	FirstJohn:        {"1 Jn"},
	SecondJohn:       {"2 Jn"},
	ThirdJohn:        {"3 Jn"},
	Philemon:         {"Phm"},
	Revelation:       {"Apocalypse", "Apoc"},
}

// ordinals maps leading/trailing ordinal markers to the internal arabic form.
var ordinals = map[string]string{
	"1": "1", "2": "2", "3": "3",
	"i": "1", "ii": "2", "iii": "3",
	"first": "1", "second": "2", "third": "3",
}

// denoise lowercases the label and collapses whitespace, underscores,
// dots, and hyphens to single spaces. Comparison only; callers keep the
// original string for diagnostics.
func denoise(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '.' || r == '-'
	})
	return strings.Join(fields, " ")
}

// ordinalize normalizes a roman or arabic ordinal marker, in prefix or
// suffix position, to a single arabic prefix ("Samuel I" -> "1 samuel").
// Input must already be denoised.
func ordinalize(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return s
	}
	if n, ok := ordinals[fields[0]]; ok {
		fields[0] = n
		return strings.Join(fields, " ")
	}
	if n, ok := ordinals[fields[len(fields)-1]]; ok {
		rest := fields[:len(fields)-1]
		return n + " " + strings.Join(rest, " ")
	}
	return s
}

// squash removes all spaces, yielding the fully concatenated key form.
func squash(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// aliasKeys yields the normalized key variants for a label, most specific
// first: denoised, ordinal-normalized, and the squashed forms of both.
func aliasKeys(label string) []string {
	d := denoise(label)
	if d == "" {
		return nil
	}
	keys := []string{d}
	if o := ordinalize(d); o != d {
		keys = append(keys, o)
	}
	for _, k := range keys[:len(keys):len(keys)] {
		if sq := squash(k); sq != k {
			keys = append(keys, sq)
		}
	}
	return keys
}

// aliasTable maps normalized keys to books. Built once at init, read-only
// afterwards.
var aliasTable = buildAliasTable()

func buildAliasTable() map[string]Book {
	table := make(map[string]Book, 512)

	register := func(label string, b Book) {
		for _, key := range aliasKeys(label) {
			if prev, ok := table[key]; ok && prev != b {
				// Two entries for the same normalized key naming different
				// books is a table-construction error, never a runtime one.
				panic("booknames: ambiguous alias " + label + " (key " + key + "): " +
					prev.String() + " vs " + b.String())
			}
			table[key] = b
		}
	}

	for b := Unknown + 1; b < numBooks; b++ {
		register(bookTable[b].name, b)
		register(bookTable[b].abbrev, b)
		register(bookTable[b].osis, b)
	}
	for b, aliases := range extraAliases {
		for _, a := range aliases {
			register(a, b)
		}
	}
	return table
}

// Resolve converts a messy book label into its canonical Book. Matching is
// exact after normalization (case folding, separator collapsing, ordinal
// normalization); an unrecognized label fails with *errors.UnknownBookError
// carrying the original input.
func Resolve(label string) (Book, error) {
	for _, key := range aliasKeys(label) {
		if b, ok := aliasTable[key]; ok {
			return b, nil
		}
	}
	return Unknown, &errors.UnknownBookError{Input: label}
}

// MustResolve is like Resolve but panics on unknown labels. Intended for
// static tables and tests where the label is known good.
func MustResolve(label string) Book {
	b, err := Resolve(label)
	if err != nil {
		panic(err)
	}
	return b
}
