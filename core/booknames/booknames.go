// Package booknames maps free-form book labels to canonical scripture books
// and renders SBL-style citations.
//
// The canon tables are fixed at init and never mutated afterwards, so every
// function in this package is safe for concurrent use without
// synchronization. Lookup is exact-match after normalization: there is no
// fuzzy matching, to avoid silent mis-citation.
package booknames

// Book is one canonical scripture book, independent of any particular
// corpus's internal labeling. The zero value is Unknown.
type Book int

// Canonical books, Old Testament then New Testament.
const (
	Unknown Book = iota
	Genesis
	Exodus
	Leviticus
	Numbers
	Deuteronomy
	Joshua
	Judges
	Ruth
	FirstSamuel
	SecondSamuel
	FirstKings
	SecondKings
	FirstChronicles
	SecondChronicles
	Ezra
	Nehemiah
	Esther
	Job
	Psalms
	Proverbs
	Ecclesiastes
	SongOfSongs
	Isaiah
	Jeremiah
	Lamentations
	Ezekiel
	Daniel
	Hosea
	Joel
	Amos
	Obadiah
	Jonah
	Micah
	Nahum
	Habakkuk
	Zephaniah
	Haggai
	Zechariah
	Malachi
	Matthew
	Mark
	Luke
	John
	Acts
	Romans
	FirstCorinthians
	SecondCorinthians
	Galatians
	Ephesians
	Philippians
	Colossians
	FirstThessalonians
	SecondThessalonians
	FirstTimothy
	SecondTimothy
	Titus
	Philemon
	Hebrews
	James
	FirstPeter
	SecondPeter
	FirstJohn
	SecondJohn
	ThirdJohn
	Jude
	Revelation

	numBooks
)

// bookInfo holds the fixed per-book data: canonical English name, SBL
// abbreviation, and OSIS identifier. One entry per Book, exhaustive.
type bookInfo struct {
	name   string
	abbrev string
	osis   string
}

var bookTable = [numBooks]bookInfo{
	Unknown:             {"", "", ""},
	Genesis:             {"Genesis", "Gen", "Gen"},
	Exodus:              {"Exodus", "Exod", "Exod"},
	Leviticus:           {"Leviticus", "Lev", "Lev"},
	Numbers:             {"Numbers", "Num", "Num"},
	Deuteronomy:         {"Deuteronomy", "Deut", "Deut"},
	Joshua:              {"Joshua", "Josh", "Josh"},
	Judges:              {"Judges", "Judg", "Judg"},
	Ruth:                {"Ruth", "Ruth", "Ruth"},
	FirstSamuel:         {"1 Samuel", "1 Sam", "1Sam"},
	SecondSamuel:        {"2 Samuel", "2 Sam", "2Sam"},
	FirstKings:          {"1 Kings", "1 Kgs", "1Kgs"},
	SecondKings:         {"2 Kings", "2 Kgs", "2Kgs"},
	FirstChronicles:     {"1 Chronicles", "1 Chr", "1Chr"},
	SecondChronicles:    {"2 Chronicles", "2 Chr", "2Chr"},
	Ezra:                {"Ezra", "Ezra", "Ezra"},
	Nehemiah:            {"Nehemiah", "Neh", "Neh"},
	Esther:              {"Esther", "Esth", "Esth"},
	Job:                 {"Job", "Job", "Job"},
	Psalms:              {"Psalms", "Ps", "Ps"},
	Proverbs:            {"Proverbs", "Prov", "Prov"},
	Ecclesiastes:        {"Ecclesiastes", "Eccl", "Eccl"},
	SongOfSongs:         {"Song of Songs", "Song", "Song"},
	Isaiah:              {"Isaiah", "Isa", "Isa"},
	Jeremiah:            {"Jeremiah", "Jer", "Jer"},
	Lamentations:        {"Lamentations", "Lam", "Lam"},
	Ezekiel:             {"Ezekiel", "Ezek", "Ezek"},
	Daniel:              {"Daniel", "Dan", "Dan"},
	Hosea:               {"Hosea", "Hos", "Hos"},
	Joel:                {"Joel", "Joel", "Joel"},
	Amos:                {"Amos", "Amos", "Amos"},
	Obadiah:             {"Obadiah", "Obad", "Obad"},
	Jonah:               {"Jonah", "Jonah", "Jonah"},
	Micah:               {"Micah", "Mic", "Mic"},
	Nahum:               {"Nahum", "Nah", "Nah"},
	Habakkuk:            {"Habakkuk", "Hab", "Hab"},
	Zephaniah:           {"Zephaniah", "Zeph", "Zeph"},
	Haggai:              {"Haggai", "Hag", "Hag"},
	Zechariah:           {"Zechariah", "Zech", "Zech"},
	Malachi:             {"Malachi", "Mal", "Mal"},
	Matthew:             {"Matthew", "Matt", "Matt"},
	Mark:                {"Mark", "Mark", "Mark"},
	Luke:                {"Luke", "Luke", "Luke"},
	John:                {"John", "John", "John"},
	Acts:                {"Acts", "Acts", "Acts"},
	Romans:              {"Romans", "Rom", "Rom"},
	FirstCorinthians:    {"1 Corinthians", "1 Cor", "1Cor"},
	SecondCorinthians:   {"2 Corinthians", "2 Cor", "2Cor"},
	Galatians:           {"Galatians", "Gal", "Gal"},
	Ephesians:           {"Ephesians", "Eph", "Eph"},
	Philippians:         {"Philippians", "Phil", "Phil"},
	Colossians:          {"Colossians", "Col", "Col"},
	FirstThessalonians:  {"1 Thessalonians", "1 Thess", "1Thess"},
	SecondThessalonians: {"2 Thessalonians", "2 Thess", "2Thess"},
	FirstTimothy:        {"1 Timothy", "1 Tim", "1Tim"},
	SecondTimothy:       {"2 Timothy", "2 Tim", "2Tim"},
	Titus:               {"Titus", "Titus", "Titus"},
	Philemon:            {"Philemon", "Phlm", "Phlm"},
	Hebrews:             {"Hebrews", "Heb", "Heb"},
	James:               {"James", "Jas", "Jas"},
	FirstPeter:          {"1 Peter", "1 Pet", "1Pet"},
	SecondPeter:         {"2 Peter", "2 Pet", "2Pet"},
	FirstJohn:           {"1 John", "1 John", "1John"},
	SecondJohn:          {"2 John", "2 John", "2John"},
	ThirdJohn:           {"3 John", "3 John", "3John"},
	Jude:                {"Jude", "Jude", "Jude"},
	Revelation:          {"Revelation", "Rev", "Rev"},
}

// String returns the canonical English name (e.g., "2 Kings").
func (b Book) String() string {
	if b <= Unknown || b >= numBooks {
		return "Unknown"
	}
	return bookTable[b].name
}

// Abbrev returns the SBL abbreviation (e.g., "Isa", "2 Kgs", "Song").
// Total function: every valid Book has exactly one abbreviation.
func (b Book) Abbrev() string {
	if b <= Unknown || b >= numBooks {
		return ""
	}
	return bookTable[b].abbrev
}

// Osis returns the OSIS identifier (e.g., "Gen", "2Kgs", "1John").
func (b Book) Osis() string {
	if b <= Unknown || b >= numBooks {
		return ""
	}
	return bookTable[b].osis
}

// Valid reports whether b is a real canonical book.
func (b Book) Valid() bool {
	return b > Unknown && b < numBooks
}

// Books returns all canonical books in canon order.
func Books() []Book {
	out := make([]Book, 0, int(numBooks)-1)
	for b := Unknown + 1; b < numBooks; b++ {
		out = append(out, b)
	}
	return out
}
