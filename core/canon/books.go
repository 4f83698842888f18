// Package canon provides the canonical book registry: the fixed 66-book
// sequence, chapter counts, and the alias table used to normalize free-form
// book names. All tables are built once at package init and read-only
// afterwards.
package canon

// Book holds static metadata for a single canonical book.
type Book struct {
	Name     string // canonical name (e.g., "Song of Solomon")
	Order    int    // position in canonical order (1-66)
	Chapters int    // chapter count
}

// books is the canonical sequence, Old Testament then New Testament.
var books = []Book{
	{"Genesis", 1, 50},
	{"Exodus", 2, 40},
	{"Leviticus", 3, 27},
	{"Numbers", 4, 36},
	{"Deuteronomy", 5, 34},
	{"Joshua", 6, 24},
	{"Judges", 7, 21},
	{"Ruth", 8, 4},
	{"1 Samuel", 9, 31},
	{"2 Samuel", 10, 24},
	{"1 Kings", 11, 22},
	{"2 Kings", 12, 25},
	{"1 Chronicles", 13, 29},
	{"2 Chronicles", 14, 36},
	{"Ezra", 15, 10},
	{"Nehemiah", 16, 13},
	{"Esther", 17, 10},
	{"Job", 18, 42},
	{"Psalms", 19, 150},
	{"Proverbs", 20, 31},
	{"Ecclesiastes", 21, 12},
	{"Song of Solomon", 22, 8},
	{"Isaiah", 23, 66},
	{"Jeremiah", 24, 52},
	{"Lamentations", 25, 5},
	{"Ezekiel", 26, 48},
	{"Daniel", 27, 12},
	{"Hosea", 28, 14},
	{"Joel", 29, 3},
	{"Amos", 30, 9},
	{"Obadiah", 31, 1},
	{"Jonah", 32, 4},
	{"Micah", 33, 7},
	{"Nahum", 34, 3},
	{"Habakkuk", 35, 3},
	{"Zephaniah", 36, 3},
	{"Haggai", 37, 2},
	{"Zechariah", 38, 14},
	{"Malachi", 39, 4},
	{"Matthew", 40, 28},
	{"Mark", 41, 16},
	{"Luke", 42, 24},
	{"John", 43, 21},
	{"Acts", 44, 28},
	{"Romans", 45, 16},
	{"1 Corinthians", 46, 16},
	{"2 Corinthians", 47, 13},
	{"Galatians", 48, 6},
	{"Ephesians", 49, 6},
	{"Philippians", 50, 4},
	{"Colossians", 51, 4},
	{"1 Thessalonians", 52, 5},
	{"2 Thessalonians", 53, 3},
	{"1 Timothy", 54, 6},
	{"2 Timothy", 55, 4},
	{"Titus", 56, 3},
	{"Philemon", 57, 1},
	{"Hebrews", 58, 13},
	{"James", 59, 5},
	{"1 Peter", 60, 5},
	{"2 Peter", 61, 3},
	{"1 John", 62, 5},
	{"2 John", 63, 1},
	{"3 John", 64, 1},
	{"Jude", 65, 1},
	{"Revelation", 66, 22},
}

// Derived lookup tables, built once in init.
var (
	byName   = make(map[string]*Book, len(books))
	byNumber = make(map[int]*Book, len(books))
)

func init() {
	for i := range books {
		b := &books[i]
		byName[b.Name] = b
		byNumber[b.Order] = b
	}
}

// BookCount is the number of canonical books.
const BookCount = 66

// BookOrder returns the canonical book sequence as a fresh copy.
func BookOrder() []string {
	order := make([]string, len(books))
	for i, b := range books {
		order[i] = b.Name
	}
	return order
}

// ChapterCount returns the number of chapters in a canonical book.
// Unknown names return 1 rather than an error; callers that need strict
// validation should check Normalize first.
func ChapterCount(book string) int {
	if b, ok := byName[book]; ok {
		return b.Chapters
	}
	return 1
}

// BookNumber returns the 1-66 canonical position of a book.
func BookNumber(book string) (int, bool) {
	b, ok := byName[book]
	if !ok {
		return 0, false
	}
	return b.Order, true
}

// BookByNumber returns the canonical name for a 1-66 book id.
func BookByNumber(n int) (string, bool) {
	b, ok := byNumber[n]
	if !ok {
		return "", false
	}
	return b.Name, true
}

// IsCanonical reports whether name is one of the 66 canonical names.
func IsCanonical(name string) bool {
	_, ok := byName[name]
	return ok
}
