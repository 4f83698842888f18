package ref

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
)

// rangeGrammar matches the chapter/verse remainder of a citation after the
// book name has been stripped:
//
//	"3"          whole chapter
//	"3:16"       single verse
//	"1:1-10"     same-chapter verse range (fixed up below)
//	"1-2"        chapter range
//	"1:27-2:11"  cross-chapter verse range
type rangeGrammar struct {
	Chapter    int  `parser:"@Number"`
	Verse      *int `parser:"( \":\" @Number )?"`
	EndChapter *int `parser:"( \"-\" @Number"`
	EndVerse   *int `parser:"  ( \":\" @Number )? )?"`
}

var rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var rangeParser = participle.MustBuild[rangeGrammar](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
)

// dashNormalizer maps en/em dashes (and the figure dash pasted from word
// processors) to a plain hyphen before tokenizing.
var dashNormalizer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‒", "-", // figure dash
	" ", " ", // no-break space
)

// Parse recognizes a free-form citation string and returns its Locator, or
// nil when the text is not a well-formed reference. Parse never panics on
// malformed data; all failures collapse to nil so the caller owns the error
// taxonomy.
func Parse(text string) *Locator {
	text = strings.TrimSpace(dashNormalizer.Replace(text))
	if text == "" {
		return nil
	}

	prefix := canon.ExtractBookPrefix(text)
	if prefix == "" {
		return nil
	}
	book := canon.Normalize(prefix)
	if book == "" {
		return nil
	}

	words := strings.Fields(text)
	remainder := strings.Join(words[len(strings.Fields(prefix)):], " ")
	if remainder == "" {
		// Bare book names are not addressable; a locator always carries
		// a chapter.
		return nil
	}

	parsed, err := rangeParser.ParseString("", remainder)
	if err != nil {
		return nil
	}

	loc := Locator{Book: book, Chapter: parsed.Chapter}
	if parsed.Verse != nil {
		loc.Verse = *parsed.Verse
	}
	if parsed.EndChapter != nil {
		loc.EndChapter = *parsed.EndChapter
	}
	if parsed.EndVerse != nil {
		loc.EndVerse = *parsed.EndVerse
	}

	// The grammar reads "1:1-5" as chapter 1, verse 1, end-chapter 5. When a
	// start verse is present and no end verse followed the dash, the number
	// after the dash is the end verse.
	if loc.Verse > 0 && loc.EndChapter > 0 && loc.EndVerse == 0 {
		loc.EndVerse = loc.EndChapter
		loc.EndChapter = 0
	}
	// Collapse degenerate cross-chapter ranges ("John 3:1-3:5") into the
	// same-chapter form so String() stays canonical.
	if loc.EndChapter == loc.Chapter && loc.EndVerse > 0 {
		loc.EndChapter = 0
	}

	if err := loc.Validate(); err != nil {
		return nil
	}
	return &loc
}
