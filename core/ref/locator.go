// Package ref defines the Locator value type for scripture references and
// the parser that recognizes free-form citation strings.
package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
)

// Locator is an immutable, validated scripture reference. Zero fields mean
// "absent": Verse 0 is a whole-chapter reference, EndChapter 0 means the
// range (if any) stays inside Chapter.
type Locator struct {
	Book       string `json:"book"`
	Chapter    int    `json:"chapter"`
	Verse      int    `json:"verse,omitempty"`
	EndChapter int    `json:"end_chapter,omitempty"`
	EndVerse   int    `json:"end_verse,omitempty"`
}

// New builds a validated single-verse or whole-chapter locator.
func New(book string, chapter, verse int) (Locator, error) {
	loc := Locator{Book: book, Chapter: chapter, Verse: verse}
	if err := loc.Validate(); err != nil {
		return Locator{}, err
	}
	return loc, nil
}

// Validate checks the locator invariants. A nil error means the locator is
// one of the five canonical shapes.
func (l Locator) Validate() error {
	if !canon.IsCanonical(l.Book) {
		return fmt.Errorf("unknown book %q", l.Book)
	}
	if l.Chapter < 1 {
		return fmt.Errorf("chapter must be positive, got %d", l.Chapter)
	}
	if l.Verse < 0 || l.EndChapter < 0 || l.EndVerse < 0 {
		return fmt.Errorf("reference fields must not be negative")
	}
	if l.EndChapter > 0 && l.EndChapter < l.Chapter {
		return fmt.Errorf("end chapter %d precedes chapter %d", l.EndChapter, l.Chapter)
	}
	if l.Verse == 0 {
		// Whole chapter, or a chapter range with no verse component.
		if l.EndVerse > 0 {
			return fmt.Errorf("end verse requires a start verse")
		}
		return nil
	}
	if l.EndVerse > 0 {
		sameChapter := l.EndChapter == 0 || l.EndChapter == l.Chapter
		if sameChapter && l.EndVerse < l.Verse {
			return fmt.Errorf("end verse %d precedes verse %d", l.EndVerse, l.Verse)
		}
	}
	if l.EndChapter > 0 && l.EndVerse == 0 {
		return fmt.Errorf("cross-chapter range requires an end verse")
	}
	return nil
}

// IsWholeChapter reports whether the locator names an entire chapter (or
// chapter range) with no verse component.
func (l Locator) IsWholeChapter() bool {
	return l.Verse == 0
}

// IsChapterRange reports whether the locator spans whole chapters
// ("Ephesians 1-2").
func (l Locator) IsChapterRange() bool {
	return l.Verse == 0 && l.EndChapter > 0
}

// IsRange reports whether the locator covers more than a single verse or a
// single whole chapter.
func (l Locator) IsRange() bool {
	return l.EndChapter > 0 || l.EndVerse > 0
}

// IsCrossChapter reports whether a verse range crosses a chapter boundary.
func (l Locator) IsCrossChapter() bool {
	return l.Verse > 0 && l.EndChapter > 0 && l.EndChapter != l.Chapter
}

// Equal reports whether two locators name the same reference.
func (l Locator) Equal(other Locator) bool {
	return l == other
}

// String renders the canonical citation form. Rendering round-trips with
// Parse for every valid locator shape.
func (l Locator) String() string {
	var sb strings.Builder
	sb.WriteString(l.Book)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(l.Chapter))

	if l.Verse == 0 {
		if l.EndChapter > 0 {
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(l.EndChapter))
		}
		return sb.String()
	}

	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(l.Verse))

	switch {
	case l.IsCrossChapter():
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(l.EndChapter))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(l.EndVerse))
	case l.EndVerse > 0:
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(l.EndVerse))
	}
	return sb.String()
}
