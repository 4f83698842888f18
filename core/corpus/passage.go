// Package corpus holds the in-memory structured corpus and the converters
// that normalize heterogeneous raw payloads into it.
package corpus

import "github.com/FocuswithJustin/AcaciaBible/core/ref"

// Corpus is the internal structured shape: book name, then chapter and verse
// as string keys (the native key type of the JSON sources), then verse text.
type Corpus map[string]map[string]map[string]string

// Verse is a single resolved content unit.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Passage is the resolved content for a locator. When RichContent is
// non-empty it takes rendering precedence over Verses; both may be set for
// consumers that want the discrete verses anyway.
type Passage struct {
	Reference   ref.Locator `json:"reference"`
	Verses      []Verse     `json:"verses,omitempty"`
	RichContent string      `json:"rich_content,omitempty"`
}

// IsEmpty reports whether the passage carries no renderable content.
func (p *Passage) IsEmpty() bool {
	return p == nil || (len(p.Verses) == 0 && p.RichContent == "")
}

// Text joins the verse texts with single spaces. RichContent, when present,
// wins.
func (p *Passage) Text() string {
	if p == nil {
		return ""
	}
	if p.RichContent != "" {
		return p.RichContent
	}
	var out string
	for i, v := range p.Verses {
		if i > 0 {
			out += " "
		}
		out += v.Text
	}
	return out
}

// add inserts a verse into a Corpus, creating intermediate maps as needed.
func (c Corpus) add(book, chapter, verse, text string) {
	chapters, ok := c[book]
	if !ok {
		chapters = make(map[string]map[string]string)
		c[book] = chapters
	}
	verses, ok := chapters[chapter]
	if !ok {
		verses = make(map[string]string)
		chapters[chapter] = verses
	}
	verses[verse] = text
}

// VerseCount returns the total number of verses across all books.
func (c Corpus) VerseCount() int {
	n := 0
	for _, chapters := range c {
		for _, verses := range chapters {
			n += len(verses)
		}
	}
	return n
}
