package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
	"github.com/FocuswithJustin/AcaciaBible/core/errors"
	"github.com/FocuswithJustin/AcaciaBible/core/ref"
)

// Payload shape names reported by Convert.
const (
	ShapeStructured = "structured"
	ShapeFlatList   = "flat-list"
	ShapeAPIPayload = "api-passages"
	ShapeOSIS       = "osis-xml"
	ShapeZefania    = "zefania-xml"
)

// Convert detects the shape of a raw corpus payload and normalizes it into
// the internal Corpus form. It recognizes:
//
//   - a structured book→chapter→verse→text JSON map,
//   - a flat JSON list of verse records (book as name, alias, or 1-66 id),
//   - a remote passage-API response ({canonical, passages: [...]}),
//   - OSIS and Zefania XML corpora.
//
// Anything else yields a FormatError.
func Convert(payload []byte) (Corpus, string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, "", errors.NewFormat("", "empty payload")
	}

	if trimmed[0] == '<' {
		return convertXML(trimmed)
	}

	switch trimmed[0] {
	case '[':
		c, err := ConvertFlatList(trimmed)
		return c, ShapeFlatList, err
	case '{':
		// The api shape is an object too; sniff its discriminating keys
		// before falling back to the structured map.
		var probe struct {
			Canonical json.RawMessage `json:"canonical"`
			Passages  json.RawMessage `json:"passages"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil &&
			probe.Canonical != nil && probe.Passages != nil {
			c, err := ConvertAPIPayload(trimmed)
			return c, ShapeAPIPayload, err
		}
		c, err := ConvertStructured(trimmed)
		return c, ShapeStructured, err
	}
	return nil, "", errors.NewFormat("", "payload is neither JSON nor XML")
}

// ConvertStructured decodes an already-structured book→chapter→verse→text
// map, normalizing book names to their canonical spelling.
func ConvertStructured(payload []byte) (Corpus, error) {
	var raw Corpus
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &errors.FormatError{Shape: ShapeStructured, Message: "invalid JSON", Err: err}
	}
	if len(raw) == 0 {
		return nil, errors.NewFormat(ShapeStructured, "no books in payload")
	}

	out := make(Corpus, len(raw))
	for book, chapters := range raw {
		name := canon.Normalize(book)
		if name == "" {
			return nil, errors.NewFormat(ShapeStructured, fmt.Sprintf("unknown book %q", book))
		}
		for chapter, verses := range chapters {
			for verse, text := range verses {
				out.add(name, chapter, verse, text)
			}
		}
	}
	return out, nil
}

// flatVerse is one record of the flat-list shape. Book may arrive as a
// canonical name, an alias, or a numeric 1-66 id.
type flatVerse struct {
	Book    json.RawMessage `json:"book"`
	Chapter int             `json:"chapter"`
	Verse   int             `json:"verse"`
	Text    string          `json:"text"`
}

// ConvertFlatList decodes a flat list of verse records. Numeric book ids
// outside 1-66 fail the whole load; silently fabricating book names would
// corrupt lookups downstream.
func ConvertFlatList(payload []byte) (Corpus, error) {
	var records []flatVerse
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, &errors.FormatError{Shape: ShapeFlatList, Message: "invalid JSON", Err: err}
	}
	if len(records) == 0 {
		return nil, errors.NewFormat(ShapeFlatList, "no verse records in payload")
	}

	out := make(Corpus)
	for i, rec := range records {
		book, err := resolveFlatBook(rec.Book)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		if rec.Chapter < 1 || rec.Verse < 1 {
			return nil, errors.NewFormat(ShapeFlatList,
				fmt.Sprintf("record %d: chapter %d verse %d out of range", i, rec.Chapter, rec.Verse))
		}
		out.add(book, strconv.Itoa(rec.Chapter), strconv.Itoa(rec.Verse), rec.Text)
	}
	return out, nil
}

// resolveFlatBook maps a flat-list book field (number or string) to a
// canonical name.
func resolveFlatBook(raw json.RawMessage) (string, error) {
	var id int
	if err := json.Unmarshal(raw, &id); err == nil {
		name, ok := canon.BookByNumber(id)
		if !ok {
			return "", errors.NewFormat(ShapeFlatList, fmt.Sprintf("book id %d out of range 1-%d", id, canon.BookCount))
		}
		return name, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.NewFormat(ShapeFlatList, "book field is neither number nor string")
	}
	name := canon.Normalize(s)
	if name == "" {
		return "", errors.NewFormat(ShapeFlatList, fmt.Sprintf("unknown book %q", s))
	}
	return name, nil
}

// apiPayload is the remote passage-API response shape.
type apiPayload struct {
	Canonical string   `json:"canonical"`
	Passages  []string `json:"passages"`
}

// verseMarker locates "chapter:verse" markers, optionally bracketed, that
// open each verse inside a combined passage blob.
var verseMarker = regexp.MustCompile(`\[?(\d+):(\d+)\]?`)

// ConvertAPIPayload splits a passage-API response into per-verse entries.
// The canonical reference supplies the book; each passage blob is cut at its
// chapter:verse markers.
func ConvertAPIPayload(payload []byte) (Corpus, error) {
	var resp apiPayload
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &errors.FormatError{Shape: ShapeAPIPayload, Message: "invalid JSON", Err: err}
	}
	return ConvertPassages(resp.Canonical, resp.Passages)
}

// ConvertPassages normalizes a canonical reference plus passage blobs into
// corpus entries. Shared by payload loading and the remote fetch path.
func ConvertPassages(canonical string, passages []string) (Corpus, error) {
	loc := ref.Parse(canonical)
	if loc == nil {
		return nil, errors.NewFormat(ShapeAPIPayload, fmt.Sprintf("canonical reference %q did not parse", canonical))
	}

	out := make(Corpus)
	for _, blob := range passages {
		markers := verseMarker.FindAllStringSubmatchIndex(blob, -1)
		for i, m := range markers {
			chapter := blob[m[2]:m[3]]
			verse := blob[m[4]:m[5]]
			start := m[1]
			end := len(blob)
			if i+1 < len(markers) {
				end = markers[i+1][0]
			}
			text := strings.TrimSpace(blob[start:end])
			if text == "" {
				continue
			}
			out.add(loc.Book, chapter, verse, text)
		}
	}
	if out.VerseCount() == 0 {
		return nil, errors.NewFormat(ShapeAPIPayload, "no verse markers in passage text")
	}
	return out, nil
}
