package corpus

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
	"github.com/FocuswithJustin/AcaciaBible/core/errors"
)

// Compiled once; both dialects are probed on every XML payload.
var (
	osisVerseExpr    = xpath.MustCompile(`//verse[@osisID]`)
	zefaniaBookExpr  = xpath.MustCompile(`//BIBLEBOOK[@bnumber]`)
	zefaniaChapExpr  = xpath.MustCompile(`./CHAPTER[@cnumber]`)
	zefaniaVerseExpr = xpath.MustCompile(`./VERS[@vnumber]`)
)

// convertXML dispatches an XML payload to the OSIS or Zefania converter
// based on which verse markup it carries.
func convertXML(payload []byte) (Corpus, string, error) {
	root, err := xmlquery.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, "", &errors.FormatError{Shape: ShapeOSIS, Message: "invalid XML", Err: err}
	}

	if verses := xmlquery.QuerySelectorAll(root, osisVerseExpr); len(verses) > 0 {
		c, err := convertOSIS(verses)
		return c, ShapeOSIS, err
	}
	if books := xmlquery.QuerySelectorAll(root, zefaniaBookExpr); len(books) > 0 {
		c, err := convertZefania(books)
		return c, ShapeZefania, err
	}
	return nil, "", errors.NewFormat("", "XML payload is neither OSIS nor Zefania")
}

// convertOSIS reads <verse osisID="Book.Chapter.Verse"> elements. OSIS book
// codes ("Gen", "1Cor") resolve through the alias table like any other
// abbreviation.
func convertOSIS(verses []*xmlquery.Node) (Corpus, error) {
	out := make(Corpus)
	for _, v := range verses {
		id := v.SelectAttr("osisID")
		parts := strings.Split(id, ".")
		if len(parts) != 3 {
			return nil, errors.NewFormat(ShapeOSIS, fmt.Sprintf("malformed osisID %q", id))
		}
		book := canon.Normalize(parts[0])
		if book == "" {
			return nil, errors.NewFormat(ShapeOSIS, fmt.Sprintf("unknown book in osisID %q", id))
		}
		if _, err := strconv.Atoi(parts[1]); err != nil {
			return nil, errors.NewFormat(ShapeOSIS, fmt.Sprintf("non-numeric chapter in osisID %q", id))
		}
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return nil, errors.NewFormat(ShapeOSIS, fmt.Sprintf("non-numeric verse in osisID %q", id))
		}
		text := strings.TrimSpace(v.InnerText())
		if text == "" {
			continue
		}
		out.add(book, parts[1], parts[2], text)
	}
	if out.VerseCount() == 0 {
		return nil, errors.NewFormat(ShapeOSIS, "no verse text in payload")
	}
	return out, nil
}

// convertZefania walks BIBLEBOOK/CHAPTER/VERS nesting, mapping bnumber
// through the canonical book order.
func convertZefania(books []*xmlquery.Node) (Corpus, error) {
	out := make(Corpus)
	for _, b := range books {
		num, err := strconv.Atoi(b.SelectAttr("bnumber"))
		if err != nil {
			return nil, errors.NewFormat(ShapeZefania, fmt.Sprintf("non-numeric bnumber %q", b.SelectAttr("bnumber")))
		}
		book, ok := canon.BookByNumber(num)
		if !ok {
			return nil, errors.NewFormat(ShapeZefania, fmt.Sprintf("bnumber %d out of range 1-%d", num, canon.BookCount))
		}
		for _, ch := range xmlquery.QuerySelectorAll(b, zefaniaChapExpr) {
			chapter := ch.SelectAttr("cnumber")
			for _, vs := range xmlquery.QuerySelectorAll(ch, zefaniaVerseExpr) {
				text := strings.TrimSpace(vs.InnerText())
				if text == "" {
					continue
				}
				out.add(book, chapter, vs.SelectAttr("vnumber"), text)
			}
		}
	}
	if out.VerseCount() == 0 {
		return nil, errors.NewFormat(ShapeZefania, "no verse text in payload")
	}
	return out, nil
}
