// Package epub extracts plain text from EPUB archives. The archive is parsed
// structurally: META-INF/container.xml names the OPF package, whose spine
// orders the content documents. Document HTML is reduced to body text with
// scripts and styles removed.
package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"wordflow/internal/apperrors"
	"wordflow/internal/logger"
)

const containerPath = "META-INF/container.xml"

type containerXML struct {
	RootFiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageXML struct {
	Metadata struct {
		Title string `xml:"title"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID        string `xml:"id,attr"`
			Href      string `xml:"href,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// Book is a parsed EPUB ready for text extraction.
type Book struct {
	Filename string
	Size     int
	Title    string

	documents []*zip.File
}

// Processor is the EPUB format adapter.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateExtension accepts only .epub filenames.
func (p *Processor) ValidateExtension(filename string) error {
	if filename == "" {
		return apperrors.NewValidationError("no filename provided", nil)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".epub") {
		return apperrors.NewUnsupportedFormatError("file must be an EPUB", []string{".epub"})
	}
	return nil
}

// Open parses the archive structure and resolves the ordered list of content
// documents. A corrupt archive or missing package yields a parse error.
func (p *Processor) Open(content []byte, filename string) (*Book, error) {
	if err := p.ValidateExtension(filename); err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, apperrors.NewParseError("failed to open EPUB archive", err)
	}

	entries := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		entries[f.Name] = f
	}

	book := &Book{Filename: filename, Size: len(content)}

	docs, title, err := resolveSpine(entries)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"filename": filename,
		}).Warn("Spine resolution failed, falling back to archive order")
		docs = documentsInArchiveOrder(reader.File)
	}
	book.documents = docs
	book.Title = title

	if len(book.documents) == 0 {
		return nil, apperrors.NewParseError("EPUB contains no content documents", nil)
	}

	logger.WithFields(logrus.Fields{
		"filename":  filename,
		"documents": len(book.documents),
		"title":     book.Title,
	}).Debug("Opened EPUB archive")

	return book, nil
}

// ExtractText concatenates the body text of every content document in spine
// order, separated by single spaces.
func (p *Processor) ExtractText(book *Book) (string, error) {
	var parts []string
	for _, doc := range book.documents {
		rc, err := doc.Open()
		if err != nil {
			return "", apperrors.NewParseError(fmt.Sprintf("failed to read %s", doc.Name), err)
		}
		text, err := htmlToText(rc)
		rc.Close()
		if err != nil {
			return "", apperrors.NewParseError(fmt.Sprintf("failed to parse %s", doc.Name), err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewEmptyContentError("no text content found in the EPUB file")
	}
	return text, nil
}

// Process runs the full open-and-extract pipeline for one upload.
func (p *Processor) Process(content []byte, filename string) (string, *Book, error) {
	book, err := p.Open(content, filename)
	if err != nil {
		return "", nil, err
	}
	text, err := p.ExtractText(book)
	if err != nil {
		return "", nil, err
	}
	return text, book, nil
}

// resolveSpine follows container.xml to the OPF package and returns the
// spine-ordered document entries plus the book title.
func resolveSpine(entries map[string]*zip.File) ([]*zip.File, string, error) {
	container, ok := entries[containerPath]
	if !ok {
		return nil, "", fmt.Errorf("missing %s", containerPath)
	}

	var c containerXML
	if err := decodeXML(container, &c); err != nil {
		return nil, "", fmt.Errorf("invalid container.xml: %w", err)
	}
	if len(c.RootFiles) == 0 {
		return nil, "", fmt.Errorf("container.xml names no rootfile")
	}

	opfPath := c.RootFiles[0].FullPath
	opf, ok := entries[opfPath]
	if !ok {
		return nil, "", fmt.Errorf("missing OPF package %s", opfPath)
	}

	var pkg packageXML
	if err := decodeXML(opf, &pkg); err != nil {
		return nil, "", fmt.Errorf("invalid OPF package: %w", err)
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		if isDocumentMediaType(item.MediaType) {
			hrefs[item.ID] = item.Href
		}
	}

	base := path.Dir(opfPath)
	var docs []*zip.File
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		name := href
		if base != "." {
			name = path.Join(base, href)
		}
		if f, ok := entries[name]; ok {
			docs = append(docs, f)
		}
	}
	if len(docs) == 0 {
		return nil, "", fmt.Errorf("spine references no readable documents")
	}
	return docs, strings.TrimSpace(pkg.Metadata.Title), nil
}

// documentsInArchiveOrder is the fallback when the package metadata is
// unusable: every .xhtml/.html entry in the order the archive stores them.
func documentsInArchiveOrder(files []*zip.File) []*zip.File {
	var docs []*zip.File
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if strings.HasSuffix(name, ".xhtml") || strings.HasSuffix(name, ".html") ||
			strings.HasSuffix(name, ".htm") {
			docs = append(docs, f)
		}
	}
	return docs
}

func isDocumentMediaType(mediaType string) bool {
	switch mediaType {
	case "application/xhtml+xml", "text/html":
		return true
	}
	return false
}

func decodeXML(f *zip.File, v interface{}) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// htmlToText reduces an HTML document to its visible body text with
// whitespace collapsed.
func htmlToText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()

	selection := doc.Find("body")
	if selection.Length() == 0 {
		selection = doc.Selection
	}
	return strings.Join(strings.Fields(selection.Text()), " "), nil
}
