package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

var (
	ErrDocumentLoad      = errors.New("document load failed")
	ErrUnsupportedSource = errors.New("unsupported document source")
)

const fetchTimeout = 60 * time.Second

var nonASCII = regexp.MustCompile(`[^\x00-\x7F]+`)

// Page is the extracted text of one physical page, tagged with its
// zero-based page number and the identifier of the source document.
type Page struct {
	Text   string
	Number int
	Source string
}

// Load extracts per-page text from a local PDF file or an http(s) URL
// pointing at one. Anything else fails with ErrUnsupportedSource.
func Load(ctx context.Context, source string) ([]Page, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return loadURL(ctx, source)
	case strings.EqualFold(filepath.Ext(source), ".pdf"):
		return loadFile(source, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
}

func loadURL(ctx context.Context, url string) ([]Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrDocumentLoad, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: status %d", ErrDocumentLoad, url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "docqa-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: downloading %s: %v", ErrDocumentLoad, url, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}

	log.Debug().Str("url", url).Str("tmp", tmp.Name()).Msg("downloaded remote document")
	return loadFile(tmp.Name(), url)
}

func loadFile(path, source string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDocumentLoad, source, err)
	}

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: extracting page %d of %s: %v", ErrDocumentLoad, i, source, err)
		}
		pages = append(pages, Page{
			Text:   CleanText(text),
			Number: i - 1,
			Source: source,
		})
	}
	return pages, nil
}

// CleanText replaces non-ASCII runs with a single space. PDF extraction
// leaves ligatures and control bytes behind that pollute embeddings.
func CleanText(text string) string {
	return nonASCII.ReplaceAllString(text, " ")
}
