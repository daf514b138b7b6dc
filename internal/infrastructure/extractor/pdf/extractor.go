package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

// Extractor pulls plain text out of PDF payloads embedded as data URIs so
// document search can match file contents.
type Extractor struct {
	maxChars int
}

func New(maxChars int) *Extractor {
	if maxChars <= 0 {
		maxChars = 100_000
	}
	return &Extractor{maxChars: maxChars}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !strings.Contains(strings.ToLower(doc.FileType), "pdf") {
		return "", nil
	}

	raw, err := decodeDataURI(doc.DataURI)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", pageNum, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		if sb.Len() >= e.maxChars {
			break
		}
	}

	out := strings.TrimSpace(sb.String())
	if len(out) > e.maxChars {
		out = out[:e.maxChars]
	}
	return out, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	_, payload, found := strings.Cut(uri, ";base64,")
	if !found {
		return nil, fmt.Errorf("unsupported data uri encoding")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return raw, nil
}
