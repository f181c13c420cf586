package model

import (
	"fmt"
	"math"
	"time"
)

// SourceFile describes the uploaded file a translation session works on.
// Payload keeps the raw bytes in memory so the remote call can re-send them;
// uploads are capped well below any size where that would hurt.
type SourceFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	IsImage     bool   `json:"is_image"`
	Payload     []byte `json:"-"`
}

// LayoutElement is a single structural text block (paragraph, heading, ...)
// extracted by the remote service when layout preservation is on.
type LayoutElement struct {
	Type           string `json:"type"`
	Text           string `json:"text"`
	TranslatedText string `json:"translatedText"`
}

// Page holds one page of a layout-preserved translation. PageNumber is
// 1-based and sequential with no gaps.
type Page struct {
	PageNumber     int             `json:"pageNumber"`
	OriginalText   string          `json:"originalText"`
	TranslatedText string          `json:"translatedText"`
	LayoutElements []LayoutElement `json:"layoutElements"`
}

// DocumentStructure is the per-page layout view of a translation result.
// It is replaced wholesale on each successful translation and is present
// only when the session's LayoutPreserved flag is set.
type DocumentStructure struct {
	Pages []Page `json:"pages"`
}

// HistoryRecord is a durable snapshot of a completed translation, taken at
// export time. Records are never mutated after creation; the store only
// appends and removes.
type HistoryRecord struct {
	ID                string             `json:"id"`
	FileName          string             `json:"fileName"`
	Date              time.Time          `json:"date"`
	OriginalText      string             `json:"originalText"`
	TranslatedText    string             `json:"translatedText"`
	DocumentStructure *DocumentStructure `json:"documentStructure,omitempty"`
	LayoutPreserved   bool               `json:"layoutPreserved"`
}

// HistoryPreviewLen bounds the translated-text preview shown in history lists.
const HistoryPreviewLen = 150

// Preview returns a truncated view of the record's translated text for list
// responses.
func (r HistoryRecord) Preview() string {
	runes := []rune(r.TranslatedText)
	if len(runes) <= HistoryPreviewLen {
		return r.TranslatedText
	}
	return string(runes[:HistoryPreviewLen]) + "..."
}

// FormatFileSize renders a byte count for display ("1.5 MB").
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	const k = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	v := float64(bytes) / math.Pow(k, float64(i))
	s := fmt.Sprintf("%.2f", v)
	// Trim trailing zeros the way Number.parseFloat would.
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s + " " + sizes[i]
}
