package export

import (
	"bytes"
	"testing"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatDoc(text string) Document {
	return Document{
		FileName:       "source.pdf",
		LanguageCode:   "spanish",
		TranslatedText: text,
	}
}

func layoutDoc() Document {
	return Document{
		FileName:        "layout.pdf",
		LanguageCode:    "french",
		TranslatedText:  "first page\n\nsecond page",
		LayoutPreserved: true,
		Structure: &model.DocumentStructure{Pages: []model.Page{
			{PageNumber: 1, TranslatedText: "first page"},
			{PageNumber: 2, TranslatedText: "second page"},
		}},
	}
}

func TestTextExporter_FlatIsVerbatim(t *testing.T) {
	out, err := NewText().Export(flatDoc("hola"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hola"), out)
}

func TestTextExporter_LayoutHeaders(t *testing.T) {
	out, err := NewText().Export(layoutDoc())
	require.NoError(t, err)
	assert.Equal(t,
		"--- Page 1 ---\n\nfirst page\n\n--- Page 2 ---\n\nsecond page",
		string(out))
}

func TestPDFExporter(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		out, err := NewPDF().Export(flatDoc("hello\nworld"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})

	t.Run("layout gets one pdf page per structure page", func(t *testing.T) {
		out, err := NewPDF().Export(layoutDoc())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		// A4 portrait with two content pages: page objects for both.
		assert.Equal(t, 2, bytes.Count(out, []byte("/Type /Page\n")))
	})
}

func TestDOCXExporter(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		out, err := NewDOCX().Export(flatDoc("hello\nworld"))
		require.NoError(t, err)
		// DOCX containers are zip archives.
		assert.True(t, bytes.HasPrefix(out, []byte("PK")))
	})

	t.Run("layout", func(t *testing.T) {
		out, err := NewDOCX().Export(layoutDoc())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("PK")))
	})
}

func TestDerivePages_AllFormatsAgree(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []pageText
	}{
		{
			name: "flat",
			doc:  flatDoc("hola"),
			want: []pageText{{Number: 1, Text: "hola"}},
		},
		{
			name: "layout",
			doc:  layoutDoc(),
			want: []pageText{{Number: 1, Text: "first page"}, {Number: 2, Text: "second page"}},
		},
		{
			name: "layout flag without structure falls back to flat",
			doc:  Document{TranslatedText: "plain", LayoutPreserved: true},
			want: []pageText{{Number: 1, Text: "plain"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, _ := derivePages(tt.doc)
			assert.Equal(t, tt.want, pages)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, format := range []string{"txt", "pdf", "docx"} {
		e, err := r.Get(format)
		require.NoError(t, err)
		assert.Equal(t, format, e.Format())
	}

	_, err := r.Get("epub")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "translation_spanish.txt", Filename("spanish", NewText()))
	assert.Equal(t, "translation_korean.pdf", Filename("korean", NewPDF()))
	assert.Equal(t, "translation_arabic.docx", Filename("arabic", NewDOCX()))
}
