// Package translator wraps the remote translation endpoint. The endpoint is
// an opaque collaborator: this client only shapes the request, interprets
// the two known response forms, and folds failures into marker text so the
// session always reaches a terminal translated state.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
)

const (
	// Fallbacks for a flat-shape response with missing fields.
	missingOriginalText   = "Original text not available."
	missingTranslatedText = "⚠️ No translated text found."

	// Markers substituted when the remote call fails outright.
	FailedOriginalText   = "Could not retrieve original text."
	FailedTranslatedText = "⚠️ Translation failed. Please try again later."
)

// Progress checkpoint stages, in order. Percentages are fixed UI feedback,
// not real transfer progress.
const (
	StageUpload    = "upload"
	StageExtract   = "extract"
	StageTranslate = "translate"
	StageComplete  = "complete"
)

// ProgressFunc receives the simulated four-checkpoint progress sequence.
type ProgressFunc func(stage string, percent int)

// Outcome is what a finished remote call leaves behind. Failed outcomes
// carry marker text and no structure.
type Outcome struct {
	OriginalText    string
	TranslatedText  string
	Structure       *model.DocumentStructure
	LayoutPreserved bool
	Failed          bool
}

// Client calls the remote translation endpoint.
type Client struct {
	http          *resty.Client
	baseURL       string
	stepDelay     time.Duration
	completeDelay time.Duration
}

// New builds a client for the given base URL. stepDelay separates the
// simulated progress checkpoints; completeDelay holds the 100% checkpoint
// briefly before returning. Tests pass zero for both.
func New(baseURL string, timeout, stepDelay, completeDelay time.Duration) *Client {
	return &Client{
		http:          resty.New().SetTimeout(timeout),
		baseURL:       strings.TrimRight(baseURL, "/"),
		stepDelay:     stepDelay,
		completeDelay: completeDelay,
	}
}

// Wire shapes of the remote response. Layout elements pass through with the
// keys the preview/export layers use.
type wireResponse struct {
	TranslationData *wireTranslationData `json:"translation_data"`
}

type wireTranslationData struct {
	Pages          []wirePage `json:"pages"`
	OriginalText   string     `json:"original_text"`
	TranslatedText string     `json:"translated_text"`
}

type wirePage struct {
	OriginalText   string                `json:"original_text"`
	TranslatedText string                `json:"translated_text"`
	LayoutElements []model.LayoutElement `json:"layout_elements"`
}

// Translate sends the file with the target language and a fixed
// preserve_layout=true flag, then interprets the response. It never returns
// an error: failures are logged and folded into a failed Outcome.
func (c *Client) Translate(ctx context.Context, file *model.SourceFile, languageCode string, report ProgressFunc) Outcome {
	checkpoint(report, StageUpload, 25)
	c.sleep(ctx, c.stepDelay)
	checkpoint(report, StageExtract, 50)
	c.sleep(ctx, c.stepDelay)
	checkpoint(report, StageTranslate, 75)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"target_language": languageCode,
			"preserve_layout": "true",
		}).
		SetFileReader("file", file.Name, bytes.NewReader(file.Payload)).
		Post(c.baseURL + "/translate-text")
	if err != nil {
		logFailure("request", err.Error())
		return failedOutcome()
	}
	if resp.IsError() {
		logFailure("status", resp.Status())
		return failedOutcome()
	}

	var body wireResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		logFailure("decode", err.Error())
		return failedOutcome()
	}

	out := interpret(body)
	checkpoint(report, StageComplete, 100)
	c.sleep(ctx, c.completeDelay)
	return out
}

// interpret maps the response body into an Outcome, choosing the multi-page
// shape when a non-empty pages array is present and the flat shape otherwise.
func interpret(body wireResponse) Outcome {
	data := body.TranslationData
	if data == nil {
		data = &wireTranslationData{}
	}

	if len(data.Pages) > 0 {
		originals := make([]string, len(data.Pages))
		translateds := make([]string, len(data.Pages))
		hasLayout := false
		for i, p := range data.Pages {
			originals[i] = normalize(p.OriginalText)
			translateds[i] = normalize(p.TranslatedText)
			if len(p.LayoutElements) > 0 {
				hasLayout = true
			}
		}

		out := Outcome{
			OriginalText:   strings.Join(originals, "\n\n"),
			TranslatedText: strings.Join(translateds, "\n\n"),
		}
		if hasLayout {
			pages := make([]model.Page, len(data.Pages))
			for i, p := range data.Pages {
				elements := p.LayoutElements
				if elements == nil {
					elements = []model.LayoutElement{}
				}
				pages[i] = model.Page{
					PageNumber:     i + 1,
					OriginalText:   normalize(p.OriginalText),
					TranslatedText: normalize(p.TranslatedText),
					LayoutElements: elements,
				}
			}
			out.Structure = &model.DocumentStructure{Pages: pages}
			out.LayoutPreserved = true
		}
		return out
	}

	original := data.OriginalText
	if original == "" {
		original = missingOriginalText
	}
	translated := data.TranslatedText
	if translated == "" {
		translated = missingTranslatedText
	}
	return Outcome{
		OriginalText:   normalize(original),
		TranslatedText: normalize(translated),
	}
}

// normalize turns literal backslash-n escape sequences into real newlines.
func normalize(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func failedOutcome() Outcome {
	return Outcome{
		OriginalText:   FailedOriginalText,
		TranslatedText: FailedTranslatedText,
		Failed:         true,
	}
}

func checkpoint(report ProgressFunc, stage string, percent int) {
	if report != nil {
		report(stage, percent)
	}
}

func (c *Client) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func logFailure(reason, detail string) {
	entry := map[string]any{
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
		"level":  "error",
		"msg":    "translation_request_failed",
		"reason": reason,
		"detail": detail,
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
