package session

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
)

var (
	// ErrInvalidFileType is returned when the candidate file's extension is
	// outside the supported document and image sets.
	ErrInvalidFileType = errors.New("unsupported file type")
	// ErrTranslationInFlight is returned by any state mutation attempted
	// while a translation is running.
	ErrTranslationInFlight = errors.New("translation already in progress")
	// ErrNoFile is returned when translate/export is requested before a
	// file has been selected.
	ErrNoFile = errors.New("no file selected")
	// ErrUnknownLanguage is returned for target-language codes outside the
	// catalog.
	ErrUnknownLanguage = errors.New("unknown language code")
)

// State names the session lifecycle phase derived from its fields.
type State string

const (
	StateEmpty        State = "empty"
	StateFileSelected State = "file_selected"
	StateTranslating  State = "translating"
	// StateTranslated is terminal for both successful and failed remote
	// calls; a failure lands here with marker text rather than reverting.
	StateTranslated State = "translated"
)

var (
	docTypes = regexp.MustCompile(`(?i)\.(pdf|doc|docx|txt)$`)
	imgTypes = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|webp)$`)
)

// Progress reports the simulated four-checkpoint translation progress.
type Progress struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage,omitempty"`
}

// Session holds the single in-progress translation job. All access goes
// through methods that take the internal mutex, so the single-flight
// property holds for any caller, not just the HTTP layer.
type Session struct {
	mu sync.Mutex

	file            *model.SourceFile
	isProcessing    bool
	originalText    string
	translatedText  string
	structure       *model.DocumentStructure
	layoutPreserved bool
	languageCode    string
	progress        Progress
}

// New returns an empty session with the default target language.
func New() *Session {
	return &Session{languageCode: model.DefaultLanguageCode}
}

// Snapshot is a point-in-time copy of the session safe to serialize.
type Snapshot struct {
	State             State                    `json:"state"`
	File              *model.SourceFile        `json:"file,omitempty"`
	FileSizeDisplay   string                   `json:"file_size_display,omitempty"`
	IsProcessing      bool                     `json:"isProcessing"`
	OriginalText      string                   `json:"originalText"`
	TranslatedText    string                   `json:"translatedText"`
	DocumentStructure *model.DocumentStructure `json:"documentStructure,omitempty"`
	LayoutPreserved   bool                     `json:"layoutPreserved"`
	LanguageCode      string                   `json:"language"`
	Progress          Progress                 `json:"progress"`
}

// SelectFile validates the candidate against the supported extension sets
// and, on acceptance, replaces the current file and clears every result
// field. On rejection the session is left byte-identical to before the call.
func (s *Session) SelectFile(name, contentType string, size int64, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isProcessing {
		return ErrTranslationInFlight
	}
	if !docTypes.MatchString(name) && !imgTypes.MatchString(name) {
		return ErrInvalidFileType
	}

	s.file = &model.SourceFile{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		IsImage:     isImage(name, contentType),
		Payload:     payload,
	}
	s.originalText = ""
	s.translatedText = ""
	s.structure = nil
	s.layoutPreserved = false
	s.progress = Progress{}
	return nil
}

// SetLanguage changes the target language for the next translation.
func (s *Session) SetLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isProcessing {
		return ErrTranslationInFlight
	}
	if _, ok := model.LanguageByCode(code); !ok {
		return ErrUnknownLanguage
	}
	s.languageCode = code
	return nil
}

// Reset returns the session to Empty from any settled state.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isProcessing {
		return ErrTranslationInFlight
	}
	s.file = nil
	s.originalText = ""
	s.translatedText = ""
	s.structure = nil
	s.layoutPreserved = false
	s.languageCode = model.DefaultLanguageCode
	s.progress = Progress{}
	return nil
}

// BeginTranslation atomically checks preconditions and claims the busy flag.
// Exactly one of two concurrent callers proceeds; the other observes
// ErrTranslationInFlight.
func (s *Session) BeginTranslation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isProcessing {
		return ErrTranslationInFlight
	}
	if s.file == nil {
		return ErrNoFile
	}
	s.isProcessing = true
	s.progress = Progress{}
	return nil
}

// SetProgress records a simulated checkpoint (25/50/75/100).
func (s *Session) SetProgress(stage string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = Progress{Percent: percent, Stage: stage}
}

// CompleteTranslation stores the remote call's outcome and clears the busy
// flag. Both successful and failed calls end here; a failed call carries
// marker text and no structure.
func (s *Session) CompleteTranslation(originalText, translatedText string, structure *model.DocumentStructure, layoutPreserved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.originalText = originalText
	s.translatedText = translatedText
	s.structure = structure
	s.layoutPreserved = layoutPreserved
	s.isProcessing = false
}

// Snapshot returns a deep copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:           s.stateLocked(),
		IsProcessing:    s.isProcessing,
		OriginalText:    s.originalText,
		TranslatedText:  s.translatedText,
		LayoutPreserved: s.layoutPreserved,
		LanguageCode:    s.languageCode,
		Progress:        s.progress,
	}
	if s.file != nil {
		f := *s.file
		f.Payload = nil
		snap.File = &f
		snap.FileSizeDisplay = model.FormatFileSize(s.file.Size)
	}
	if s.structure != nil {
		pages := make([]model.Page, len(s.structure.Pages))
		copy(pages, s.structure.Pages)
		snap.DocumentStructure = &model.DocumentStructure{Pages: pages}
	}
	return snap
}

// File returns a copy of the selected file, or nil when the session is empty.
func (s *Session) File() *model.SourceFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	f := *s.file
	return &f
}

// Language returns the currently selected target-language code.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.languageCode
}

func (s *Session) stateLocked() State {
	switch {
	case s.isProcessing:
		return StateTranslating
	case s.translatedText != "":
		return StateTranslated
	case s.file != nil:
		return StateFileSelected
	default:
		return StateEmpty
	}
}

func isImage(name, contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	return imgTypes.MatchString(name)
}
