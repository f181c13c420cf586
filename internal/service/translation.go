package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/export"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/repository"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/session"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/storage"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/translator"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("history record not found")
	// ErrNothingToExport is returned when export is requested before a
	// translation has produced text.
	ErrNothingToExport = errors.New("nothing to export")
)

// Translator is the remote-call dependency; satisfied by *translator.Client.
type Translator interface {
	Translate(ctx context.Context, file *model.SourceFile, languageCode string, report translator.ProgressFunc) translator.Outcome
}

// ExportResult describes a finished export: the persisted history record
// plus where the serialized artifact can be fetched. DownloadURL may be
// empty when the artifact store was unreachable; the history record is
// kept either way, since the download side is fire-and-forget.
type ExportResult struct {
	Record      *model.HistoryRecord `json:"record"`
	FileName    string               `json:"filename"`
	ContentType string               `json:"content_type"`
	Size        int64                `json:"size"`
	DownloadURL string               `json:"download_url,omitempty"`
}

// DownloadResult carries a freshly serialized history record ready to
// stream to the client.
type DownloadResult struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// HistoryListItem is the list-view DTO: full texts are withheld in favor of
// a bounded preview.
type HistoryListItem struct {
	ID              string    `json:"id"`
	FileName        string    `json:"fileName"`
	Date            time.Time `json:"date"`
	Preview         string    `json:"preview"`
	LayoutPreserved bool      `json:"layoutPreserved"`
}

// HistoryListResult wraps the history list response.
type HistoryListResult struct {
	Items []HistoryListItem `json:"data"`
	Total int               `json:"total"`
}

// TranslationService defines the use cases around the single live
// translation session and its history.
type TranslationService interface {
	// SelectFile validates and installs a new source file, resetting any
	// previous result.
	SelectFile(ctx context.Context, name, contentType string, size int64, payload []byte) (session.Snapshot, error)

	// SetLanguage changes the target language for the next translation.
	SetLanguage(ctx context.Context, code string) (session.Snapshot, error)

	// Reset empties the session.
	Reset(ctx context.Context) (session.Snapshot, error)

	// Snapshot returns the current session state.
	Snapshot(ctx context.Context) session.Snapshot

	// Translate runs the remote call against the selected file. The session
	// always settles in the translated state; remote failures surface as
	// marker text, not as an error.
	Translate(ctx context.Context) (session.Snapshot, error)

	// Export serializes the translated session into the given format,
	// appends a history record (only when serialization succeeded), and
	// stores the artifact for download.
	Export(ctx context.Context, format string) (*ExportResult, error)

	// History lists records newest-first; storage failures degrade to an
	// empty list.
	History(ctx context.Context) (*HistoryListResult, error)

	// HistoryRecord returns one full record.
	HistoryRecord(ctx context.Context, id string) (*model.HistoryRecord, error)

	// DownloadHistory re-serializes a stored record into the given format.
	DownloadHistory(ctx context.Context, id, format string) (*DownloadResult, error)

	// DeleteHistory removes one record by id.
	DeleteHistory(ctx context.Context, id string) error

	// ClearHistory truncates the history. Callers must gate this behind an
	// explicit confirmation.
	ClearHistory(ctx context.Context) error
}

type translationService struct {
	sess       *session.Session
	translator Translator
	exporters  *export.Registry
	store      storage.Storage
	repo       repository.HistoryRepository
	presignTTL time.Duration
}

// NewTranslationService wires the session container with its collaborators.
func NewTranslationService(sess *session.Session, tr Translator, exporters *export.Registry, store storage.Storage, repo repository.HistoryRepository, presignTTL time.Duration) TranslationService {
	return &translationService{
		sess:       sess,
		translator: tr,
		exporters:  exporters,
		store:      store,
		repo:       repo,
		presignTTL: presignTTL,
	}
}

func (s *translationService) SelectFile(ctx context.Context, name, contentType string, size int64, payload []byte) (session.Snapshot, error) {
	if err := s.sess.SelectFile(name, contentType, size, payload); err != nil {
		return session.Snapshot{}, err
	}
	return s.sess.Snapshot(), nil
}

func (s *translationService) SetLanguage(ctx context.Context, code string) (session.Snapshot, error) {
	if err := s.sess.SetLanguage(code); err != nil {
		return session.Snapshot{}, err
	}
	return s.sess.Snapshot(), nil
}

func (s *translationService) Reset(ctx context.Context) (session.Snapshot, error) {
	if err := s.sess.Reset(); err != nil {
		return session.Snapshot{}, err
	}
	return s.sess.Snapshot(), nil
}

func (s *translationService) Snapshot(ctx context.Context) session.Snapshot {
	return s.sess.Snapshot()
}

func (s *translationService) Translate(ctx context.Context) (session.Snapshot, error) {
	if err := s.sess.BeginTranslation(); err != nil {
		return session.Snapshot{}, err
	}

	file := s.sess.File()
	out := s.translator.Translate(ctx, file, s.sess.Language(), s.sess.SetProgress)
	s.sess.CompleteTranslation(out.OriginalText, out.TranslatedText, out.Structure, out.LayoutPreserved)
	return s.sess.Snapshot(), nil
}

func (s *translationService) Export(ctx context.Context, format string) (*ExportResult, error) {
	snap := s.sess.Snapshot()
	if snap.File == nil || snap.TranslatedText == "" {
		return nil, ErrNothingToExport
	}

	exp, err := s.exporters.Get(format)
	if err != nil {
		return nil, err
	}

	payload, err := exp.Export(export.Document{
		FileName:        snap.File.Name,
		LanguageCode:    snap.LanguageCode,
		TranslatedText:  snap.TranslatedText,
		Structure:       snap.DocumentStructure,
		LayoutPreserved: snap.LayoutPreserved,
	})
	if err != nil {
		// Serialization failed: no history record may be appended.
		return nil, fmt.Errorf("serialize export: %w", err)
	}

	rec := &model.HistoryRecord{
		ID:                uuid.NewString(),
		FileName:          snap.File.Name,
		Date:              time.Now().UTC(),
		OriginalText:      snap.OriginalText,
		TranslatedText:    snap.TranslatedText,
		DocumentStructure: snap.DocumentStructure,
		LayoutPreserved:   snap.LayoutPreserved,
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	filename := export.Filename(snap.LanguageCode, exp)
	result := &ExportResult{
		Record:      stored,
		FileName:    filename,
		ContentType: exp.ContentType(),
		Size:        int64(len(payload)),
	}

	// Artifact storage is the download side of the pipeline; its failures
	// must not undo the already-recorded history entry.
	key := "exports/" + stored.ID + "_" + filename
	if _, err := s.store.Put(ctx, key, bytes.NewReader(payload), storage.PutObjectOptions{
		Size:        int64(len(payload)),
		ContentType: exp.ContentType(),
		Metadata:    map[string]string{"source-filename": snap.File.Name},
	}); err != nil {
		logEvent("error", "export_artifact_store_failed", err.Error())
		return result, nil
	}
	url, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		logEvent("error", "export_presign_failed", err.Error())
		return result, nil
	}
	result.DownloadURL = url
	return result, nil
}

func (s *translationService) History(ctx context.Context) (*HistoryListResult, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		// Fail soft: corrupt or unreachable history reads as empty.
		logEvent("error", "history_load_failed", err.Error())
		return &HistoryListResult{Items: []HistoryListItem{}, Total: 0}, nil
	}

	items := make([]HistoryListItem, len(records))
	for i, rec := range records {
		items[i] = HistoryListItem{
			ID:              rec.ID,
			FileName:        rec.FileName,
			Date:            rec.Date,
			Preview:         rec.Preview(),
			LayoutPreserved: rec.LayoutPreserved,
		}
	}
	return &HistoryListResult{Items: items, Total: len(items)}, nil
}

func (s *translationService) HistoryRecord(ctx context.Context, id string) (*model.HistoryRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *translationService) DownloadHistory(ctx context.Context, id, format string) (*DownloadResult, error) {
	rec, err := s.HistoryRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	exp, err := s.exporters.Get(format)
	if err != nil {
		return nil, err
	}
	payload, err := exp.Export(export.Document{
		FileName:        rec.FileName,
		TranslatedText:  rec.TranslatedText,
		Structure:       rec.DocumentStructure,
		LayoutPreserved: rec.LayoutPreserved,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}
	return &DownloadResult{
		FileName:    fmt.Sprintf("translated-%s.%s", rec.FileName, exp.Extension()),
		ContentType: exp.ContentType(),
		Payload:     payload,
	}, nil
}

func (s *translationService) DeleteHistory(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *translationService) ClearHistory(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}

func logEvent(level, msg, detail string) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	if detail != "" {
		entry["detail"] = detail
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
