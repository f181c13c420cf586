package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
	serviceMocks "github.com/AlkamaSunasara00/tranzora-ai/internal/service/mocks"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/session"
)

func multipartFile(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeError(t *testing.T, r io.Reader) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Get("/session", GetSession(mockSvc))

	mockSvc.On("Snapshot", mock.Anything).Return(session.Snapshot{
		State:        session.StateEmpty,
		LanguageCode: model.DefaultLanguageCode,
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/session", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var snap session.Snapshot
	json.NewDecoder(resp.Body).Decode(&snap)
	assert.Equal(t, session.StateEmpty, snap.State)
	assert.Equal(t, "english", snap.LanguageCode)
}

func TestUploadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Post("/session/file", UploadFile(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("SelectFile", mock.Anything, "report.pdf", mock.Anything, mock.Anything, []byte("%PDF")).
			Return(session.Snapshot{State: session.StateFileSelected}, nil).Once()

		body, ct := multipartFile(t, "file", "report.pdf", "%PDF")
		req := httptest.NewRequest(http.MethodPost, "/session/file", body)
		req.Header.Set("Content-Type", ct)

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var snap session.Snapshot
		json.NewDecoder(resp.Body).Decode(&snap)
		assert.Equal(t, session.StateFileSelected, snap.State)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/session/file", strings.NewReader(""))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		mockSvc.On("SelectFile", mock.Anything, "notes.xlsx", mock.Anything, mock.Anything, mock.Anything).
			Return(session.Snapshot{}, session.ErrInvalidFileType).Once()

		body, ct := multipartFile(t, "file", "notes.xlsx", "data")
		req := httptest.NewRequest(http.MethodPost, "/session/file", body)
		req.Header.Set("Content-Type", ct)

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_FILE_TYPE", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("translation in flight", func(t *testing.T) {
		mockSvc.On("SelectFile", mock.Anything, "late.txt", mock.Anything, mock.Anything, mock.Anything).
			Return(session.Snapshot{}, session.ErrTranslationInFlight).Once()

		body, ct := multipartFile(t, "file", "late.txt", "data")
		req := httptest.NewRequest(http.MethodPost, "/session/file", body)
		req.Header.Set("Content-Type", ct)

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "TRANSLATION_IN_FLIGHT", decodeError(t, resp.Body).Error.Code)
	})
}

func TestTranslateSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTranslationService)
		app := fiber.New()
		app.Post("/session/translate", TranslateSession(mockSvc))

		mockSvc.On("Translate", mock.Anything).Return(session.Snapshot{
			State:          session.StateTranslated,
			TranslatedText: "hola",
		}, nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/session/translate", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var snap session.Snapshot
		json.NewDecoder(resp.Body).Decode(&snap)
		assert.Equal(t, "hola", snap.TranslatedText)
	})

	t.Run("no file selected", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTranslationService)
		app := fiber.New()
		app.Post("/session/translate", TranslateSession(mockSvc))

		mockSvc.On("Translate", mock.Anything).Return(session.Snapshot{}, session.ErrNoFile)

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/session/translate", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "NO_FILE_SELECTED", decodeError(t, resp.Body).Error.Code)
	})
}

func TestSetTargetLanguage(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Post("/session/language", SetTargetLanguage(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("SetLanguage", mock.Anything, "spanish").
			Return(session.Snapshot{LanguageCode: "spanish"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/session/language", strings.NewReader(`{"code":"spanish"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/session/language", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "LANGUAGE_REQUIRED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("unknown language", func(t *testing.T) {
		mockSvc.On("SetLanguage", mock.Anything, "klingon").
			Return(session.Snapshot{}, session.ErrUnknownLanguage).Once()

		req := httptest.NewRequest(http.MethodPost, "/session/language", strings.NewReader(`{"code":"klingon"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "UNKNOWN_LANGUAGE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestResetSession(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Post("/session/reset", ResetSession(mockSvc))

	mockSvc.On("Reset", mock.Anything).Return(session.Snapshot{State: session.StateEmpty}, nil)

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/session/reset", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var snap session.Snapshot
	json.NewDecoder(resp.Body).Decode(&snap)
	assert.Equal(t, session.StateEmpty, snap.State)
}

func TestListLanguages(t *testing.T) {
	app := fiber.New()
	app.Get("/languages", ListLanguages())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/languages", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data    []model.Language `json:"data"`
		Default string           `json:"default"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, len(model.Languages))
	assert.Equal(t, model.DefaultLanguageCode, body.Default)
}

func TestExportTranslation(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTranslationService)
		app := fiber.New()
		app.Post("/exports", ExportTranslation(mockSvc))

		mockSvc.On("Export", mock.Anything, "pdf").Return(&service.ExportResult{
			Record:      &model.HistoryRecord{ID: "rec-1"},
			FileName:    "translation_spanish.pdf",
			ContentType: "application/pdf",
			Size:        1234,
			DownloadURL: "https://minio.local/exports/rec-1",
		}, nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/exports?format=pdf", nil))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var res service.ExportResult
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "translation_spanish.pdf", res.FileName)
		assert.Equal(t, "rec-1", res.Record.ID)
	})

	t.Run("defaults to txt", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTranslationService)
		app := fiber.New()
		app.Post("/exports", ExportTranslation(mockSvc))

		mockSvc.On("Export", mock.Anything, "txt").
			Return(&service.ExportResult{FileName: "translation_english.txt"}, nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/exports", nil))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("nothing to export", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTranslationService)
		app := fiber.New()
		app.Post("/exports", ExportTranslation(mockSvc))

		mockSvc.On("Export", mock.Anything, "txt").Return(nil, service.ErrNothingToExport)

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/exports", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "NOTHING_TO_EXPORT", decodeError(t, resp.Body).Error.Code)
	})
}

func TestListHistory(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Get("/history", ListHistory(mockSvc))

	mockSvc.On("History", mock.Anything).Return(&service.HistoryListResult{
		Items: []service.HistoryListItem{{ID: "rec-1", FileName: "report.pdf", Preview: "hola"}},
		Total: 1,
	}, nil)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.HistoryListResult
	json.NewDecoder(resp.Body).Decode(&res)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "hola", res.Items[0].Preview)
}

func TestGetHistoryRecord(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Get("/history/:id", GetHistoryRecord(mockSvc))

	knownID := "7e0fa1f0-64cc-47d6-b9e9-7bfa57a1f6cd"
	missingID := "11f4f1da-a62e-49a9-9eac-4dbbdbe47c58"

	t.Run("found", func(t *testing.T) {
		mockSvc.On("HistoryRecord", mock.Anything, knownID).
			Return(&model.HistoryRecord{ID: knownID, TranslatedText: "hola"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/history/"+knownID, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var rec model.HistoryRecord
		json.NewDecoder(resp.Body).Decode(&rec)
		assert.Equal(t, "hola", rec.TranslatedText)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/history/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("HistoryRecord", mock.Anything, missingID).
			Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/history/"+missingID, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
	})
}

func TestDownloadHistoryExport(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Get("/history/:id/download", DownloadHistoryExport(mockSvc))

	id := "7e0fa1f0-64cc-47d6-b9e9-7bfa57a1f6cd"
	mockSvc.On("DownloadHistory", mock.Anything, id, "txt").Return(&service.DownloadResult{
		FileName:    "translated-contract.pdf.txt",
		ContentType: "text/plain; charset=utf-8",
		Payload:     []byte("hola"),
	}, nil)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/history/"+id+"/download", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="translated-contract.pdf.txt"`, resp.Header.Get(fiber.HeaderContentDisposition))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hola", string(body))
}

func TestDeleteHistoryRecord(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Delete("/history/:id", DeleteHistoryRecord(mockSvc))

	id := "7e0fa1f0-64cc-47d6-b9e9-7bfa57a1f6cd"
	mockSvc.On("DeleteHistory", mock.Anything, id).Return(nil)

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/history/"+id, nil))

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestClearHistory(t *testing.T) {
	mockSvc := new(serviceMocks.MockTranslationService)
	app := fiber.New()
	app.Delete("/history", ClearHistory(mockSvc))

	t.Run("requires confirmation", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/history", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "CONFIRMATION_REQUIRED", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertNotCalled(t, "ClearHistory", mock.Anything)
	})

	t.Run("clears with confirmation", func(t *testing.T) {
		mockSvc.On("ClearHistory", mock.Anything).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/history?confirm=true", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
