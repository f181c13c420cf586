package mocks

import (
	"context"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/session"

	"github.com/stretchr/testify/mock"
)

type MockTranslationService struct {
	mock.Mock
}

func (m *MockTranslationService) SelectFile(ctx context.Context, name, contentType string, size int64, payload []byte) (session.Snapshot, error) {
	args := m.Called(ctx, name, contentType, size, payload)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockTranslationService) SetLanguage(ctx context.Context, code string) (session.Snapshot, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockTranslationService) Reset(ctx context.Context) (session.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockTranslationService) Snapshot(ctx context.Context) session.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(session.Snapshot)
}

func (m *MockTranslationService) Translate(ctx context.Context) (session.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockTranslationService) Export(ctx context.Context, format string) (*service.ExportResult, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockTranslationService) History(ctx context.Context) (*service.HistoryListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HistoryListResult), args.Error(1)
}

func (m *MockTranslationService) HistoryRecord(ctx context.Context, id string) (*model.HistoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HistoryRecord), args.Error(1)
}

func (m *MockTranslationService) DownloadHistory(ctx context.Context, id, format string) (*service.DownloadResult, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadResult), args.Error(1)
}

func (m *MockTranslationService) DeleteHistory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTranslationService) ClearHistory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
