package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"template-builder-be/internal/model"
	"template-builder-be/internal/repository/memory"
	"template-builder-be/internal/repository/unitofwork"
	"template-builder-be/pkg/database"
	"template-builder-be/pkg/events"
	"template-builder-be/pkg/variable"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testLintTopic = "TEMPLATE_LINT_TEST"

type logEntry struct {
	Level   string
	Module  string
	Message string
	Details map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Level: level, Module: module, Message: message, Details: details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("DEBUG", module, message, details)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("INFO", module, message, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("WARN", module, message, details)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("ERROR", module, message, details)
}

func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) byLevel(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

type fakeEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeEvents) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.EventType())
	}
	return out
}

type sentMail struct {
	To, Subject, HTML, Text string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendTemplate(toEmail, subject, htmlBody, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: toEmail, Subject: subject, HTML: htmlBody, Text: textBody})
	return nil
}

// harness wires the services against in-memory SQLite and an in-process bus
type harness struct {
	factory   unitofwork.RepositoryFactory
	pubSub    *gochannel.GoChannel
	logger    *recordingLogger
	events    *fakeEvents
	mailer    *fakeMailer
	templates ITemplateService
	renderer  IRenderService
	editor    IEditorService
}

func newHarness(t *testing.T, strictSend bool) *harness {
	t.Helper()

	db, err := database.NewSQLiteMemoryDB(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Template{}))

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() {
		pubSub.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	h := &harness{
		factory: unitofwork.NewRepositoryFactory(db),
		pubSub:  pubSub,
		logger:  &recordingLogger{},
		events:  &fakeEvents{},
		mailer:  &fakeMailer{},
	}
	h.templates = NewTemplateService(h.factory, NewPublisherService(testLintTopic, pubSub), h.events, h.logger)
	h.renderer = NewRenderService(h.templates, variable.Default, h.mailer, h.events, h.logger, strictSend)
	h.editor = NewEditorService(memory.NewEditorSessionRepository(time.Hour, time.Hour), h.templates, h.renderer, h.logger)
	return h
}
