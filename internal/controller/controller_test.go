package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"template-builder-be/internal/model"
	"template-builder-be/internal/pkg/logger"
	"template-builder-be/internal/pkg/serverutils"
	"template-builder-be/internal/repository/memory"
	"template-builder-be/internal/repository/unitofwork"
	"template-builder-be/internal/service"
	"template-builder-be/pkg/database"
	"template-builder-be/pkg/variable"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type stubMailer struct {
	sent []string
}

func (m *stubMailer) SendTemplate(toEmail, subject, htmlBody, textBody string) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newTestApp(t *testing.T) (*fiber.App, *stubMailer) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

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

	log := logger.NewNopLogger()
	mail := &stubMailer{}
	templates := service.NewTemplateService(unitofwork.NewRepositoryFactory(db), service.NewPublisherService("TEMPLATE_LINT_HTTP", pubSub), nil, log)
	renderer := service.NewRenderService(templates, variable.Default, mail, nil, log, true)
	editor := service.NewEditorService(memory.NewEditorSessionRepository(time.Hour, time.Hour), templates, renderer, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewTemplateController(templates, renderer).RegisterRoutes(api)
	NewEditorController(editor).RegisterRoutes(api)
	NewVariableController(service.NewVariableService(variable.Default)).RegisterRoutes(api)
	return app, mail
}

func newClient(t *testing.T, app *fiber.App, userId uuid.UUID) *apiClient {
	token, err := serverutils.SignToken(testSecret, userId)
	require.NoError(t, err)
	return &apiClient{t: t, app: app, token: token}
}

func (c *apiClient) do(method, path string, body any) (int, envelope) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type idData struct {
	Id string `json:"id"`
}

type sessionData struct {
	SessionId string `json:"session_id"`
	Blocks    []struct {
		Id      string         `json:"id"`
		Kind    string         `json:"kind"`
		Payload map[string]any `json:"payload"`
	} `json:"blocks"`
	Dirty    bool    `json:"dirty"`
	Dragging *string `json:"dragging"`
}

func (s sessionData) ids() []string {
	out := make([]string, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		out = append(out, b.Id)
	}
	return out
}

func TestTemplateRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)
	anon := &apiClient{t: t, app: app}

	status, env := anon.do(http.MethodGet, "/api/template/v1", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestTemplateCrudAndPreview(t *testing.T) {
	app, mail := newTestApp(t)
	c := newClient(t, app, uuid.New())

	status, env := c.do(http.MethodPost, "/api/template/v1", map[string]any{
		"name":    "Reminder",
		"subject": "See you {{appointment.date}}",
		"blocks": []map[string]any{
			{"kind": "text", "payload": map[string]any{"html": "<p>Hi {{patient.firstName}}</p>"}},
			{"kind": "variable", "payload": map[string]any{"token": "practice.name"}},
		},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	id := decode[idData](t, env.Data).Id

	status, env = c.do(http.MethodGet, "/api/template/v1/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	shown := decode[sessionData](t, env.Data)
	require.Len(t, shown.Blocks, 2)
	assert.NotEmpty(t, shown.Blocks[0].Id)
	assert.Equal(t, "text", shown.Blocks[0].Kind)

	status, env = c.do(http.MethodPost, "/api/template/v1/"+id+"/preview", map[string]any{
		"context": map[string]string{"patient.firstName": "Ana"},
	})
	require.Equal(t, http.StatusOK, status)
	preview := decode[struct {
		Subject  string           `json:"subject"`
		HTML     string           `json:"html"`
		Warnings []map[string]any `json:"warnings"`
	}](t, env.Data)
	assert.Contains(t, preview.HTML, "Hi Ana")
	assert.Equal(t, "See you {{appointment.date}}", preview.Subject)
	assert.Len(t, preview.Warnings, 2)

	// strict send refuses the unresolved tokens
	status, env = c.do(http.MethodPost, "/api/template/v1/"+id+"/send", map[string]any{
		"to":      "ana@example.com",
		"context": map[string]string{"patient.firstName": "Ana"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, env.Errors)
	assert.Empty(t, mail.sent)

	status, _ = c.do(http.MethodPost, "/api/template/v1/"+id+"/send", map[string]any{
		"to":               "ana@example.com",
		"context":          map[string]string{"patient.firstName": "Ana"},
		"allow_unresolved": true,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"ana@example.com"}, mail.sent)

	status, _ = c.do(http.MethodDelete, "/api/template/v1/"+id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/api/template/v1/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTemplateErrors(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app, uuid.New())

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"missing name", http.MethodPost, "/api/template/v1", map[string]any{"subject": "x"}, http.StatusBadRequest},
		{"invalid block payload", http.MethodPost, "/api/template/v1", map[string]any{
			"name":   "Bad",
			"blocks": []map[string]any{{"kind": "spacer", "payload": map[string]any{"heightPx": 0}}},
		}, http.StatusUnprocessableEntity},
		{"duplicate block ids", http.MethodPost, "/api/template/v1", map[string]any{
			"name": "Dup",
			"blocks": []map[string]any{
				{"id": "a", "kind": "text", "payload": map[string]any{"html": ""}},
				{"id": "a", "kind": "text", "payload": map[string]any{"html": ""}},
			},
		}, http.StatusConflict},
		{"bad id", http.MethodGet, "/api/template/v1/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown template", http.MethodGet, "/api/template/v1/" + uuid.NewString(), nil, http.StatusNotFound},
		{"invalid recipient", http.MethodPost, "/api/template/v1/" + uuid.NewString() + "/send", map[string]any{"to": "nope"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := c.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status, env.Message)
			assert.False(t, env.Success)
		})
	}
}

func TestEditorSessionFlow(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app, uuid.New())

	status, env := c.do(http.MethodPost, "/api/template/v1", map[string]any{"name": "Welcome"})
	require.Equal(t, http.StatusCreated, status)
	templateId := decode[idData](t, env.Data).Id

	status, env = c.do(http.MethodPost, "/api/editor/v1/sessions", map[string]any{"template_id": templateId})
	require.Equal(t, http.StatusCreated, status, env.Message)
	session := decode[sessionData](t, env.Data)
	base := "/api/editor/v1/sessions/" + session.SessionId
	assert.Empty(t, session.Blocks)

	insert := func(index int, kind string, payload map[string]any) sessionData {
		status, env := c.do(http.MethodPost, base+"/blocks", map[string]any{"index": index, "kind": kind, "payload": payload})
		require.Equal(t, http.StatusCreated, status, env.Message)
		return decode[sessionData](t, env.Data)
	}
	insert(0, "text", map[string]any{"html": "<p>Hello {{patient.firstName}}</p>"})
	insert(1, "divider", map[string]any{"style": "solid"})
	snap := insert(99, "button", map[string]any{"label": "Book", "targetUrl": "https://x/book"})
	require.Len(t, snap.Blocks, 3)
	assert.True(t, snap.Dirty)
	a, b, btn := snap.Blocks[0].Id, snap.Blocks[1].Id, snap.Blocks[2].Id

	status, env = c.do(http.MethodPut, base+"/blocks/"+btn+"/move", map[string]any{"index": 0})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{btn, a, b}, decode[sessionData](t, env.Data).ids())

	status, env = c.do(http.MethodPatch, base+"/blocks/"+btn, map[string]any{"patch": map[string]any{"style": "outline"}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "outline", decode[sessionData](t, env.Data).Blocks[0].Payload["style"])

	status, _ = c.do(http.MethodPatch, base+"/blocks/"+btn, map[string]any{"patch": map[string]any{"style": "neon"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = c.do(http.MethodPost, base+"/drag/begin", map[string]any{"block_id": b})
	require.Equal(t, http.StatusOK, status)
	dragging := decode[sessionData](t, env.Data).Dragging
	require.NotNil(t, dragging)
	assert.Equal(t, b, *dragging)

	status, _ = c.do(http.MethodPost, base+"/drag/over", map[string]any{"index": 0})
	assert.Equal(t, http.StatusOK, status)

	status, env = c.do(http.MethodPost, base+"/drag/drop", map[string]any{"index": 0})
	require.Equal(t, http.StatusOK, status)
	dropped := decode[sessionData](t, env.Data)
	assert.Equal(t, []string{b, btn, a}, dropped.ids())
	assert.Nil(t, dropped.Dragging)

	status, env = c.do(http.MethodDelete, base+"/blocks/"+a, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{b, btn}, decode[sessionData](t, env.Data).ids())

	status, _ = c.do(http.MethodDelete, base+"/blocks/"+a, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = c.do(http.MethodPost, base+"/render", map[string]any{"use_examples": true})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, decode[struct {
		HTML string `json:"html"`
	}](t, env.Data).HTML, "Book")

	status, env = c.do(http.MethodPost, base+"/save", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, 2, decode[struct {
		BlockCount int `json:"block_count"`
	}](t, env.Data).BlockCount)

	status, env = c.do(http.MethodGet, "/api/template/v1/"+templateId, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{b, btn}, decode[sessionData](t, env.Data).ids())

	status, _ = c.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEditorSessionIsOwnerScoped(t *testing.T) {
	app, _ := newTestApp(t)
	owner := newClient(t, app, uuid.New())
	other := newClient(t, app, uuid.New())

	_, env := owner.do(http.MethodPost, "/api/template/v1", map[string]any{"name": "Private"})
	templateId := decode[idData](t, env.Data).Id

	status, _ := other.do(http.MethodPost, "/api/editor/v1/sessions", map[string]any{"template_id": templateId})
	assert.Equal(t, http.StatusNotFound, status)

	_, env = owner.do(http.MethodPost, "/api/editor/v1/sessions", map[string]any{"template_id": templateId})
	sid := decode[sessionData](t, env.Data).SessionId

	status, _ = other.do(http.MethodGet, "/api/editor/v1/sessions/"+sid, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestVariableRoutesArePublic(t *testing.T) {
	app, _ := newTestApp(t)
	anon := &apiClient{t: t, app: app}

	status, env := anon.do(http.MethodGet, "/api/variable/v1?category="+variable.CategoryPractice, nil)
	require.Equal(t, http.StatusOK, status)
	defs := decode[[]variable.Definition](t, env.Data)
	require.NotEmpty(t, defs)
	for _, d := range defs {
		assert.Equal(t, variable.CategoryPractice, d.Category)
	}

	status, env = anon.do(http.MethodGet, "/api/variable/v1/categories", nil)
	require.Equal(t, http.StatusOK, status)
	groups := decode[[]struct {
		Category  string                `json:"category"`
		Variables []variable.Definition `json:"variables"`
	}](t, env.Data)
	require.NotEmpty(t, groups)
	assert.Equal(t, variable.Default.Categories()[0], groups[0].Category)
}
