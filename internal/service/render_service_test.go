package service

import (
	"context"
	"errors"
	"testing"

	"template-builder-be/internal/dto"
	"template-builder-be/pkg/block"
	"template-builder-be/pkg/events"
	"template-builder-be/pkg/render"
	"template-builder-be/pkg/variable"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReminder(t *testing.T, h *harness, userId uuid.UUID) uuid.UUID {
	t.Helper()
	created, err := h.templates.Create(context.Background(), userId, &dto.CreateTemplateRequest{
		Name:    "Reminder",
		Subject: "Your visit on {{appointment.date}}",
		Blocks: []block.Block{
			{ID: "t1", Kind: block.KindText, Payload: block.TextPayload{HTML: "<p>Hi {{patient.firstName}}</p>"}},
			{ID: "v1", Kind: block.KindVariable, Payload: block.VariablePayload{Token: "practice.name"}},
		},
	})
	require.NoError(t, err)
	return created.Id
}

func TestRenderServicePreviewWithExamples(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	userId := uuid.New()
	id := createReminder(t, h, userId)

	res, err := h.renderer.Preview(ctx, userId, id, &dto.RenderRequest{
		UseExamples: true,
		Context:     map[string]string{"patient.firstName": "Ana"},
	})
	require.NoError(t, err)

	examples := variable.Default.Examples()
	assert.Equal(t, "Your visit on "+examples["appointment.date"], res.Subject)
	assert.Equal(t, "<p>Hi Ana</p>", res.Blocks[0].Content)
	assert.Equal(t, examples["practice.name"], res.Blocks[1].Content)
	assert.Empty(t, res.Warnings)
	assert.Contains(t, res.HTML, "Hi Ana")
	assert.Contains(t, res.Text, "Hi Ana")
}

func TestRenderServicePreviewReportsMissingValues(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	userId := uuid.New()
	id := createReminder(t, h, userId)

	res, err := h.renderer.Preview(ctx, userId, id, &dto.RenderRequest{})
	require.NoError(t, err)

	tokens := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		assert.Equal(t, render.WarningUnresolvedVariable, w.Code)
		tokens = append(tokens, w.Token)
	}
	assert.Equal(t, []string{"appointment.date", "patient.firstName", "practice.name"}, tokens)
	assert.Equal(t, "{{practice.name}}", res.Blocks[1].Content)

	_, err = h.renderer.Preview(ctx, uuid.New(), id, &dto.RenderRequest{})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderServiceSend(t *testing.T) {
	full := map[string]string{
		"appointment.date":  "May 4",
		"patient.firstName": "John",
		"practice.name":     "Riverside",
	}
	partial := map[string]string{"patient.firstName": "John"}

	tests := []struct {
		name            string
		strict          bool
		context         map[string]string
		allowUnresolved bool
		wantErr         error
		wantSent        bool
		wantWarnings    int
	}{
		{name: "fully resolved", strict: true, context: full, wantSent: true},
		{name: "strict refuses unresolved", strict: true, context: partial, wantErr: ErrUnresolvedVariables},
		{name: "caller allows unresolved", strict: true, context: partial, allowUnresolved: true, wantSent: true, wantWarnings: 2},
		{name: "lenient mode sends anyway", strict: false, context: partial, wantSent: true, wantWarnings: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t, tt.strict)
			userId := uuid.New()
			id := createReminder(t, h, userId)

			res, err := h.renderer.Send(ctx, userId, id, &dto.SendTemplateRequest{
				To:              "john@example.com",
				Context:         tt.context,
				AllowUnresolved: tt.allowUnresolved,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var unresolved *UnresolvedVariablesError
				require.True(t, errors.As(err, &unresolved))
				assert.Len(t, unresolved.Warnings, 2)
				assert.Empty(t, h.mailer.sent)
				assert.NotContains(t, h.events.types(), events.TemplateSent)
				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Warnings, tt.wantWarnings)
			require.Len(t, h.mailer.sent, 1)
			assert.Equal(t, "john@example.com", h.mailer.sent[0].To)
			assert.Contains(t, h.mailer.sent[0].HTML, "Hi John")
			assert.Contains(t, h.mailer.sent[0].Text, "Hi John")
			assert.Contains(t, h.events.types(), events.TemplateSent)
		})
	}
}

func TestRenderServiceSendResolvesSubject(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	userId := uuid.New()
	id := createReminder(t, h, userId)

	_, err := h.renderer.Send(ctx, userId, id, &dto.SendTemplateRequest{
		To: "john@example.com",
		Context: map[string]string{
			"appointment.date":  "May 4",
			"patient.firstName": "John",
			"practice.name":     "Riverside",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Your visit on May 4", h.mailer.sent[0].Subject)
}

func TestRenderServiceSendMailerFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.mailer.err = errors.New("smtp down")
	userId := uuid.New()
	id := createReminder(t, h, userId)

	_, err := h.renderer.Send(ctx, userId, id, &dto.SendTemplateRequest{To: "john@example.com"})
	assert.EqualError(t, err, "smtp down")
	assert.NotContains(t, h.events.types(), events.TemplateSent)
	assert.NotEmpty(t, h.logger.byLevel("ERROR"))
}

func TestRenderServiceWithoutMailer(t *testing.T) {
	h := newHarness(t, true)
	renderer := NewRenderService(h.templates, variable.Default, nil, nil, h.logger, true)

	_, err := renderer.Send(context.Background(), uuid.New(), uuid.New(), &dto.SendTemplateRequest{To: "a@b.co"})
	assert.ErrorIs(t, err, ErrMailerUnavailable)
}
