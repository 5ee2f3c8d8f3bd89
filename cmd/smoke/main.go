package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"time"

	"template-builder-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type runner struct {
	baseURL string
	token   string
	client  *http.Client
	failed  int
}

// Pretty print JSON helper
func prettyPrint(raw json.RawMessage) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func (r *runner) call(step, method, path string, body interface{}, wantStatus ...int) *envelope {
	color.Yellow("\n%s", step)

	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, r.baseURL+path, bodyReader)
	if err != nil {
		color.Red("Failed: %v", err)
		r.failed++
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		color.Red("Failed: %v", err)
		r.failed++
		return nil
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		color.Red("Failed to decode response: %v", err)
		r.failed++
		return nil
	}

	if !slices.Contains(wantStatus, resp.StatusCode) {
		color.Red("Status: %s (want %v) %s", resp.Status, wantStatus, env.Message)
		if len(env.Errors) > 0 {
			prettyPrint(env.Errors)
		}
		r.failed++
		return &env
	}
	color.Green("Status: %s", resp.Status)
	return &env
}

func field(env *envelope, name string) string {
	if env == nil {
		return ""
	}
	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return ""
	}
	s, _ := data[name].(string)
	return s
}

func main() {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		color.Red("JWT_SECRET is not set")
		os.Exit(1)
	}
	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	userId := uuid.New()
	token, err := serverutils.SignToken(secret, userId)
	if err != nil {
		color.Red("Failed to sign token: %v", err)
		os.Exit(1)
	}

	r := &runner{baseURL: baseURL, token: token, client: &http.Client{Timeout: 10 * time.Second}}
	color.Cyan("🚀 Template builder smoke run as user %s against %s\n", userId, baseURL)

	r.call("[VARIABLE] Get categories", http.MethodGet, "/variable/v1/categories", nil, http.StatusOK)

	created := r.call("[TEMPLATE] 1. Create template", http.MethodPost, "/template/v1", map[string]interface{}{
		"name":    "Smoke reminder",
		"subject": "Your visit on {{appointment.date}}",
		"blocks": []map[string]interface{}{
			{"kind": "text", "payload": map[string]interface{}{"html": "<p>Hi {{patient.firstName}},</p>"}},
		},
	}, http.StatusCreated)
	templateId := field(created, "id")
	if templateId == "" {
		color.Red("Cannot continue without a template id")
		os.Exit(1)
	}

	opened := r.call("[EDITOR] 2. Open session", http.MethodPost, "/editor/v1/sessions", map[string]interface{}{
		"template_id": templateId,
	}, http.StatusCreated)
	sessionPath := "/editor/v1/sessions/" + field(opened, "session_id")

	r.call("[EDITOR] 3. Insert button", http.MethodPost, sessionPath+"/blocks", map[string]interface{}{
		"index":   1,
		"kind":    "button",
		"payload": map[string]interface{}{"label": "Confirm", "targetUrl": "{{appointment.confirmUrl}}"},
	}, http.StatusCreated)
	r.call("[EDITOR] 4. Insert divider at top", http.MethodPost, sessionPath+"/blocks", map[string]interface{}{
		"index": 0,
		"kind":  "divider",
	}, http.StatusCreated)
	r.call("[EDITOR] 5. Save", http.MethodPost, sessionPath+"/save", nil, http.StatusOK)
	r.call("[EDITOR] 6. Close session", http.MethodDelete, sessionPath, nil, http.StatusOK)

	preview := r.call("[TEMPLATE] 7. Preview with sample data", http.MethodPost, "/template/v1/"+templateId+"/preview", map[string]interface{}{
		"use_examples": true,
	}, http.StatusOK)
	if preview != nil {
		prettyPrint(preview.Data)
	}

	// 503 when the server runs without SMTP
	r.call("[TEMPLATE] 8. Strict send refuses unresolved tokens", http.MethodPost, "/template/v1/"+templateId+"/send", map[string]interface{}{
		"to": "smoke@example.com",
	}, http.StatusUnprocessableEntity, http.StatusServiceUnavailable)

	r.call("[TEMPLATE] 9. Delete template", http.MethodDelete, "/template/v1/"+templateId, nil, http.StatusOK)

	if r.failed > 0 {
		color.Red("\n❌ %d step(s) failed", r.failed)
		os.Exit(1)
	}
	color.Green("\n✅ All steps passed")
}
