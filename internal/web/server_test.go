package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

type stubDetector struct{ code string }

func (s stubDetector) Detect(ctx context.Context, text string) (provider.Detection, error) {
	return provider.Detection{Language: s.code, Confidence: 1}, nil
}

type stubTranslator struct {
	result string
	err    error
}

func (s stubTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return s.result, s.err
}

type stubSummarizer struct{ result string }

func (s stubSummarizer) Summarize(ctx context.Context, text string, params provider.SummaryParams) (string, error) {
	return s.result, nil
}

func newTestServer(t *testing.T, tr provider.Translator) (*httptest.Server, *http.Client) {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "error")
	ctrl := pipeline.New(provider.Set{
		Detector:   stubDetector{code: "fr"},
		Translator: tr,
		Summarizer: stubSummarizer{result: "short"},
	}, pipeline.DefaultOptions, log)

	srv, err := New(ctrl, Options{TempDir: t.TempDir()}, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, _ := cookiejar.New(nil)
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url, body string) (int, apiResponse) {
	t.Helper()

	resp, err := c.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, out
}

func TestAPI_SendThenTranslate(t *testing.T) {
	ts, c := newTestServer(t, stubTranslator{result: "Hello world"})

	status, out := postJSON(t, c, ts.URL+"/api/send", `{"text":"Bonjour le monde"}`)
	if status != http.StatusOK {
		t.Fatalf("send status = %d, error = %+v", status, out.Error)
	}
	if out.State.DetectedLanguage != "fr" || out.State.OutputText != "Bonjour le monde" {
		t.Errorf("send state = %+v", out.State)
	}

	status, out = postJSON(t, c, ts.URL+"/api/translate", "")
	if status != http.StatusOK {
		t.Fatalf("translate status = %d, error = %+v", status, out.Error)
	}
	if out.State.OutputText != "Hello world" {
		t.Errorf("OutputText = %q", out.State.OutputText)
	}
}

func TestAPI_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		tr         stubTranslator
		setup      []string
		path       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "empty text",
			path:       "/api/send",
			body:       `{"text":"   "}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
		},
		{
			name:       "translate before send",
			path:       "/api/translate",
			wantStatus: http.StatusConflict,
			wantKind:   "precondition",
		},
		{
			name:       "summarize short text",
			setup:      []string{"/api/send"},
			path:       "/api/summarize",
			wantStatus: http.StatusConflict,
			wantKind:   "precondition",
		},
		{
			name:       "unknown language",
			path:       "/api/language",
			body:       `{"code":"xx"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
		},
		{
			name:       "service failure",
			tr:         stubTranslator{err: provider.ServiceError("translate", 403, "API key not valid")},
			setup:      []string{"/api/send"},
			path:       "/api/translate",
			wantStatus: http.StatusBadGateway,
			wantKind:   "service",
		},
		{
			name:       "bad json",
			path:       "/api/send",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, c := newTestServer(t, tt.tr)
			for _, p := range tt.setup {
				postJSON(t, c, ts.URL+p, `{"text":"Bonjour le monde"}`)
			}

			status, out := postJSON(t, c, ts.URL+tt.path, tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if out.Error == nil || out.Error.Kind != tt.wantKind {
				t.Fatalf("error = %+v, want kind %s", out.Error, tt.wantKind)
			}
			if out.Error.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestAPI_SessionsAreIsolated(t *testing.T) {
	ts, a := newTestServer(t, stubTranslator{})
	postJSON(t, a, ts.URL+"/api/send", `{"text":"Bonjour"}`)

	jar, _ := cookiejar.New(nil)
	b := &http.Client{Jar: jar}

	resp, err := b.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out apiResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if out.State.InputText != "" {
		t.Errorf("second browser sees %q", out.State.InputText)
	}
}

func TestForm_SendRedirectsAndRenders(t *testing.T) {
	ts, c := newTestServer(t, stubTranslator{})

	resp, err := c.PostForm(ts.URL+"/send", url.Values{"text": {"Bonjour le monde"}})
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Bonjour le monde") {
		t.Error("page does not show the output")
	}
	if !strings.Contains(page, "Detected language: French") {
		t.Error("page does not show the detected language")
	}
}

func TestForm_EmptyInputShowsError(t *testing.T) {
	ts, c := newTestServer(t, stubTranslator{})

	resp, err := c.PostForm(ts.URL+"/send", url.Values{"text": {""}})
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Please enter some text.") {
		t.Error("page does not show the validation error")
	}
}

func TestExport(t *testing.T) {
	ts, c := newTestServer(t, stubTranslator{})

	resp, err := c.Get(ts.URL + "/export.docx")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("empty export status = %d, want 409", resp.StatusCode)
	}

	postJSON(t, c, ts.URL+"/api/send", `{"text":"Bonjour le monde"}`)

	resp, err = c.Get(ts.URL + "/export.docx")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "lingua-flow.docx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) < 4 || string(body[:2]) != "PK" {
		t.Error("export is not a zip container")
	}
}

func TestLanguagesAndHealth(t *testing.T) {
	ts, c := newTestServer(t, stubTranslator{})

	resp, err := c.Get(ts.URL + "/api/languages")
	if err != nil {
		t.Fatal(err)
	}
	var langs []struct{ Code, Label string }
	json.NewDecoder(resp.Body).Decode(&langs)
	resp.Body.Close()
	if len(langs) != 6 {
		t.Errorf("got %d languages, want 6", len(langs))
	}

	resp, err = c.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
}

type heldTranslator struct {
	started chan struct{}
	release chan struct{}
}

func (h *heldTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	close(h.started)
	select {
	case <-h.release:
		return "Hello world", nil
	case <-ctx.Done():
		return "", provider.TransportError("translate", ctx.Err())
	}
}

func TestForm_BusyRejectionIsShown(t *testing.T) {
	tr := &heldTranslator{started: make(chan struct{}), release: make(chan struct{})}
	ts, c := newTestServer(t, tr)

	postJSON(t, c, ts.URL+"/api/send", `{"text":"Bonjour le monde"}`)

	first := make(chan int, 1)
	go func() {
		resp, err := c.Post(ts.URL+"/api/translate", "application/json", nil)
		if err != nil {
			first <- 0
			return
		}
		resp.Body.Close()
		first <- resp.StatusCode
	}()
	<-tr.started

	resp, err := c.PostForm(ts.URL+"/translate", url.Values{})
	if err != nil {
		close(tr.release)
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	close(tr.release)

	if !strings.Contains(string(body), "action already in progress") {
		t.Error("page does not show the busy rejection")
	}
	if got := resp.Request.URL.Query().Get("busy"); got != "1" {
		t.Errorf("redirected to %s, want busy flag", resp.Request.URL)
	}
	if status := <-first; status != http.StatusOK {
		t.Errorf("first translate status = %d", status)
	}

	// The flag is one-off: a plain reload shows the committed state.
	resp, err = c.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ = io.ReadAll(resp.Body)
	if strings.Contains(string(body), "action already in progress") {
		t.Error("busy notice persisted after reload")
	}
}
