package pipeline

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/google"
)

// newGoogleController wires a controller to the Google client served by body.
func newGoogleController(t *testing.T, status int, body string) Controller {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	log := logger.NewWithWriter(io.Discard, "error")
	g := google.New(google.Options{
		DetectURL:    srv.URL + "/detect",
		TranslateURL: srv.URL + "/translate",
		APIKey:       "secret",
		HTTPClient:   srv.Client(),
	}, log)

	return New(provider.Set{Detector: g, Translator: g}, DefaultOptions, log)
}

func TestTranslate_BackendMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantKind error
	}{
		{
			name:     "malformed body",
			status:   http.StatusOK,
			body:     `not json`,
			wantMsg:  "Error translating text.",
			wantKind: ErrService,
		},
		{
			name:     "no translations",
			status:   http.StatusOK,
			body:     `{"data":{"translations":[]}}`,
			wantMsg:  "Error translating text.",
			wantKind: ErrService,
		},
		{
			name:     "error without envelope",
			status:   http.StatusServiceUnavailable,
			body:     `<html>unavailable</html>`,
			wantMsg:  "Error translating text.",
			wantKind: ErrService,
		},
		{
			name:     "provider message",
			status:   http.StatusForbidden,
			body:     `{"error":{"code":403,"message":"Daily Limit Exceeded"}}`,
			wantMsg:  "Daily Limit Exceeded",
			wantKind: ErrService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newGoogleController(t, tt.status, tt.body)
			prev := State{
				InputText:        "Bonjour",
				OutputText:       "Bonjour",
				DetectedLanguage: "fr",
				TargetLanguage:   "en",
			}

			st, err := ctrl.Translate(context.Background(), prev)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Translate() error = %v, want %v", err, tt.wantKind)
			}
			if st.LastError != tt.wantMsg {
				t.Errorf("LastError = %q, want %q", st.LastError, tt.wantMsg)
			}
			if st.OutputText != prev.OutputText {
				t.Errorf("OutputText = %q, want unchanged", st.OutputText)
			}
		})
	}
}

func TestSubmitText_MalformedDetection(t *testing.T) {
	ctrl := newGoogleController(t, http.StatusOK, `not json`)

	st, err := ctrl.SubmitText(context.Background(), NewState(), "Bonjour")
	if !errors.Is(err, ErrService) {
		t.Fatalf("SubmitText() error = %v, want service error", err)
	}
	if st.LastError != "Error detecting language." {
		t.Errorf("LastError = %q", st.LastError)
	}
}
