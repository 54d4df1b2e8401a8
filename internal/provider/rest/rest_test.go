package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req)
}

func respond(status int, body string) roundTrip {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	}
}

func TestPostJSON_Success(t *testing.T) {
	client := &Client{
		Header: http.Header{"Authorization": []string{"Bearer tok"}},
		HTTPClient: &http.Client{Transport: roundTrip(func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", req.Method)
			}
			if got := req.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("Authorization = %q", got)
			}
			if got := req.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}
			body, _ := io.ReadAll(req.Body)
			if string(body) != `{"q":["hi"]}` {
				t.Errorf("body = %s", body)
			}
			return respond(200, `{"ok":true}`)(req)
		})},
	}

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.PostJSON(context.Background(), "test", "https://api.test", map[string][]string{"q": {"hi"}}, &out); err != nil {
		t.Fatalf("PostJSON() error = %v", err)
	}
	if !out.OK {
		t.Error("response not decoded")
	}
}

func TestPostJSON_Failures(t *testing.T) {
	tests := []struct {
		name          string
		transport     roundTrip
		wantStatus    int
		wantMessage   string
		wantTransport bool
	}{
		{
			name:        "error envelope",
			transport:   respond(400, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`),
			wantStatus:  400,
			wantMessage: "API key not valid. Please pass a valid API key.",
		},
		{
			name:        "non-json error body",
			transport:   respond(503, `<html>unavailable</html>`),
			wantStatus:  503,
			wantMessage: "",
		},
		{
			name:        "malformed success body",
			transport:   respond(200, `not json`),
			wantStatus:  200,
			wantMessage: "",
		},
		{
			name: "network failure",
			transport: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantTransport: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{HTTPClient: &http.Client{Transport: tt.transport}}

			var out map[string]interface{}
			err := client.PostJSON(context.Background(), "op", "https://api.test", struct{}{}, &out)

			pe, ok := provider.AsError(err)
			if !ok {
				t.Fatalf("error = %v, want *provider.Error", err)
			}
			if pe.Transport() != tt.wantTransport {
				t.Errorf("Transport() = %v, want %v", pe.Transport(), tt.wantTransport)
			}
			if !tt.wantTransport {
				if pe.Status != tt.wantStatus {
					t.Errorf("Status = %d, want %d", pe.Status, tt.wantStatus)
				}
				if pe.Message != tt.wantMessage {
					t.Errorf("Message = %q, want %q", pe.Message, tt.wantMessage)
				}
			}
		})
	}
}
