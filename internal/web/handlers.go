package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/lingua-flow/internal/export"
	"github.com/nguyentantai21042004/lingua-flow/internal/language"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

type pageData struct {
	State         pipeline.State
	Languages     []language.Language
	DetectedLabel string
	// Notice is a one-off message for a rejection that left state unchanged.
	Notice string
}

// busyParam marks the redirect after a busy rejection.
const busyParam = "busy"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r).State()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		State:         st,
		Languages:     s.ctrl.Languages(),
		DetectedLabel: language.Label(st.DetectedLanguage),
	}
	if r.URL.Query().Has(busyParam) {
		data.Notice = pipeline.MsgBusy
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error(r.Context(), "Render page: %v", err)
	}
}

func (s *Server) handleSendForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	_, err := sess.Submit(r.Context(), r.FormValue("text"))
	redirectHome(w, r, err)
}

func (s *Server) handleTranslateForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	_, err := sess.Translate(r.Context())
	redirectHome(w, r, err)
}

// handleSummarizeForm shares the form with Send, so it ignores the textarea
// and summarizes the current output.
func (s *Server) handleSummarizeForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	_, err := sess.Summarize(r.Context())
	redirectHome(w, r, err)
}

func (s *Server) handleLanguageForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	_, err := sess.SelectTargetLanguage(r.Context(), r.FormValue("code"))
	redirectHome(w, r, err)
}

// redirectHome sends the browser back to the page. Committed errors show up
// through State.LastError; a busy rejection is flagged in the URL.
func redirectHome(w http.ResponseWriter, r *http.Request, err error) {
	target := "/"
	if errors.Is(err, pipeline.ErrBusy) {
		target = "/?" + busyParam + "=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r).State()
	if st.OutputText == "" {
		http.Error(w, "nothing to export", http.StatusConflict)
		return
	}

	dir, err := os.MkdirTemp(s.tempDir, "export-*")
	if err != nil {
		s.logger.Error(r.Context(), "Create export dir: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "lingua-flow.docx")
	if err := export.WriteDocx(exportDocument(st), path); err != nil {
		s.logger.Error(r.Context(), "Write docx: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="lingua-flow.docx"`)
	http.ServeFile(w, r, path)
}

func exportDocument(st pipeline.State) export.Document {
	var meta []string
	if st.DetectedLanguage != "" {
		meta = append(meta, "Detected language: "+language.Label(st.DetectedLanguage))
	}
	meta = append(meta, "Target language: "+language.Label(st.TargetLanguage))

	return export.Document{
		Title: "lingua-flow output",
		Meta:  meta,
		Body:  st.OutputText,
	}
}

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type apiResponse struct {
	State pipeline.State `json:"state"`
	Error *apiError      `json:"error,omitempty"`
}

type sendRequest struct {
	Text string `json:"text"`
}

type languageRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleAPIState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{State: s.session(w, r).State()})
}

func (s *Server) handleAPILanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Languages())
}

func (s *Server) handleAPISend(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			State: sess.State(),
			Error: &apiError{Kind: pipeline.KindValidation.String(), Message: "invalid JSON body"},
		})
		return
	}

	st, err := sess.Submit(r.Context(), req.Text)
	s.writeResult(w, st, err)
}

func (s *Server) handleAPITranslate(w http.ResponseWriter, r *http.Request) {
	st, err := s.session(w, r).Translate(r.Context())
	s.writeResult(w, st, err)
}

func (s *Server) handleAPISummarize(w http.ResponseWriter, r *http.Request) {
	st, err := s.session(w, r).Summarize(r.Context())
	s.writeResult(w, st, err)
}

func (s *Server) handleAPILanguage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			State: sess.State(),
			Error: &apiError{Kind: pipeline.KindValidation.String(), Message: "invalid JSON body"},
		})
		return
	}

	st, err := sess.SelectTargetLanguage(r.Context(), req.Code)
	s.writeResult(w, st, err)
}

func (s *Server) writeResult(w http.ResponseWriter, st pipeline.State, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, apiResponse{State: st})
		return
	}

	kind := pipeline.KindOf(err)
	writeJSON(w, statusFor(kind), apiResponse{
		State: st,
		Error: &apiError{Kind: kind.String(), Message: st.LastError},
	})
}

func statusFor(kind pipeline.Kind) int {
	switch kind {
	case pipeline.KindValidation:
		return http.StatusBadRequest
	case pipeline.KindPrecondition, pipeline.KindNoOp, pipeline.KindBusy:
		return http.StatusConflict
	case pipeline.KindService:
		return http.StatusBadGateway
	case pipeline.KindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
