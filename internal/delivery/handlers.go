package delivery

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/report"
	"github.com/Vovarama1992/voice_calc/internal/speech"
)

const maxVoiceUpload = 20 << 20

type CalcHandler struct {
	calc     calc.Service
	listener Listener
	voice    Synthesizer
	store    AudioStore
	log      *logger.ZapLogger
}

// NewCalcHandler; store may be nil, then audio is returned inline as base64.
func NewCalcHandler(svc calc.Service, listener Listener, voice Synthesizer, store AudioStore, log *logger.ZapLogger) *CalcHandler {
	return &CalcHandler{calc: svc, listener: listener, voice: voice, store: store, log: log}
}

type calcRequest struct {
	Expression string `json:"expression"`
	Lower      string `json:"lower"`
	Upper      string `json:"upper"`
	Speak      bool   `json:"speak"`
}

type errorBody struct {
	Kind    calc.Kind `json:"kind"`
	Message string    `json:"message"`
}

type audioBody struct {
	URL         string `json:"url,omitempty"`
	Base64      string `json:"base64,omitempty"`
	ContentType string `json:"content_type"`
}

type calcResponse struct {
	RequestID string     `json:"request_id"`
	Mode      calc.Mode  `json:"mode,omitempty"`
	Lines     []string   `json:"lines"`
	Result    string     `json:"result,omitempty"`
	Speech    string     `json:"speech,omitempty"`
	Error     *errorBody `json:"error,omitempty"`
	Audio     *audioBody `json:"audio,omitempty"`
	// SpeechError is the line a terminal would show after a failed synthesis.
	SpeechError string `json:"speech_error,omitempty"`
}

// POST /calculate
// body: { "expression": "2 plus 3 x 4", "speak": true }
func (h *CalcHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.respond(w, r, h.calc.Expression(r.Context(), req.Expression), req.Speak)
}

// POST /integrate
// body: { "expression": "x**2", "lower": "0", "upper": "1" }
func (h *CalcHandler) Integrate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.respond(w, r, h.calc.Integrate(r.Context(), req.Expression, req.Lower, req.Upper), req.Speak)
}

// POST /differentiate
func (h *CalcHandler) Differentiate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.respond(w, r, h.calc.Differentiate(r.Context(), req.Expression), req.Speak)
}

// POST /trig
func (h *CalcHandler) Trig(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.respond(w, r, h.calc.Trigonometry(r.Context(), req.Expression), req.Speak)
}

// POST /voice
// multipart: audio=<file>, speak=true|false
func (h *CalcHandler) Voice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVoiceUpload)
	if err := r.ParseMultipartForm(maxVoiceUpload); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "missing audio: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read audio: "+err.Error(), http.StatusBadRequest)
		return
	}

	audio := speech.Audio{
		Data: data,
		Name: header.Filename,
		MIME: header.Header.Get("Content-Type"),
	}

	transcript, captureErr := h.listener.Listen(r.Context(), audio)
	out := h.calc.Basic(r.Context(), transcript.Text, captureErr)
	h.respond(w, r, out, r.FormValue("speak") == "true")
}

// GET /about
func (h *CalcHandler) About(w http.ResponseWriter, _ *http.Request) {
	surfaces := make([]string, 0, len(calc.Surfaces))
	for _, s := range calc.Surfaces {
		surfaces = append(surfaces, string(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    calc.AboutTitle,
		"text":     calc.AboutText,
		"surfaces": surfaces,
	})
}

func (h *CalcHandler) decode(w http.ResponseWriter, r *http.Request) (calcRequest, bool) {
	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *CalcHandler) respond(w http.ResponseWriter, r *http.Request, out calc.Outcome, speak bool) {
	resp := calcResponse{
		RequestID: uuid.NewString(),
		Mode:      out.Result.Mode,
		Lines:     out.Lines,
		Result:    out.Result.Value,
		Speech:    out.Speech,
	}
	if resp.Lines == nil {
		resp.Lines = []string{}
	}
	if out.Result.Err != nil {
		resp.Error = &errorBody{Kind: calc.KindOf(out.Result.Err), Message: out.Result.Err.Error()}
	}

	if speak && out.Speech != "" {
		audio, err := h.audio(r.Context(), resp.RequestID, out.Speech)
		if err != nil {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "speech synthesis failed", Error: err})
			resp.SpeechError = report.SpeechFailure(err)
		}
		resp.Audio = audio
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *CalcHandler) audio(ctx context.Context, owner, text string) (*audioBody, error) {
	if h.voice == nil {
		return nil, nil
	}
	data, err := h.voice.Synthesize(ctx, text)
	if err != nil || len(data) == 0 {
		return nil, err
	}

	const contentType = "audio/mpeg"
	if h.store != nil {
		url, err := h.store.SaveAudio(ctx, "http/"+owner, data, contentType)
		if err == nil {
			return &audioBody{URL: url, ContentType: contentType}, nil
		}
		h.log.Log(logger.LogEntry{Level: "warn", Message: "audio upload failed, sending inline", Error: err})
	}
	return &audioBody{Base64: base64.StdEncoding.EncodeToString(data), ContentType: contentType}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}
