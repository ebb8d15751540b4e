package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	tr "github.com/Vovarama1992/voice_calc/internal/textrules"
)

type TextRuleHandler struct {
	repo tr.Repo
	log  *logger.ZapLogger
}

func NewTextRuleHandler(repo tr.Repo, log *logger.ZapLogger) *TextRuleHandler {
	return &TextRuleHandler{repo: repo, log: log}
}

type ruleBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *TextRuleHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, tr.ErrBadLetter) || errors.Is(err, tr.ErrBadWord) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Log(logger.LogEntry{Level: "error", Message: "text rules storage", Error: err})
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func readRule(w http.ResponseWriter, r *http.Request) (ruleBody, bool) {
	var body ruleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return body, false
	}
	return body, true
}

//
// ----------------------
//   LETTER RULES
// ----------------------
//

// GET /text-rules/letters
func (h *TextRuleHandler) ListLetterRules(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.ListLetterRules(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if out == nil {
		out = []tr.LetterRule{}
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /text-rules/letters
// body: { "from": "×", "to": "x" }
func (h *TextRuleHandler) AddLetterRule(w http.ResponseWriter, r *http.Request) {
	body, ok := readRule(w, r)
	if !ok {
		return
	}
	if err := h.repo.AddLetterRule(r.Context(), body.From, body.To); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /text-rules/letters
// body: { "from": "×" }
func (h *TextRuleHandler) DeleteLetterRule(w http.ResponseWriter, r *http.Request) {
	body, ok := readRule(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteLetterRule(r.Context(), body.From); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//
// ----------------------
//   WORD RULES
// ----------------------
//

// GET /text-rules/words
func (h *TextRuleHandler) ListWordRules(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.ListWordRules(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if out == nil {
		out = []tr.WordRule{}
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /text-rules/words
// body: { "from": "to the power", "to": "cap" }
func (h *TextRuleHandler) AddWordRule(w http.ResponseWriter, r *http.Request) {
	body, ok := readRule(w, r)
	if !ok {
		return
	}
	if err := h.repo.AddWordRule(r.Context(), body.From, body.To); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /text-rules/words
// body: { "from": "to the power" }
func (h *TextRuleHandler) DeleteWordRule(w http.ResponseWriter, r *http.Request) {
	body, ok := readRule(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteWordRule(r.Context(), body.From); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
