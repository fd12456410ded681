package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/service"
)

const maxContactBodyBytes = 100 << 10

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
// name, email and message are required; presence is the only check.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, model.RelayResult{Message: model.RelayMessageInvalidBody})
		return
	}

	sub := model.ContactSubmission{
		Name:    fieldText(raw["name"]),
		Email:   fieldText(raw["email"]),
		Message: fieldText(raw["message"]),
	}

	err := h.contactService.Submit(r.Context(), sub)
	switch {
	case errors.Is(err, service.ErrFieldsRequired):
		writeJSON(w, http.StatusBadRequest, model.RelayResult{Message: model.RelayMessageFieldsRequired})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, model.RelayResult{Message: model.RelayMessageSendFailed})
	default:
		writeJSON(w, http.StatusOK, model.RelayResult{Success: true, Message: model.RelayMessageSent})
	}
}

// fieldText converts a JSON value to text. Falsy values (absent, null, "",
// 0, false) become "" and therefore count as missing.
func fieldText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	}
}
