package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/dispatch"
	"github.com/solo-ai/solo/internal/menu"
	"github.com/solo-ai/solo/internal/model"
)

// MsgEmptyText is returned when a surface sends no text to operate on.
const MsgEmptyText = "Please paste text or grab a selection first."

// KeyStatus describes whether a credential is configured.
type KeyStatus struct {
	Configured bool   `json:"configured"`
	Masked     string `json:"masked,omitempty"`
	Status     string `json:"status,omitempty"`
}

type setKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type menuClickRequest struct {
	SelectionText string `json:"selectionText"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "version": Version})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg model.RunMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	origin, ok := model.OriginForType(msg.Type)
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown_type", "unsupported message type "+string(msg.Type))
		return
	}

	text := strings.TrimSpace(msg.Text)
	action := model.ActionTag(msg.Action)
	if action == "" {
		action = model.ActionFreeform
	}
	inv := model.NewInvocation(origin, action, text)
	if text == "" {
		writeJSON(w, http.StatusOK, model.ErrorReply(inv, MsgEmptyText))
		return
	}

	s.dispatch(w, r, inv)
}

func (s *Server) handleMenuList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": menu.Items()})
}

func (s *Server) handleMenuClick(w http.ResponseWriter, r *http.Request) {
	var body menuClickRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}
	}

	click := menu.Click{MenuItemID: chi.URLParam(r, "itemID"), SelectionText: body.SelectionText}
	inv, ok := click.Invocation()
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown_item", "menu item not owned by Solo AI")
		return
	}

	s.dispatch(w, r, inv)
}

// dispatch runs inv on the coordinator and writes its reply. The
// completion call is detached from the request so a disconnecting client
// does not cancel it mid-flight; the late reply is then discarded.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, inv model.Invocation) {
	var ch dispatch.ReplyChannel = s.bus
	if s.mirror != nil && inv.Origin == model.OriginContextMenu {
		ch = dispatch.ReplyFunc(func(reply model.Reply) {
			s.mirror.Send(reply)
			s.bus.Send(reply)
		})
	}
	s.coord.Go(context.WithoutCancel(r.Context()), inv, ch)

	reply, err := s.bus.Wait(r.Context(), inv.ID)
	if err != nil {
		s.log.Infow("client went away before reply", "invocation", inv.ID, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleKeyStatus(w http.ResponseWriter, r *http.Request) {
	key, err := s.keys.Get(r.Context())
	if errors.Is(err, credential.ErrNotFound) {
		writeJSON(w, http.StatusOK, KeyStatus{Configured: false})
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, KeyStatus{Configured: true, Masked: credential.Mask(key)})
}

func (s *Server) handleKeySet(w http.ResponseWriter, r *http.Request) {
	var body setKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	configured, err := credential.Save(r.Context(), s.keys, body.APIKey)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !configured {
		writeJSON(w, http.StatusOK, KeyStatus{Status: "Cleared."})
		return
	}
	s.log.Infow("credential updated")
	writeJSON(w, http.StatusOK, KeyStatus{
		Configured: true,
		Masked:     credential.Mask(strings.TrimSpace(body.APIKey)),
		Status:     "API key saved.",
	})
}

func (s *Server) handleKeyClear(w http.ResponseWriter, r *http.Request) {
	if err := s.keys.Clear(r.Context()); err != nil {
		writeErr(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	s.log.Infow("credential cleared")
	writeJSON(w, http.StatusOK, KeyStatus{Status: "Cleared."})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
