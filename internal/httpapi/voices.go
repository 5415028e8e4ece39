package httpapi

import (
	"net/http"
	"sort"
	"strings"
)

type voiceSummary struct {
	Name     string `json:"name"`
	Lang     string `json:"lang"`
	Default  bool   `json:"default,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

type listVoicesResponse struct {
	SelectedVoice string         `json:"selected_voice"`
	Voices        []voiceSummary `json:"voices"`
}

func (s *Server) handleListVoices(w http.ResponseWriter, _ *http.Request) {
	if s.narrator == nil {
		respondJSON(w, http.StatusOK, listVoicesResponse{Voices: []voiceSummary{}})
		return
	}

	selectedName := ""
	if sel := s.narrator.SelectedVoice(); sel != nil {
		selectedName = sel.Name
	}

	voices := s.narrator.VoiceNames()
	out := make([]voiceSummary, 0, len(voices))
	for _, v := range voices {
		out = append(out, voiceSummary{
			Name:     v.Name,
			Lang:     v.Lang,
			Default:  v.Default,
			Selected: v.Name == selectedName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	respondJSON(w, http.StatusOK, listVoicesResponse{
		SelectedVoice: selectedName,
		Voices:        out,
	})
}

type setVoiceRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSetVoice(w http.ResponseWriter, r *http.Request) {
	if s.narrator == nil {
		respondError(w, http.StatusNotImplemented, "narrator_unavailable", "narration is not configured")
		return
	}

	var req setVoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	s.narrator.SetPreferredVoiceName(req.Name)
	selected := ""
	if sel := s.narrator.SelectedVoice(); sel != nil {
		selected = sel.Name
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"requested": req.Name,
		"selected":  selected,
	})
}
