package protocol

import (
	"errors"
	"testing"
)

func TestParseClientMessageTogglePlayer(t *testing.T) {
	raw := []byte(`{"type":"toggle_player","session_id":"s1","player":"Leo"}`)
	msg, err := ParseClientMessage(raw)
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}

	toggle, ok := msg.(TogglePlayer)
	if !ok {
		t.Fatalf("message type = %T, want TogglePlayer", msg)
	}
	if toggle.SessionID != "s1" || toggle.Player != "Leo" {
		t.Fatalf("unexpected toggle: %+v", toggle)
	}
}

func TestParseClientMessageOpenAdjust(t *testing.T) {
	raw := []byte(`{"type":"open_adjust","session_id":"s1","side":"B","player":"Rafa","magnitude":3}`)
	msg, err := ParseClientMessage(raw)
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}

	adjust, ok := msg.(OpenAdjust)
	if !ok {
		t.Fatalf("message type = %T, want OpenAdjust", msg)
	}
	if adjust.Side != "B" || adjust.Player != "Rafa" || adjust.Magnitude != 3 {
		t.Fatalf("unexpected adjust: %+v", adjust)
	}
}

func TestParseClientMessageRejectsUnknownType(t *testing.T) {
	_, err := ParseClientMessage([]byte(`{"type":"wat"}`))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestParseClientMessageValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"choose_side without side", `{"type":"choose_side","session_id":"s1"}`},
		{"choose_side bad side", `{"type":"choose_side","session_id":"s1","side":"C"}`},
		{"toggle_player without player", `{"type":"toggle_player","session_id":"s1"}`},
		{"open_adjust zero magnitude", `{"type":"open_adjust","session_id":"s1","side":"A","player":"Leo","magnitude":0}`},
		{"open_adjust bad side", `{"type":"open_adjust","session_id":"s1","side":"X","player":"Leo","magnitude":1}`},
		{"start_match without session", `{"type":"start_match"}`},
		{"narrator_control bad action", `{"type":"narrator_control","session_id":"s1","action":"yell"}`},
		{"narrator_control set_voice without voice", `{"type":"narrator_control","session_id":"s1","action":"set_voice"}`},
		{"user_gesture without session", `{"type":"user_gesture"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseClientMessage([]byte(tc.raw)); err == nil {
				t.Fatalf("expected validation error for %s", tc.raw)
			}
		})
	}
}

func TestParseClientMessageNarratorControl(t *testing.T) {
	raw := []byte(`{"type":"narrator_control","session_id":"s1","action":"set_voice","voice":"Court Voice Pro"}`)
	msg, err := ParseClientMessage(raw)
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}

	control, ok := msg.(NarratorControl)
	if !ok {
		t.Fatalf("message type = %T, want NarratorControl", msg)
	}
	if control.Action != NarratorSetVoice || control.Voice != "Court Voice Pro" {
		t.Fatalf("unexpected control: %+v", control)
	}
}

func TestParseClientMessageSimpleCommands(t *testing.T) {
	cases := []struct {
		raw  string
		want MessageType
	}{
		{`{"type":"reset_selection","session_id":"s1"}`, TypeResetSelection},
		{`{"type":"start_match","session_id":"s1"}`, TypeStartMatch},
		{`{"type":"toggle_timer","session_id":"s1"}`, TypeToggleTimer},
		{`{"type":"confirm_adjust","session_id":"s1","add":true}`, TypeConfirmAdjust},
		{`{"type":"cancel_adjust","session_id":"s1"}`, TypeCancelAdjust},
		{`{"type":"speak_score","session_id":"s1"}`, TypeSpeakScore},
		{`{"type":"user_gesture","session_id":"s1"}`, TypeUserGesture},
	}
	for _, tc := range cases {
		t.Run(string(tc.want), func(t *testing.T) {
			if _, err := ParseClientMessage([]byte(tc.raw)); err != nil {
				t.Fatalf("ParseClientMessage(%s) error = %v", tc.raw, err)
			}
		})
	}
}

func BenchmarkParseClientMessageTogglePlayer(b *testing.B) {
	raw := []byte(`{"type":"toggle_player","session_id":"s1","player":"Leo"}`)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		msg, err := ParseClientMessage(raw)
		if err != nil {
			b.Fatalf("ParseClientMessage() error = %v", err)
		}
		if _, ok := msg.(TogglePlayer); !ok {
			b.Fatalf("message type = %T, want TogglePlayer", msg)
		}
	}
}
