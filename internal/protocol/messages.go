package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/courtsideapp/courtside/internal/match"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeChooseSide      MessageType = "choose_side"
	TypeTogglePlayer    MessageType = "toggle_player"
	TypeResetSelection  MessageType = "reset_selection"
	TypeStartMatch      MessageType = "start_match"
	TypeToggleTimer     MessageType = "toggle_timer"
	TypeOpenAdjust      MessageType = "open_adjust"
	TypeConfirmAdjust   MessageType = "confirm_adjust"
	TypeCancelAdjust    MessageType = "cancel_adjust"
	TypeSpeakScore      MessageType = "speak_score"
	TypeNarratorControl MessageType = "narrator_control"
	TypeUserGesture     MessageType = "user_gesture"

	TypeMatchState    MessageType = "match_state"
	TypeScoreEvent    MessageType = "score_event"
	TypeTimerTick     MessageType = "timer_tick"
	TypeMatchFinished MessageType = "match_finished"
	TypeSystemEvent   MessageType = "system_event"
	TypeErrorEvent    MessageType = "error_event"
)

// Narrator control actions.
const (
	NarratorEnable   = "enable"
	NarratorDisable  = "disable"
	NarratorStop     = "stop"
	NarratorSetVoice = "set_voice"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

type ChooseSide struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Side      string      `json:"side"`
}

type TogglePlayer struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Player    string      `json:"player"`
}

type ResetSelection struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type StartMatch struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type ToggleTimer struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type OpenAdjust struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Side      string      `json:"side"`
	Player    string      `json:"player"`
	Magnitude int         `json:"magnitude"`
}

type ConfirmAdjust struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Add       bool        `json:"add"`
}

type CancelAdjust struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type SpeakScore struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type NarratorControl struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Action    string      `json:"action"`
	Voice     string      `json:"voice,omitempty"`
}

type UserGesture struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
}

type MatchState struct {
	Type      MessageType    `json:"type"`
	SessionID string         `json:"session_id"`
	State     match.Snapshot `json:"state"`
}

type ScoreEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Scorer    string      `json:"scorer"`
	Side      string      `json:"side"`
	Delta     int         `json:"delta"`
	ScoreA    int         `json:"score_a"`
	ScoreB    int         `json:"score_b"`
}

type TimerTick struct {
	Type        MessageType `json:"type"`
	SessionID   string      `json:"session_id"`
	SecondsLeft int         `json:"seconds_left"`
}

type MatchFinished struct {
	Type      MessageType         `json:"type"`
	SessionID string              `json:"session_id"`
	Winner    string              `json:"winner"`
	ScoreA    int                 `json:"score_a"`
	ScoreB    int                 `json:"score_b"`
	MVP       string              `json:"mvp,omitempty"`
	Badges    map[string][]string `json:"badges,omitempty"`
}

type SystemEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail,omitempty"`
}

type ErrorEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Source    string      `json:"source"`
	Retryable bool        `json:"retryable"`
	Detail    string      `json:"detail"`
}

func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeChooseSide:
		var msg ChooseSide
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || (msg.Side != "A" && msg.Side != "B") {
			return nil, errors.New("invalid choose_side")
		}
		return msg, nil
	case TypeTogglePlayer:
		var msg TogglePlayer
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.Player == "" {
			return nil, errors.New("invalid toggle_player")
		}
		return msg, nil
	case TypeResetSelection:
		var msg ResetSelection
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid reset_selection")
		}
		return msg, nil
	case TypeStartMatch:
		var msg StartMatch
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid start_match")
		}
		return msg, nil
	case TypeToggleTimer:
		var msg ToggleTimer
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid toggle_timer")
		}
		return msg, nil
	case TypeOpenAdjust:
		var msg OpenAdjust
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.Player == "" || msg.Magnitude <= 0 {
			return nil, errors.New("invalid open_adjust")
		}
		if msg.Side != "A" && msg.Side != "B" {
			return nil, errors.New("invalid open_adjust")
		}
		return msg, nil
	case TypeConfirmAdjust:
		var msg ConfirmAdjust
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid confirm_adjust")
		}
		return msg, nil
	case TypeCancelAdjust:
		var msg CancelAdjust
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid cancel_adjust")
		}
		return msg, nil
	case TypeSpeakScore:
		var msg SpeakScore
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid speak_score")
		}
		return msg, nil
	case TypeNarratorControl:
		var msg NarratorControl
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid narrator_control")
		}
		switch msg.Action {
		case NarratorEnable, NarratorDisable, NarratorStop:
		case NarratorSetVoice:
			if msg.Voice == "" {
				return nil, errors.New("invalid narrator_control")
			}
		default:
			return nil, errors.New("invalid narrator_control")
		}
		return msg, nil
	case TypeUserGesture:
		var msg UserGesture
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid user_gesture")
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, env.Type)
	}
}
