package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ConnectionKind identifies the single ConnectionEvent variant.
type ConnectionKind int

// ConnectionEnd is the only ConnectionEvent: the client wishes to tear
// down the TCP connection entirely.
const ConnectionEnd ConnectionKind = iota

// SessionKind identifies which SessionEvent variant a Message carries.
type SessionKind int

const (
	// SessionEnd ends a session gracefully, or cancels a pending wait.
	SessionEnd SessionKind = iota
	// SessionRequest asks the dispatcher to pair this client into a session.
	SessionRequest
	// SessionSuccess acknowledges that a session has been entered.
	SessionSuccess
	// SessionValue carries an arbitrary UTF-8 payload between paired peers.
	SessionValue
)

// Message is a closed, tagged sum type: either a ConnectionEvent or a
// SessionEvent, never both. Use the constructors below rather than
// building a Message by hand, so the tag and payload can never disagree.
type Message struct {
	isConnection bool
	connection   ConnectionKind
	session      SessionKind
	value        string
}

// NewConnectionEnd builds the Connection::End message.
func NewConnectionEnd() Message {
	return Message{isConnection: true, connection: ConnectionEnd}
}

// NewSessionEnd builds the Session::End message.
func NewSessionEnd() Message {
	return Message{session: SessionEnd}
}

// NewSessionRequest builds the Session::Request message.
func NewSessionRequest() Message {
	return Message{session: SessionRequest}
}

// NewSessionSuccess builds the Session::Success message.
func NewSessionSuccess() Message {
	return Message{session: SessionSuccess}
}

// NewSessionValue builds a Session::Value(s) message. s may be empty.
func NewSessionValue(s string) Message {
	return Message{session: SessionValue, value: s}
}

// IsConnection reports whether this Message carries a ConnectionEvent.
func (m Message) IsConnection() bool { return m.isConnection }

// ConnectionKind returns the ConnectionEvent variant. Only meaningful when
// IsConnection reports true.
func (m Message) ConnectionKind() ConnectionKind { return m.connection }

// SessionKind returns the SessionEvent variant. Only meaningful when
// IsConnection reports false.
func (m Message) SessionKind() SessionKind { return m.session }

// Value returns the payload of a Session::Value message. Only meaningful
// when SessionKind returns SessionValue.
func (m Message) Value() string { return m.value }

func (m Message) String() string {
	if m.isConnection {
		return "Connection::End"
	}
	switch m.session {
	case SessionEnd:
		return "Session::End"
	case SessionRequest:
		return "Session::Request"
	case SessionSuccess:
		return "Session::Success"
	case SessionValue:
		return fmt.Sprintf("Session::Value(%q)", m.value)
	default:
		return "Session::<unknown>"
	}
}

// frameEnvelope is the on-the-wire shape: a single "message" field. This
// struct only exists for (de)serialization; Message itself never exposes
// its tag/payload fields for JSON encoding directly, since the wire shape
// (bare string for no-payload variants, single-key object for Value) is
// not what Go's struct-tag-based encoding produces by default.
type frameEnvelope struct {
	Message json.RawMessage `json:"message"`
}

// MarshalJSON produces the bit-exact wire shape for each variant.
func (m Message) MarshalJSON() ([]byte, error) {
	var inner []byte
	var err error
	if m.isConnection {
		inner, err = json.Marshal(map[string]string{"Connection": "End"})
	} else {
		switch m.session {
		case SessionEnd:
			inner, err = json.Marshal(map[string]string{"Session": "End"})
		case SessionRequest:
			inner, err = json.Marshal(map[string]string{"Session": "Request"})
		case SessionSuccess:
			inner, err = json.Marshal(map[string]string{"Session": "Success"})
		case SessionValue:
			inner, err = json.Marshal(map[string]map[string]string{
				"Session": {"Value": m.value},
			})
		default:
			return nil, fmt.Errorf("chat: unknown session kind %d", m.session)
		}
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(frameEnvelope{Message: inner})
}

// UnmarshalJSON accepts exactly the five wire shapes and rejects
// everything else with an error, so that an unknown or misshapen tag
// surfaces as a RecvError of kind RecvJSON to the caller.
func (m *Message) UnmarshalJSON(data []byte) error {
	var env frameEnvelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return err
	}

	// Try the bare-string top-level tags first ("Connection" or "Session"
	// each mapping to a bare-string sub-tag), then fall back to the single
	// -key object shape used only by Session::Value.
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(env.Message, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("chat: message must have exactly one tag, got %d", len(tagged))
	}

	if raw, ok := tagged["Connection"]; ok {
		var tag string
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("chat: invalid Connection tag: %w", err)
		}
		if tag != "End" {
			return fmt.Errorf("chat: unknown Connection variant %q", tag)
		}
		*m = NewConnectionEnd()
		return nil
	}

	raw, ok := tagged["Session"]
	if !ok {
		return fmt.Errorf("chat: unknown top-level tag")
	}

	// Session::End/Request/Success are bare strings; Session::Value is a
	// single-key object. Try the bare string first.
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		switch tag {
		case "End":
			*m = NewSessionEnd()
		case "Request":
			*m = NewSessionRequest()
		case "Success":
			*m = NewSessionSuccess()
		default:
			return fmt.Errorf("chat: unknown Session variant %q", tag)
		}
		return nil
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("chat: invalid Session variant: %w", err)
	}
	v, ok := obj["Value"]
	if !ok || len(obj) != 1 {
		return fmt.Errorf("chat: unknown Session object variant")
	}
	*m = NewSessionValue(v)
	return nil
}
