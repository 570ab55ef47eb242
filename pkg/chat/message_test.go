package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageWireShapes(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"connection end", NewConnectionEnd(), `{"message":{"Connection":"End"}}`},
		{"session end", NewSessionEnd(), `{"message":{"Session":"End"}}`},
		{"session request", NewSessionRequest(), `{"message":{"Session":"Request"}}`},
		{"session success", NewSessionSuccess(), `{"message":{"Session":"Success"}}`},
		{"session value", NewSessionValue("hello"), `{"message":{"Session":{"Value":"hello"}}}`},
		{"session value empty", NewSessionValue(""), `{"message":{"Session":{"Value":""}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msgs := []Message{
		NewConnectionEnd(),
		NewSessionEnd(),
		NewSessionRequest(),
		NewSessionSuccess(),
		NewSessionValue(""),
		NewSessionValue("the quick brown fox"),
	}
	for _, m := range msgs {
		encoded, err := json.Marshal(m)
		require.NoError(t, err)

		var decoded Message
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, m, decoded)
	}
}

func TestMessageUnmarshalRejectsUnknownTag(t *testing.T) {
	for _, body := range []string{
		`{"message":{"Session":"Bogus"}}`,
		`{"message":{"Bogus":"End"}}`,
		`{"message":{"Connection":"Bogus"}}`,
		`{"message":{}}`,
		`{"message":{"Session":"End","Connection":"End"}}`,
		`not json at all`,
		``,
	} {
		var m Message
		err := json.Unmarshal([]byte(body), &m)
		assert.Error(t, err, "body %q should fail to decode", body)
	}
}
