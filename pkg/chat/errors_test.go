package chat

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecvErrorUnwrapsToCause(t *testing.T) {
	err := newRecvError(RecvIO, io.EOF)
	assert.True(t, errors.Is(err, io.EOF))

	var recvErr *RecvError
	require.True(t, errors.As(err, &recvErr))
	assert.Equal(t, RecvIO, recvErr.Kind)
}

func TestSendErrorOverflowWrapsErrOverflow(t *testing.T) {
	err := newSendError(SendOverflow, ErrOverflow)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestErrorKindStrings(t *testing.T) {
	assert.Equal(t, "io", RecvIO.String())
	assert.Equal(t, "utf8", RecvUTF8.String())
	assert.Equal(t, "json", RecvJSON.String())
	assert.Equal(t, "io", SendIO.String())
	assert.Equal(t, "json", SendJSON.String())
	assert.Equal(t, "overflow", SendOverflow.String())
}
