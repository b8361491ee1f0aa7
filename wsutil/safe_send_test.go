package wsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeSendDelivers(t *testing.T) {
	ch := make(chan []byte, 1)
	SafeSend(ch, []byte("hi"))
	assert.Equal(t, []byte("hi"), <-ch)
}

func TestSafeSendSkipsFullClosedAndNil(t *testing.T) {
	full := make(chan []byte, 1)
	full <- []byte("first")
	SafeSend(full, []byte("second"))
	assert.Equal(t, []byte("first"), <-full)

	closed := make(chan []byte, 1)
	close(closed)
	assert.NotPanics(t, func() { SafeSend(closed, []byte("x")) })
	assert.NotPanics(t, func() { SafeSend(nil, []byte("x")) })
}

func TestSendJSON(t *testing.T) {
	ch := make(chan []byte, 1)
	SendJSON(ch, map[string]string{"type": "error"})
	assert.JSONEq(t, `{"type":"error"}`, string(<-ch))
}
