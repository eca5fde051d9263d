package websocket

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *Client) {
	t.Helper()
	h := NewHub(nil, logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "hub.log")))
	c := &Client{Hub: h, Id: "c1", Send: make(chan []byte, 4)}
	h.clients[c] = true
	return h, c
}

func TestBroadcastTagsOrigin(t *testing.T) {
	h, c := newTestHub(t)

	h.Broadcast(events.NewImportEvent(events.ImportStarted, "job-1", "alice"))

	var payload []byte
	select {
	case payload = <-c.Send:
	default:
		t.Fatal("client received nothing")
	}

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &env))
	assert.Equal(t, events.ImportStarted, env["type"])
	assert.Equal(t, h.instanceId, env["origin"])
}

func TestClusterPayloadSkipsOwnEcho(t *testing.T) {
	h, c := newTestHub(t)

	own, err := json.Marshal(map[string]string{"origin": h.instanceId, "type": "IMPORT_STARTED"})
	require.NoError(t, err)
	h.handleClusterPayload(own)

	select {
	case <-c.Send:
		t.Fatal("own cluster echo was delivered locally")
	default:
	}

	foreign, err := json.Marshal(map[string]string{"origin": "another-instance", "type": "IMPORT_STARTED"})
	require.NoError(t, err)
	h.handleClusterPayload(foreign)

	select {
	case payload := <-c.Send:
		assert.Equal(t, foreign, payload)
	default:
		t.Fatal("foreign cluster event was not delivered")
	}
}
