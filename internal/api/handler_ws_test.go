package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aus-site-backend/internal/realtime"
	"aus-site-backend/internal/reservation"
)

type wsMessage struct {
	Type    realtime.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServeWebSocket_PushesSessionChanges(t *testing.T) {
	f := newFixture(t)
	server := httptest.NewServer(f.router)
	defer server.Close()

	// Obtain a session cookie first.
	resp, err := http.Get(server.URL + "/api/state")
	require.NoError(t, err)
	resp.Body.Close()
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "aus_session" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)

	header := http.Header{}
	header.Add("Cookie", cookie.String())
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/ws", header)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, realtime.TypeAppStateChanged, msg.Type)
	var st realtime.AppStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &st))
	assert.Equal(t, "en", st.Language)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/state/language/toggle", nil)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	msg = readMessage(t, conn)
	assert.Equal(t, realtime.TypeAppStateChanged, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Payload, &st))
	assert.Equal(t, "fr", st.Language)

	req, _ = http.NewRequest(http.MethodPut, server.URL+"/api/reservation/tab", strings.NewReader(`{"tab":"my-bookings"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	msg = readMessage(t, conn)
	assert.Equal(t, realtime.TypeReservationChanged, msg.Type)
	var view reservation.View
	require.NoError(t, json.Unmarshal(msg.Payload, &view))
	assert.Equal(t, reservation.TabMyBookings, view.ActiveTab)
	assert.Equal(t, reservation.FormView{Date: "2026-10-15", DateLabel: "jeudi 15 octobre 2026"}, view.Form)
	assert.Equal(t, "2026-10-15", view.MinDate)
}
