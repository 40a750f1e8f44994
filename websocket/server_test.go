package websocket

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	params "github.com/esimov/growth-field/http"
	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/protocol"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "app.js"), []byte("growth"), 0644); err != nil {
		t.Fatal(err)
	}
	p := params.DefaultParams()
	p.Root = root

	s := NewServer(p, field.DefaultConfig(), 100)
	s.Width, s.Height = 400, 200
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) protocol.Frame {
	var f protocol.Frame
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestStaticFiles(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/app.js")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "growth" {
		t.Errorf("GET /app.js = %d %q", resp.StatusCode, body)
	}
}

func TestStreamFrames(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	first := readFrame(t, conn)
	second := readFrame(t, conn)
	if second.Frame <= first.Frame {
		t.Errorf("frames %d then %d, want increasing frame numbers", first.Frame, second.Frame)
	}
	if len(first.Ops) == 0 || first.Ops[0].Kind != field.OpFillStyle {
		t.Fatalf("first frame starts with %+v, want the trail fill style", first.Ops)
	}
	trail := first.Ops[1]
	if trail.Kind != field.OpFillRect || trail.Args[2] != 400 || trail.Args[3] != 200 {
		t.Errorf("trail = %+v, want a 400x200 rectangle", trail)
	}
}

func TestStreamResize(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	if err := conn.WriteJSON(protocol.Message{Type: protocol.Pointer, X: 0.9, Y: 0.1}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(protocol.Message{Type: protocol.Resize, Width: 300, Height: 150}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		f := readFrame(t, conn)
		if trail := f.Ops[1]; trail.Args[2] == 300 && trail.Args[3] == 150 {
			return
		}
	}
	t.Error("the field was not resized")
}

func TestStreamIgnoresOutOfCanvasPointer(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"pointer","x":-1e308,"y":0.5}`)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		f := readFrame(t, conn)
		for _, op := range f.Ops {
			for _, a := range op.Args {
				if math.IsNaN(a) || math.IsInf(a, 0) {
					t.Fatalf("frame %d: %s has a non finite argument", f.Frame, op.Kind)
				}
			}
		}
	}
}

func TestCloseEndsSessions(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	s.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
				t.Errorf("err = %v, want a going away close frame", err)
			}
			return
		}
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	p := params.DefaultParams()
	p.Address = "127.0.0.1:0"
	p.Root = t.TempDir()
	s := NewServer(p, field.DefaultConfig(), 30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ListenAndServe(ctx); err != nil {
		t.Errorf("ListenAndServe = %v, want nil", err)
	}
}
