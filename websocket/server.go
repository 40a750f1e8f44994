// Package websocket streams growth fields to browser clients. Every websocket
// connection gets its own field whose frames are sent as drawing operations.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	params "github.com/esimov/growth-field/http"
	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/protocol"
)

const (
	// writeWait is the time allowed to write a frame to the client.
	writeWait = 5 * time.Second
	// shutdownWait is the time allowed to the http server to shut down.
	shutdownWait = 5 * time.Second
)

// Server serves static files and websocket sessions.
type Server struct {
	Params params.Params
	// Config is the field configuration of every session. Its random source
	// is replaced per session.
	Config field.Config
	FPS    int
	// Width and Height are the canvas size of a session until the client resizes it.
	Width, Height float64
	// NewFlow, when set, creates the flow field of a new session.
	NewFlow func(width, height float64, seed int64) (field.Flow, error)
	Seed    int64

	upgrader websocket.Upgrader
	sessions sync.WaitGroup
	count    int64
	done     chan struct{}
	once     sync.Once
}

// NewServer creates a server for the given parameters.
func NewServer(p params.Params, cfg field.Config, fps int) *Server {
	return &Server{
		Params: p,
		Config: cfg,
		FPS:    fps,
		Width:  1280,
		Height: 720,
		Seed:   time.Now().UnixNano(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
}

// Handler returns the http handler serving the static files under the
// prefix and the websocket endpoint on /ws, logging every request.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.Params.Prefix, http.StripPrefix(s.Params.Prefix, http.FileServer(http.Dir(s.Params.Root))))
	mux.HandleFunc("/ws", s.wsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is cancelled, then closes the running
// sessions and shuts the http server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Params.Resolve(); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:    s.Params.Address,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving %s as %s on %s", s.Params.Root, s.Params.Prefix, s.Params.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.sessions.Wait()
	return err
}

// Close ends every running session. Hijacked websocket connections are not
// closed by http.Server.Shutdown.
func (s *Server) Close() {
	s.once.Do(func() { close(s.done) })
}

// wsHandler defines the websocket connection endpoint
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade the http connection to a WebSocket connection
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.Println(err)
		}
		return
	}
	s.sessions.Add(1)
	go func() {
		defer s.sessions.Done()
		s.serve(conn)
	}()
}

// newLoop creates the field of a session drawing into rec.
func (s *Server) newLoop(rec *field.Recorder) (*field.Loop, error) {
	seed := s.Seed + atomic.AddInt64(&s.count, 1)
	cfg := s.Config
	cfg.Rand = rand.New(rand.NewSource(seed))
	if s.NewFlow != nil {
		fl, err := s.NewFlow(s.Width, s.Height, seed)
		if err != nil {
			return nil, err
		}
		cfg.Flow = fl
	}
	return field.NewLoop(field.New(cfg, s.Width, s.Height), rec)
}

// serve streams frames to conn until the client goes away or the server is closed.
func (s *Server) serve(conn *websocket.Conn) {
	defer conn.Close()

	rec := field.NewRecorder()
	loop, err := s.newLoop(rec)
	if err != nil {
		log.Println(err)
		return
	}

	gone := make(chan struct{})
	go readSocket(conn, loop, gone)

	fps := s.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var start time.Time
	for {
		select {
		case <-gone:
			return
		case <-s.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"))
			return
		case now := <-ticker.C:
			if start.IsZero() {
				start = now
			}
			rec.Reset()
			loop.Frame(now.Sub(start))

			conn.SetWriteDeadline(time.Now().Add(writeWait))
			frame := protocol.Frame{Frame: loop.Stats().Frame, Ops: rec.Ops}
			if err := conn.WriteJSON(frame); err != nil {
				log.Println(err)
				return
			}
		}
	}
}

// readSocket listen for new messages being sent to the websocket and queues
// them on the session loop. gone is closed when the connection fails.
func readSocket(conn *websocket.Conn, loop *field.Loop, gone chan<- struct{}) {
	defer close(gone)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
		var m protocol.Message
		if err := json.Unmarshal(msg, &m); err != nil {
			log.Printf("invalid message: %v", err)
			continue
		}
		if err := m.Validate(); err != nil {
			log.Println(err)
			continue
		}
		if !loop.Post(func(f *field.Field) { m.Apply(f) }) {
			log.Printf("input queue full, dropping %q message", m.Type)
		}
	}
}
