package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/panjf2000/ants/v2"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/banlist"
)

// Server terminates player websocket connections and runs the guard in
// front of the game backend.
type Server struct {
	ctx              context.Context
	ctxCancel        context.CancelFunc
	sessionWaitGroup sync.WaitGroup

	httpServer *http.Server
	workerPool *ants.PoolWithFunc
	upgrader   websocket.Upgrader

	guard    *anticheat.Guard
	backend  Backend
	firewall *banlist.Firewall
	logger   anticheat.Logger

	readLimit    int64
	writeTimeout time.Duration
	pingPeriod   time.Duration
	pongTimeout  time.Duration
}

// Serve starts the gateway on a given listener.
func (s *Server) Serve(listener net.Listener) error {
	return s.httpServer.Serve(listener) //nolint: wrapcheck
}

// Shutdown 'gracefully' shutdowns all sessions. Please remember that it
// does not close an underlying listener.
func (s *Server) Shutdown() {
	s.ctxCancel()
	s.httpServer.Shutdown(context.Background()) //nolint: errcheck
	s.sessionWaitGroup.Wait()
	s.workerPool.Release()
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if ip := remoteIP(r); s.firewall != nil && s.firewall.Contains(ip) {
		s.logger.BindStr("ip", hashIP(ip)).Info("ip was rejected by firewall")
		http.Error(w, "forbidden", http.StatusForbidden)

		return
	}

	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "playerId is required", http.StatusBadRequest)

		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.InfoError("cannot upgrade a connection", err)

		return
	}

	sess := newSession(s, playerID, conn)

	err = s.workerPool.Invoke(sess)

	switch {
	case err == nil:
	case errors.Is(err, ants.ErrPoolClosed):
		conn.Close()
	case errors.Is(err, ants.ErrPoolOverload):
		sess.logger.Info("session was concurrency limited")
		conn.WriteControl(websocket.CloseMessage, //nolint: errcheck
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ""),
			time.Now().Add(s.writeTimeout))
		conn.Close()
	}
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return net.ParseIP(host)
}

// hashIP hashes a client address before it hits the logs. Truncated
// SHA-256 is enough to correlate records without being reversible.
func hashIP(ip net.IP) string {
	h := sha256.Sum256(ip)

	return hex.EncodeToString(h[:6])
}

// NewServer assembles a gateway server on given options.
func NewServer(opts ServerOpts) (*Server, error) {
	if err := opts.valid(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	srv := &Server{
		ctx:       ctx,
		ctxCancel: cancel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		guard:        opts.Guard,
		backend:      opts.Backend,
		firewall:     opts.Firewall,
		logger:       opts.getLogger("gateway"),
		readLimit:    opts.getReadLimit(),
		writeTimeout: opts.getWriteTimeout(),
		pingPeriod:   opts.getPingPeriod(),
		pongTimeout:  opts.getPongTimeout(),
	}

	pool, err := ants.NewPoolWithFunc(opts.getConcurrency(),
		func(arg interface{}) {
			arg.(*session).run() //nolint: forcetypeassert
		},
		ants.WithLogger(opts.getLogger("ants")),
		ants.WithNonblocking(true))
	if err != nil {
		cancel()

		return nil, fmt.Errorf("cannot create worker pool: %w", err)
	}

	srv.workerPool = pool

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleSession)
	registerAdmin(mux, srv)

	srv.httpServer = &http.Server{
		Handler: mux,
	}

	return srv, nil
}
