package gateway

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

type session struct {
	id       string
	playerID string
	conn     *websocket.Conn
	server   *Server
	logger   anticheat.Logger
}

func newSession(server *Server, playerID string, conn *websocket.Conn) *session {
	id := uuid.NewString()

	return &session{
		id:       id,
		playerID: playerID,
		conn:     conn,
		server:   server,
		logger: server.logger.
			BindStr("session_id", id).
			BindStr("player_id", playerID),
	}
}

func (s *session) run() {
	s.server.sessionWaitGroup.Add(1)
	defer s.server.sessionWaitGroup.Done()

	defer s.conn.Close()

	guard := s.server.guard

	if verdict := guard.OnConnect(s.playerID); !verdict.Valid {
		s.logger.BindStr("reason", verdict.Reason).Info("session was rejected")

		if guard.IsBanned(s.playerID) {
			s.write(newBannedMessage(verdict.Reason))
		} else {
			s.write(newRejectedMessage("connect", verdict.Reason))
		}

		s.close(websocket.ClosePolicyViolation)

		return
	}

	defer guard.OnDisconnect(s.playerID)

	s.logger.Info("session has been started")
	defer s.logger.Info("session has been finished")

	s.conn.SetReadLimit(s.server.readLimit)
	s.conn.SetReadDeadline(time.Now().Add(s.server.pongTimeout)) //nolint: errcheck
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.server.pongTimeout))
	})

	pingDone := make(chan struct{})
	defer close(pingDone)

	go s.pingLoop(pingDone)

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := parseClientMessage(raw)
		if err != nil {
			s.logger.DebugError("malformed message", err)

			continue
		}

		s.handleMessage(msg)
	}
}

func (s *session) handleMessage(msg clientMessage) {
	guard := s.server.guard
	backend := s.server.backend

	switch msg.Type {
	case messageTypeMove:
		verdict := guard.ValidateMove(s.playerID, msg.X, msg.Y)
		if !verdict.Valid {
			s.write(newRejectedMessage(messageTypeMove, verdict.Reason))

			return
		}

		backend.ApplyMove(s.playerID, anticheat.Position{X: msg.X, Y: msg.Y})
	case messageTypeDamage:
		verdict := guard.ValidateDamage(s.playerID, msg.Damage, msg.TargetID)
		if !verdict.Valid {
			s.write(newRejectedMessage(messageTypeDamage, verdict.Reason))

			return
		}

		if verdict.Reason != "" {
			s.write(newDamageAdjustedMessage(verdict.AdjustedDamage, verdict.Reason))
		}

		backend.ApplyDamage(s.playerID, msg.TargetID, verdict.AdjustedDamage)
	case messageTypeAction:
		verdict := guard.ValidateAction(s.playerID, msg.Action)
		if !verdict.Valid {
			s.write(newRejectedMessage(messageTypeAction, verdict.Reason))

			return
		}

		backend.ApplyAction(s.playerID, msg.Action)
	case messageTypeTransaction:
		if verdict := guard.CheckReplay(s.playerID, msg.TransactionID); !verdict.Valid {
			s.write(newRejectedMessage(messageTypeTransaction, verdict.Reason))

			return
		}

		expected := backend.ExpectedTransactionValue(s.playerID, msg.Kind)

		verdict := guard.ValidateTransaction(s.playerID, msg.Kind, msg.Amount, expected)
		if !verdict.Valid {
			s.write(newRejectedMessage(messageTypeTransaction, verdict.Reason))

			return
		}

		backend.ApplyTransaction(s.playerID, msg.Kind, msg.Amount)
	}
}

func (s *session) write(msg serverMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.DebugError("cannot marshal a message", err)

		return
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.server.writeTimeout)) //nolint: errcheck

	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.logger.DebugError("cannot write a message", err)
	}
}

func (s *session) close(code int) {
	s.conn.WriteControl(websocket.CloseMessage, //nolint: errcheck
		websocket.FormatCloseMessage(code, ""),
		time.Now().Add(s.server.writeTimeout))
}

func (s *session) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(s.server.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil,
				time.Now().Add(s.server.writeTimeout))
			if err != nil {
				return
			}
		case <-done:
			return
		case <-s.server.ctx.Done():
			s.close(websocket.CloseGoingAway)
			s.conn.Close()

			return
		}
	}
}
