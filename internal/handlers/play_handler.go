package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"speakroots/internal/config"
	"speakroots/internal/observability"
	"speakroots/internal/services"
	contextutils "speakroots/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Play message types
const (
	PlayMessageSession  = "session"
	PlayMessageQuestion = "question"
	PlayMessageAnswer   = "answer"
	PlayMessageResult   = "result"
	PlayMessageError    = "error"
)

// maximum size of a client message
const maxPlayMessageSize = 1024

// PlayMessage is the envelope for every frame exchanged during play
type PlayMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PlaySessionInfo is the payload of the opening session frame
type PlaySessionInfo struct {
	ID       string `json:"id"`
	LevelKey string `json:"level_key"`
	Date     string `json:"date"`
	Total    int    `json:"total"`
}

// PlayAnswer is the payload of an answer frame
type PlayAnswer struct {
	Answer string `json:"answer"`
}

// PlayHandler runs daily quizzes one question at a time over a websocket
type PlayHandler struct {
	plays    *services.PlaySessionManager
	logger   *observability.Logger
	upgrader websocket.Upgrader
}

// NewPlayHandler creates a play handler. Origins are checked against the CORS origins;
// an empty list or "*" allows any origin.
func NewPlayHandler(plays *services.PlaySessionManager, cfg *config.Config, logger *observability.Logger) *PlayHandler {
	origins := make(map[string]bool, len(cfg.Server.CORSOrigins))
	for _, o := range cfg.Server.CORSOrigins {
		origins[o] = true
	}
	return &PlayHandler{
		plays:  plays,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || origins["*"] || origins[origin]
			},
		},
	}
}

// Play handles GET /v1/play/:level
func (h *PlayHandler) Play(c *gin.Context) {
	levelKey := c.Param("level")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "play",
		observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, nil)

	count, ok := intQuery(c, "count", 0)
	if !ok {
		return
	}

	// Start before upgrading so bad input still gets a plain HTTP error
	session, err := h.plays.Start(ctx, levelKey, count)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	defer h.plays.End(session.ID)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn(ctx, "Websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(maxPlayMessageSize)

	snapshot, err := h.plays.Get(session.ID)
	if err != nil {
		return
	}
	info := PlaySessionInfo{
		ID:       snapshot.ID,
		LevelKey: snapshot.Quiz.LevelKey,
		Date:     snapshot.Quiz.Date,
		Total:    len(snapshot.Quiz.Questions),
	}
	if err := writePlayMessage(conn, PlayMessageSession, info); err != nil {
		return
	}
	if snapshot.Finished {
		_ = writePlayMessage(conn, PlayMessageResult, services.PlayStep{Finished: true, Score: snapshot.Score})
		closePlay(conn)
		return
	}
	if question, ok := snapshot.Current(); ok {
		if err := writePlayMessage(conn, PlayMessageQuestion, question); err != nil {
			return
		}
	}

	for {
		if err := conn.SetReadDeadline(time.Now().Add(config.PlayReadTimeout)); err != nil {
			return
		}
		var msg PlayMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn(ctx, "Play connection dropped", map[string]interface{}{
					"session_id": session.ID,
					"error":      err.Error(),
				})
			}
			return
		}

		if msg.Type != PlayMessageAnswer {
			if err := writePlayError(conn, contextutils.InvalidInputf("unexpected message type %q", msg.Type)); err != nil {
				return
			}
			continue
		}

		var answer PlayAnswer
		if err := json.Unmarshal(msg.Payload, &answer); err != nil {
			if err := writePlayError(conn, contextutils.InvalidInputf("malformed answer payload")); err != nil {
				return
			}
			continue
		}

		step, err := h.plays.Answer(ctx, session.ID, answer.Answer)
		if err != nil {
			if err := writePlayError(conn, err); err != nil {
				return
			}
			continue
		}
		if err := writePlayMessage(conn, PlayMessageResult, step); err != nil {
			return
		}
		if step.Finished {
			closePlay(conn)
			return
		}
	}
}

func writePlayMessage(conn *websocket.Conn, msgType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(config.PlayWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(PlayMessage{Type: msgType, Payload: data})
}

func writePlayError(conn *websocket.Conn, err error) error {
	var appErr *contextutils.AppError
	if !errors.As(err, &appErr) {
		appErr = contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInternalError, contextutils.SeverityError,
			"internal error", "", err)
	}
	return writePlayMessage(conn, PlayMessageError, appErr.ToJSON())
}

func closePlay(conn *websocket.Conn) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quiz finished"),
		time.Now().Add(config.PlayWriteTimeout))
}
