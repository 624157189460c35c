package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/example/calbook/internal/domain/booking"
)

const (
	sessionName   = "calbook_session"
	sessionCtxKey = "calbook.session"
)

// SessionManager keeps a caller's session id in a signed cookie so one
// conversation's tool calls share log correlation.
type SessionManager struct{ sc *securecookie.SecureCookie }

// NewSessionManager falls back to random keys when none are configured;
// sessions then do not survive a restart.
func NewSessionManager(hashKey, blockKey []byte) *SessionManager {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	return &SessionManager{sc: securecookie.New(hashKey, blockKey)}
}

func (s *SessionManager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionName)
	if err != nil {
		return "", false
	}
	value := map[string]string{}
	if err := s.sc.Decode(sessionName, c.Value, &value); err != nil {
		return "", false
	}
	id := value["sid"]
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (s *SessionManager) setSessionID(w http.ResponseWriter, id string) error {
	encoded, err := s.sc.Encode(sessionName, map[string]string{"sid": id})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name: sessionName, Value: encoded, Path: "/",
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware attaches a booking.Session to every request, issuing a new
// cookie when the caller has none or it does not verify.
func (s *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.sessionID(c.Request)
		if !ok {
			id = uuid.NewString()
			if err := s.setSessionID(c.Writer, id); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
		}
		c.Set(sessionCtxKey, booking.Session{ID: id})
		c.Next()
	}
}

func sessionFrom(c *gin.Context) booking.Session {
	if v, ok := c.Get(sessionCtxKey); ok {
		if s, ok := v.(booking.Session); ok {
			return s
		}
	}
	return booking.Session{}
}
