package handlers

import (
	"speakroots/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GetSessionLevel retrieves the preferred level key from the session.
// Returns ("", false) if none is stored or the stored value is invalid.
func GetSessionLevel(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	levelKey, ok := session.Get(config.SessionLevelKey).(string)
	if !ok || levelKey == "" {
		return "", false
	}
	return levelKey, true
}

// SetSessionLevel stores the preferred level key in the session
func SetSessionLevel(c *gin.Context, levelKey string) error {
	session := sessions.Default(c)
	session.Set(config.SessionLevelKey, levelKey)
	return session.Save()
}
