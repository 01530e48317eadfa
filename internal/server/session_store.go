package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/reserfast/reserfast-api/internal/config"
)

// NewSessionStore builds the session backend selected by SESSION_STORE.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
