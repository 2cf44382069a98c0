package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/adapters/signal"
	"github.com/dkeye/Parley/internal/adapters/turn"
	"github.com/dkeye/Parley/internal/app"
	"github.com/dkeye/Parley/internal/config"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware gives every browser a stable token, used only to
// correlate reconnects in logs. Chat identity is claimed over the socket.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, coord *app.Coordinator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	if cfg.FrontendURL != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ParleySessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	r.GET("/health", func(c *gin.Context) {
		users, messages, groups := coord.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"users":    users,
			"messages": messages,
			"groups":   groups,
		})
	})

	turnClient := turn.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	r.GET("/turn-token", func(c *gin.Context) {
		if !turnClient.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "TURN not configured"})
			return
		}
		tok, err := turnClient.CreateToken(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("TURN token")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate TURN token"})
			return
		}
		c.JSON(http.StatusOK, tok)
	})

	r.GET("/debug/private-messages", func(c *gin.Context) {
		c.JSON(http.StatusOK, coord.DirectDebug())
	})

	api := r.Group("/api")

	ctl := signal.NewChatWSController(coord, cfg)
	api.GET("/ws/chat", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("ct", c.GetString("client_token")).Msg("ws chat endpoint hit")
		ctl.HandleChat(ctx, c)
	})

	return r
}
