package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	markethandler "wealthwise_gateway/internal/feature/market/transport/handler"
	portfoliohandler "wealthwise_gateway/internal/feature/portfolio/transport/handler"
	sessionhandler "wealthwise_gateway/internal/feature/session/transport/handler"
	"wealthwise_gateway/internal/platform/http/handler"
	"wealthwise_gateway/internal/platform/sessionmw"
)

// NewRouter assembles the gateway's HTTP surface. Login, health and session
// status stay open; everything touching portfolio or market data requires an
// active session.
func NewRouter(session *sessionhandler.SessionHandler, portfolio *portfoliohandler.PortfolioHandler,
	market *markethandler.MarketHandler, sessions sessionmw.SessionChecker) *gin.Engine {
	r := gin.Default()

	// Browser dashboard runs on a different origin during development.
	r.Use(cors.Default())

	// No session required
	r.GET("/healthz", handler.Health)
	r.POST("/login", session.Login)
	// Status is open so the dashboard can poll it before and after expiry.
	r.GET("/session", session.Status)

	// Session-gated routes
	guarded := r.Group("/")
	guarded.Use(sessionmw.SessionRequired(sessions))
	{
		guarded.POST("/logout", session.Logout)
		guarded.POST("/session/extend", session.Extend)

		guarded.GET("/portfolio", portfolio.List)
		guarded.POST("/portfolio", portfolio.Create)
		guarded.DELETE("/portfolio/:id", portfolio.Delete)
		guarded.POST("/refresh", portfolio.Refresh)
		guarded.GET("/metrics", portfolio.Metrics)

		guarded.GET("/market/quotes", market.ListQuotes)
		guarded.GET("/market/history/:symbol", market.History)
	}

	return r
}
