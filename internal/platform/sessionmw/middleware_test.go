package sessionmw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"wealthwise_gateway/internal/feature/session/domain/entity"
)

// staticChecker is a SessionChecker serving a fixed state.
type staticChecker entity.State

func (s staticChecker) State() entity.State { return entity.State(s) }

func setupRouter(state entity.State) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	guarded := r.Group("/")
	guarded.Use(SessionRequired(staticChecker(state)))
	guarded.GET("/portfolio", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	return r
}

func TestSessionRequired(t *testing.T) {
	tests := []struct {
		name           string
		state          entity.State
		expectedStatus int
	}{
		{
			name:           "active session passes",
			state:          entity.StateActive,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "expiring session still passes",
			state:          entity.StateExpiring,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthenticated is rejected",
			state:          entity.StateUnauthenticated,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(tt.state)

			req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"session expired"}`, w.Body.String())
			}
		})
	}
}
