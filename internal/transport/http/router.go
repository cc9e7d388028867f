package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"globe-quiz-service/internal/logger"
)

type routeRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// NewRouter mounts the REST handlers, the websocket endpoint and the health check.
func NewRouter(log *zap.Logger, ws *WSHandler, handlers ...routeRegistrar) *mux.Router {
	router := mux.NewRouter()
	router.Use(accessLog(logger.OrNop(log)))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	if ws != nil {
		router.HandleFunc("/ws", ws.ServeWS)
	}
	return router
}

func accessLog(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
