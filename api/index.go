package handler

import (
	"net/http"
	"sync"

	"stayhub/config"
	"stayhub/di"
	_ "stayhub/docs"
	"stayhub/shared/logger"
	transport "stayhub/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.Init(config.Get())

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
