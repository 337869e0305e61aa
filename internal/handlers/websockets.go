package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/srpanda29/poultry-health-dashboard/internal/logger"
	"github.com/srpanda29/poultry-health-dashboard/internal/services"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CameraWebsocketHandler receives JPEG frames from a camera client and relays
// them to viewers through the manager.
func CameraWebsocketHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		camera := r.URL.Query().Get("id")
		if camera == "" {
			camera = "coop-1"
		}

		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		logger.Info("Camera connected: %s", camera)

		for {
			_, msg, err := connection.ReadMessage()
			if err != nil {
				logger.Warning("Camera %s disconnected: %v", camera, err)
				break
			}

			manager.HandleCameraFrame(msg, camera)
		}
	}
}

// ViewWebsocketHandler attaches a dashboard viewer to the live hub.
func ViewWebsocketHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		manager.GetWebsocketService().Register(connection)
		defer manager.GetWebsocketService().Unregister(connection)

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				break
			}
		}
	}
}
