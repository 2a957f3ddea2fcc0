package services

import (
	"encoding/json"

	"blogapi/models"

	"github.com/sirupsen/logrus"
)

// HubService owns the live client registry. Every map access happens on the
// Run goroutine.
type HubService struct {
	hub  *models.Hub
	log  logrus.FieldLogger
	done chan struct{}
}

func NewHubService(log logrus.FieldLogger) *HubService {
	service := &HubService{
		hub:  models.NewHub(),
		log:  log,
		done: make(chan struct{}),
	}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case event := <-h.hub.Publish:
			h.broadcastToPost(event)

		case <-h.done:
			for client := range h.hub.Clients {
				h.unregisterClient(client)
			}
			return
		}
	}
}

func (h *HubService) Close() {
	close(h.done)
}

func (h *HubService) Register(client *models.Client) {
	select {
	case h.hub.Register <- client:
	case <-h.done:
	}
}

func (h *HubService) Unregister(client *models.Client) {
	select {
	case h.hub.Unregister <- client:
	case <-h.done:
	}
}

// Publish queues an event for the watchers of postID. When the queue is full
// the event is dropped.
func (h *HubService) Publish(postID uint, eventType string, data interface{}) {
	select {
	case h.hub.Publish <- models.Event{PostID: postID, Type: eventType, Data: data}:
	default:
		h.log.WithFields(logrus.Fields{"post_id": postID, "type": eventType}).Warn("Live event queue full, dropping event")
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	h.hub.PostClients[client.PostID] = append(h.hub.PostClients[client.PostID], client)
	h.log.WithFields(logrus.Fields{"client_id": client.ID, "post_id": client.PostID}).Debug("Live client registered")
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	delete(h.hub.Clients, client)
	close(client.Send)

	clients := h.hub.PostClients[client.PostID]
	for i, c := range clients {
		if c == client {
			h.hub.PostClients[client.PostID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.hub.PostClients[client.PostID]) == 0 {
		delete(h.hub.PostClients, client.PostID)
	}
	h.log.WithFields(logrus.Fields{"client_id": client.ID, "post_id": client.PostID}).Debug("Live client unregistered")
}

func (h *HubService) broadcastToPost(event models.Event) {
	messageBytes, err := json.Marshal(models.WSMessage{
		Type:   event.Type,
		PostID: event.PostID,
		Data:   event.Data,
	})
	if err != nil {
		h.log.WithError(err).Error("Error marshaling live event")
		return
	}

	// Copy first: unregisterClient rewrites the slice.
	clients := append([]*models.Client(nil), h.hub.PostClients[event.PostID]...)
	for _, client := range clients {
		select {
		case client.Send <- messageBytes:
		default:
			h.unregisterClient(client)
		}
	}

	if event.Type == EventPostDeleted {
		for _, client := range clients {
			h.unregisterClient(client)
		}
	}
}
