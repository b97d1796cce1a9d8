package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/alumninet/alumninet/internal/middleware"
	notification "github.com/alumninet/alumninet/internal/modules/notification/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type NotificationHandler struct {
	notificationService notification.NotificationService
	redisClient         *redis.Client
	upgrader            websocket.Upgrader
}

func NewNotificationHandler(notificationService notification.NotificationService, redisClient *redis.Client) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		redisClient:         redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// REST Endpoints

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := h.notificationService.GetNotifications(c.Request.Context(), actor.ID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"data": notifications})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notificationService.MarkAsRead(c.Request.Context(), actor.ID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), actor.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "all notifications marked as read"})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), actor.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"count": count})
}

// WebSocket Endpoint

// HandleWebSocket upgrades the connection and forwards the caller's Redis
// notification channel until either side goes away. Auth runs in the
// middleware; WebSocket clients pass the token as a query parameter.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if h.redisClient == nil {
		log.Println("Redis client is nil, cannot subscribe")
		return
	}

	channel := fmt.Sprintf("user_notifications:%s", actor.ID.String())
	pubsub := h.redisClient.Subscribe(c.Request.Context(), channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("Failed to subscribe to redis channel: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Payloads are already JSON; forward them as-is.
	for {
		select {
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("Failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
