package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
)

// GetVAPIDPublicKey hands browsers the key they need to subscribe to push.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publicKey": h.cfg.Push.PublicKey})
}

type subscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
	Keys     struct {
		P256DH string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// PutSubscription registers (or refreshes) a browser push subscription for
// the authenticated user.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := &model.PushSubscription{
		Endpoint: req.Endpoint,
		UserID:   mw.UserID(c),
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
	}
	if err := h.store.UpsertPushSubscription(c.Request.Context(), sub); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "subscribed"})
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
}

// DeleteSubscription removes a browser push subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.DeletePushSubscription(c.Request.Context(), req.Endpoint); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
}
