package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prashantttzz/experimentlabs/internal/http/response"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
	"github.com/prashantttzz/experimentlabs/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) History(c *gin.Context) {
	chunkID, err := uuid.Parse(c.Param("chunkId"))
	if err != nil {
		response.RespondDomainError(c, pkgerrors.ErrNotFound)
		return
	}
	msgs, err := ch.chatService.History(c.Request.Context(), currentUserID(c), chunkID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
	chunkID, err := uuid.Parse(c.Param("chunkId"))
	if err != nil {
		response.RespondDomainError(c, pkgerrors.ErrNotFound)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reply, err := ch.chatService.SendMessage(c.Request.Context(), currentUserID(c), chunkID, req.Content)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": reply})
}
