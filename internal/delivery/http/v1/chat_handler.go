package v1

import (
	"net/http"

	"go-careercompass-backend/internal/delivery/http/response"
	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUC domain.ChatUsecase
}

func NewChatHandler(protected *gin.RouterGroup, chatUC domain.ChatUsecase, sendLimit gin.HandlerFunc) {
	handler := &ChatHandler{chatUC: chatUC}

	chat := protected.Group("/chat")
	{
		chat.POST("", sendLimit, handler.Send)
		chat.GET("", handler.Messages)
		chat.DELETE("", handler.Reset)
	}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// Send godoc
// @Summary      Send a chat message
// @Description  Send a message to the career assistant and receive the updated conversation window. A failed assistant call yields a fallback reply rather than an error.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        chat  body      ChatRequest  true  "User message"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /chat [post]
// @Security     BearerAuth
func (h *ChatHandler) Send(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	messages, err := h.chatUC.Send(c.Request.Context(), userID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	reply := ""
	if len(messages) > 0 {
		reply = messages[len(messages)-1].Content
	}
	response.Success(c, http.StatusOK, "Message sent", gin.H{
		"response": reply,
		"messages": messages,
	})
}

// Messages godoc
// @Summary      Get chat history
// @Description  Return the retained conversation window for the current user
// @Tags         chat
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ChatMessage}
// @Failure      401  {object}  response.Response
// @Router       /chat [get]
// @Security     BearerAuth
func (h *ChatHandler) Messages(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	response.Success(c, http.StatusOK, "Chat history retrieved", h.chatUC.Messages(userID))
}

// Reset godoc
// @Summary      Clear the chat window
// @Description  Drop the conversation; any in-flight assistant reply is discarded when it arrives
// @Tags         chat
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /chat [delete]
// @Security     BearerAuth
func (h *ChatHandler) Reset(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	h.chatUC.Reset(userID)

	response.Success(c, http.StatusOK, "Chat cleared", nil)
}
