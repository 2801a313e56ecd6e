package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	ws "github.com/festiloc/festiloc-server/internal/websocket"
)

// serveChatSocket upgrades a chat-widget connection.
func (r *Router) serveChatSocket(w http.ResponseWriter, req *http.Request) {
	if r.Chat == nil {
		respondError(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}
	ws.ServeWs(r.Hub, r.Chat.Reply, w, req)
}

// getChatHistory returns the messages of one widget session.
func (r *Router) getChatHistory(w http.ResponseWriter, req *http.Request) {
	if r.Chat == nil {
		respondError(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}

	sessionID := mux.Vars(req)["session"]
	messages, err := r.Chat.History(req.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch chat history")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
