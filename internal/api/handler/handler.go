// Package handler exposes the HTTP surface: chat request endpoints, the video
// catalog listing and the websocket upgrade into the signaling hub.
package handler

import (
	"visioblog/backend/internal/lifecycle"
	"visioblog/backend/internal/storage"
	"visioblog/backend/internal/visiohub"
)

type Handler struct {
	Hub       *visiohub.Hub
	Lifecycle *lifecycle.Service
	Storage   storage.Storage
	JWTSecret []byte
}

func NewHandler(hub *visiohub.Hub, lc *lifecycle.Service, s storage.Storage, jwtSecret string) *Handler {
	return &Handler{
		Hub:       hub,
		Lifecycle: lc,
		Storage:   s,
		JWTSecret: []byte(jwtSecret),
	}
}
