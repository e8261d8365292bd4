package api

import "time"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
