package domain

import "net/http"

// ResponseType is the interaction callback type returned to the platform.
type ResponseType int

const (
	// ResponseHandshakeAck answers a handshake (PONG).
	ResponseHandshakeAck ResponseType = 1
	// ResponseImmediateMessage carries content shown right away.
	ResponseImmediateMessage ResponseType = 4
	// ResponseDeferredAck tells the platform the answer will arrive through a follow-up edit.
	ResponseDeferredAck ResponseType = 5
)

// ResponseData holds message content for immediate responses.
type ResponseData struct {
	Content string `json:"content"`
}

// InteractionResponse is the JSON body of an interaction callback response.
type InteractionResponse struct {
	Type ResponseType  `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// Response is the HTTP-shaped answer produced by the dispatcher.
// A nil Body means the response carries an empty body.
type Response struct {
	Status int
	Body   *InteractionResponse
}

// HandshakeAck returns the response to a handshake interaction.
func HandshakeAck() Response {
	return Response{
		Status: http.StatusOK,
		Body:   &InteractionResponse{Type: ResponseHandshakeAck},
	}
}

// DeferredAck returns the placeholder response for deferred commands.
func DeferredAck() Response {
	return Response{
		Status: http.StatusOK,
		Body:   &InteractionResponse{Type: ResponseDeferredAck},
	}
}

// ImmediateMessage returns a response carrying content directly.
func ImmediateMessage(content string) Response {
	return Response{
		Status: http.StatusOK,
		Body: &InteractionResponse{
			Type: ResponseImmediateMessage,
			Data: &ResponseData{Content: content},
		},
	}
}

// MethodNotAllowed is returned for unsupported methods and interaction types.
func MethodNotAllowed() Response {
	return Response{Status: http.StatusMethodNotAllowed}
}
