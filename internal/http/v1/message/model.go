package message

// Data models the response payload for the message endpoint.
type Data struct {
	Message  string `json:"message" doc:"Greeting message" example:"Hello from backend"`
	Hostname string `json:"hostname,omitempty" doc:"Name of the host that served the request" example:"worker-3"`
}

// GetOutput is the response wrapper for GET /api/message.
type GetOutput struct {
	Body Data
}
