package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-backend/internal/http/v1/message"
)

// Register wires all versioned API operations into the provided API.
func Register(api huma.API, messageOpts message.Options) {
	message.Register(api, messageOpts)
}
