// Package message serves the greeting endpoint.
package message

import (
	"context"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-backend/internal/config"
	applog "github.com/janisto/hello-backend/internal/platform/logging"
)

// Path is the route the handler is mounted at.
const Path = "/api/message"

// Options parameterizes the handler.
type Options struct {
	Greeting        string
	IncludeHostname bool
	// Hostname resolves the local host name. Defaults to os.Hostname.
	Hostname func() (string, error)
}

// OptionsFromConfig maps the message config onto handler options.
func OptionsFromConfig(cfg config.MessageConfig) Options {
	return Options{Greeting: cfg.Greeting, IncludeHostname: cfg.IncludeHostname}
}

type handler struct {
	opts Options
}

// Register wires the message route into the provided API.
func Register(api huma.API, opts Options) {
	if opts.Hostname == nil {
		opts.Hostname = os.Hostname
	}
	h := &handler{opts: opts}

	huma.Register(api, huma.Operation{
		OperationID: "get-message",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Get the backend greeting",
		Description: "Returns a fixed greeting and, when enabled, the name of the host that served the request.",
		Tags:        []string{"Message"},
	}, h.get)
}

// get resolves the hostname on every call. A failed lookup drops the field
// and is logged; the greeting is still served.
func (h *handler) get(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	data := Data{Message: h.opts.Greeting}
	if h.opts.IncludeHostname {
		hostname, err := h.opts.Hostname()
		switch {
		case err != nil:
			applog.LogWarn(ctx, "hostname lookup failed", err, zap.String("path", Path))
		case hostname == "":
			applog.LogWarn(ctx, "hostname lookup returned empty name", nil, zap.String("path", Path))
		default:
			data.Hostname = hostname
		}
	}
	applog.LogInfo(ctx, "message get",
		zap.String("path", Path),
		zap.Bool("includeHostname", h.opts.IncludeHostname),
	)
	return &GetOutput{Body: data}, nil
}
