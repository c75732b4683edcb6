// Package message provides the /api/message payload as an HTTP Cloud Function.
package message

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/go-chi/cors"
)

const defaultGreeting = "Hello from backend"

// messageHandler is the handler registered with the functions framework.
var messageHandler http.Handler

func init() {
	messageHandler = newHandler(os.LookupEnv, os.Hostname)
	functions.HTTP("Message", messageHandler.ServeHTTP)
}

// Response mirrors the server's message payload.
type Response struct {
	Message  string `json:"message"`
	Hostname string `json:"hostname,omitempty"`
}

func newHandler(lookup func(string) (string, bool), hostname func() (string, error)) http.Handler {
	greeting := defaultGreeting
	if v, ok := lookup("MESSAGE_GREETING"); ok && v != "" {
		greeting = v
	}
	includeHostname := true
	if v, ok := lookup("MESSAGE_INCLUDE_HOSTNAME"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("MESSAGE_INCLUDE_HOSTNAME: invalid boolean %q, using %t", v, includeHostname)
		} else {
			includeHostname = b
		}
	}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		resp := Response{Message: greeting}
		if includeHostname {
			name, err := hostname()
			switch {
			case err != nil:
				log.Printf("hostname lookup failed: %v", err)
			case name == "":
				log.Printf("hostname lookup returned empty name")
			default:
				resp.Hostname = name
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	return cors.Handler(cors.Options{
		AllowOriginFunc:  func(_ *http.Request, _ string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}
