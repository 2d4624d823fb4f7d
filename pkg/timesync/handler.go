package timesync

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
)

const statusSuccess = "success"

// Response is the JSON body served by Handler.
type Response struct {
	UnixTimestamp int64  `json:"unix_timestamp"`
	Status        string `json:"status"`
}

// Handler serves the current time of its clock.
type Handler struct {
	logger hclog.Logger
	clock  timekey.Clock
}

type HandlerOpt = func(*Handler) error

func WithHandlerLogger(logger hclog.Logger) HandlerOpt {
	return func(h *Handler) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		h.logger = logger
		return nil
	}
}

// WithHandlerClock overrides the timekey.SystemClock default.
func WithHandlerClock(clock timekey.Clock) HandlerOpt {
	return func(h *Handler) error {
		if clock == nil {
			return errors.New("nil clock")
		}
		h.clock = clock
		return nil
	}
}

// NewHandler creates a Handler using the options provided as zero or more HandlerOpt.
func NewHandler(opts ...HandlerOpt) (*Handler, error) {
	h := &Handler{
		logger: hclog.NewNullLogger(),
		clock:  timekey.SystemClock{},
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", http.MethodGet)
	if r.Method != http.MethodGet {
		h.logger.Debug("Rejected request", "method", r.Method, "remote", r.RemoteAddr)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	resp := Response{
		UnixTimestamp: h.clock.Unix(),
		Status:        statusSuccess,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to write time response", "error", err, "remote", r.RemoteAddr)
		return
	}
	h.logger.Trace("Served time", "unix", resp.UnixTimestamp, "remote", r.RemoteAddr)
}
