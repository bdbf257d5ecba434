// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/pkg/metrix"
)

type handler struct {
	*logger.Logger

	reg *metrix.Registry
}

// Handler returns an HTTP handler serving the registry exposition. A failure
// to render produces a 500 with a plain error body, never a panic.
func Handler(reg *metrix.Registry) http.Handler {
	return &handler{
		Logger: logger.New().With(slog.String("component", "promtext handler")),
		reg:    reg,
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	if err := Write(&buf, h.reg.Snapshot()); err != nil {
		err = fmt.Errorf("%w: %v", ErrExposition, err)
		h.Errorf("rendering metrics: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
