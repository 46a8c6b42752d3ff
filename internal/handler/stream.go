package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/internal/view"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// StreamHandler pushes rendered list snapshots to browsers over WebSocket.
// Each connection gets its own store subscription: one snapshot immediately,
// then one after every mutation of the collection, already sorted and
// carrying the placeholder/occupied-date data the widget renders from.
type StreamHandler struct {
	Store store.Store
	Log   *logging.Logger
}

// NewStreamHandler constructs a StreamHandler.
func NewStreamHandler(st store.Store, log *logging.Logger) *StreamHandler {
	if st == nil {
		panic("nil store passed to NewStreamHandler")
	}
	if log == nil {
		log = logging.Default()
	}
	return &StreamHandler{Store: st, Log: log}
}

// Stream handles GET /v1/stream?collection=active|history. The collection
// defaults to active.
func (h *StreamHandler) Stream(c echo.Context) error {
	var (
		col    store.Collection
		render func([]model.Appointment) view.List
	)
	switch c.QueryParam("collection") {
	case "", "active":
		col = store.Active
		render = view.RenderActive
	case "history":
		col = store.History
		render = func(snap []model.Appointment) view.List { return view.RenderHistory(snap, "") }
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown collection"})
	}

	websocket.Handler(func(ws *websocket.Conn) {
		defer ws.Close()

		done := make(chan struct{})
		var once sync.Once
		closeDone := func() { once.Do(func() { close(done) }) }

		sub, err := h.Store.Subscribe(col, func(snap []model.Appointment) {
			if err := websocket.JSON.Send(ws, render(snap)); err != nil {
				closeDone()
			}
		})
		if err != nil {
			h.Log.Error("stream: subscribe failed", "collection", string(col), "error", err)
			return
		}
		defer sub.Cancel()
		h.Log.Debug("stream: client connected", "collection", string(col))

		// Drain the connection so we notice when the client goes away; the
		// widget never sends anything meaningful upstream.
		go func() {
			var msg string
			for {
				if err := websocket.Message.Receive(ws, &msg); err != nil {
					closeDone()
					return
				}
			}
		}()

		<-done
		h.Log.Debug("stream: client disconnected", "collection", string(col))
	}).ServeHTTP(c.Response(), c.Request())
	return nil
}
