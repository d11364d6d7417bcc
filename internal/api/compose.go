package api

import (
	"net/http"
	"time"

	"outage-notifier/internal/directory"
	"outage-notifier/internal/notify"

	"github.com/gin-gonic/gin"
)

type ComposeHandler struct {
	Dir *directory.Service
}

func NewComposeHandler(dir *directory.Service) *ComposeHandler {
	return &ComposeHandler{Dir: dir}
}

type ComposeRequest struct {
	Area     string `json:"area"`
	MsgType  string `json:"msg_type"`
	Tamil    bool   `json:"tamil"`
	English  bool   `json:"english"`
	ETAStart string `json:"eta_start"`
	ETAEnd   string `json:"eta_end"`
}

// Compose renders the preview text for the current selection. It always
// succeeds: an empty area or unknown ETA degrades to placeholders.
func (h *ComposeHandler) Compose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sample, _, err := h.Dir.Sample(req.Area)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := notify.BuildMessage(notify.ComposeRequest{
		Area:      req.Area,
		Kind:      messageKind(req.MsgType),
		Languages: notify.Languages{Tamil: req.Tamil, English: req.English},
		Window:    windowFromStrings(req.ETAStart, req.ETAEnd),
		Sample:    sample,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"eta":     windowFromStrings(req.ETAStart, req.ETAEnd).DisplayRange(),
		"sample":  sample,
	})
}

type QuickPickRequest struct {
	Kind string `json:"kind"`
}

// QuickPick resolves a quick pick into nullable "HH:MM" window ends.
func (h *ComposeHandler) QuickPick(c *gin.Context) {
	var req QuickPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := notify.ResolveQuickPick(req.Kind, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var start, end *string
	if !window.Empty() {
		s := window.Start.String()
		e := window.End.String()
		start, end = &s, &e
	}
	c.JSON(http.StatusOK, gin.H{"eta_start": start, "eta_end": end})
}

func messageKind(msgType string) notify.MessageKind {
	if msgType == string(notify.KindRestoration) {
		return notify.KindRestoration
	}
	return notify.KindOutage
}

// windowFromStrings builds a window only when both ends parse; anything
// else is the empty window, never a half-filled one.
func windowFromStrings(startStr, endStr string) notify.TimeWindow {
	start, okStart := notify.ParseClock(startStr)
	end, okEnd := notify.ParseClock(endStr)
	if !okStart || !okEnd {
		return notify.TimeWindow{}
	}
	return notify.TimeWindow{Start: &start, End: &end}
}
