package logger

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Poster is the part of the fluent client the handler needs.
type Poster interface {
	Post(tag string, message interface{}) error
}

// FluentHandler forwards records to Fluent Bit as flat maps tagged "<tag>.<level>".
type FluentHandler struct {
	client   Poster
	tag      string
	minLevel slog.Level
	attrs    map[string]any
	group    string
}

// NewFluentHandler returns a handler posting records at or above minLevel.
func NewFluentHandler(client Poster, tag string, minLevel slog.Level) *FluentHandler {
	if tag == "" {
		tag = "app"
	}
	return &FluentHandler{client: client, tag: tag, minLevel: minLevel, attrs: map[string]any{}}
}

func (h *FluentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *FluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]any, len(h.attrs)+r.NumAttrs()+3)
	for k, v := range h.attrs {
		data[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(data, h.group, a)
		return true
	})

	level := strings.ToLower(r.Level.String())
	data["level"] = level
	data["message"] = r.Message
	data["timestamp"] = r.Time.UTC().Format(time.RFC3339Nano)

	return h.client.Post(h.tag+"."+level, data)
}

func (h *FluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		addAttr(next.attrs, h.group, a)
	}
	return next
}

func (h *FluentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.group = join(h.group, name)
	return next
}

func (h *FluentHandler) clone() *FluentHandler {
	attrs := make(map[string]any, len(h.attrs))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	return &FluentHandler{client: h.client, tag: h.tag, minLevel: h.minLevel, attrs: attrs, group: h.group}
}

// addAttr flattens groups into dotted keys.
func addAttr(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			addAttr(dst, join(prefix, a.Key), ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	if err, ok := v.Any().(error); ok {
		dst[join(prefix, a.Key)] = err.Error()
		return
	}
	dst[join(prefix, a.Key)] = v.Any()
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
