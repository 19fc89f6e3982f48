package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adel682/codebrain/internal/reveal"
)

// requestRegion treats a streaming request as the mounted region: it stays
// mounted until the client goes away.
type requestRegion struct{ ctx context.Context }

func (r requestRegion) Mounted() bool { return r.ctx.Err() == nil }

// queryObserver reports the intersection ratio the browser measured and sent
// along with the request. Browsers without IntersectionObserver omit it.
type queryObserver struct{ ratio string }

func (q queryObserver) Observe(_ reveal.Region, report func(float64)) (func(), error) {
	if q.ratio == "" {
		return nil, reveal.ErrUnsupported
	}
	ratio, err := strconv.ParseFloat(q.ratio, 64)
	if err != nil {
		return nil, reveal.ErrUnsupported
	}
	report(ratio)
	return func() {}, nil
}

// handleReveal streams one section's counters as server-sent events: a
// "start" frame, one "tick" per animation step and a closing "done". A
// ratio under the section threshold answers with a single "idle" event.
func (s *server) handleReveal(c *gin.Context) {
	name := c.Param("section")
	sec, ok := s.sections[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}
	lang := s.lang(c)
	dict := s.site.Dict(lang)

	group, err := reveal.NewGroup(sec.Duration, sec.Steps, sec.Targets(dict)...)
	if err != nil {
		s.logger.Error("build reveal group", "section", name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reveal unavailable"})
		return
	}
	trigger, err := reveal.NewTrigger(sec.Threshold)
	if err != nil {
		s.logger.Error("build reveal trigger", "section", name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reveal unavailable"})
		return
	}
	defer trigger.Release()

	ctx := c.Request.Context()
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	trigger.Attach(requestRegion{ctx}, queryObserver{c.Query("ratio")}, func() {
		group.Start()
	})

	if !group.Started() {
		if ctx.Err() == nil {
			c.SSEvent("idle", gin.H{"section": name, "threshold": sec.Threshold})
			c.Writer.Flush()
		}
		return
	}

	if err := s.store.RecordReveal(ctx, name, string(lang), s.clock.Now()); err != nil {
		s.logger.Warn("record reveal", "section", name, "err", err)
	}

	c.SSEvent("start", group.Frame())
	c.Writer.Flush()

	group.Drive(ctx, s.clock, func(f reveal.Frame) {
		c.SSEvent("tick", f)
		c.Writer.Flush()
	})

	if group.Done() {
		c.SSEvent("done", group.Frame())
		c.Writer.Flush()
		s.logger.Debug("reveal finished", "section", name, "lang", lang, "ticks", group.Ticks())
	}
}
