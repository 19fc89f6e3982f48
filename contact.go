package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type contactForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Subject string `form:"subject" binding:"required,max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

// handleContact validates the form and pretends to send it. Nothing leaves
// the server and nothing is stored.
func (s *server) handleContact(c *gin.Context) {
	dict := s.site.Dict(s.lang(c))

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debug("contact form rejected", "err", err)
		c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
			"Message": dict.Contact.Error,
		})
		return
	}

	if d := s.cfg.Contact.Delay; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-c.Request.Context().Done():
			return
		case <-timer.C:
		}
	}

	s.logger.Info("contact form submitted", "subject_len", len(form.Subject), "message_len", len(form.Message))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"Message": dict.Contact.Success,
	})
}
