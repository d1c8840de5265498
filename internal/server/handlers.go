package server

import (
	"errors"
	"net/http"

	"storefront_poc/internal/checkout/summary"
	"storefront_poc/internal/core"
	"storefront_poc/internal/logger"
	"storefront_poc/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const contentTypeHTML = "text/html; charset=utf-8"

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health.Ping(c.Request.Context()); err != nil {
			logger.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) productDetail(c *gin.Context) {
	ctx := c.Request.Context()
	sid := c.GetString(sessionIDKey)
	productID := c.Param("id")

	if err := s.clients.Seen.Process(ctx, sid, productID); err != nil {
		s.fail(c, err)
		return
	}

	fragment, err := s.clients.Seen.HTML(ctx, productID)
	if err != nil {
		s.fail(c, err)
		return
	}
	body, err := s.clients.Seen.Body(ctx, sid, languageOf(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(fragment+body))
}

func (s *Server) invalidateProduct(c *gin.Context) {
	if err := s.clients.Seen.InvalidateProduct(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) seenBody(c *gin.Context) {
	body, err := s.clients.Seen.Body(c.Request.Context(), c.GetString(sessionIDKey), languageOf(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(body))
}

func (s *Server) supplierDetail(c *gin.Context) {
	view := viewOf(c)
	body, err := s.clients.Supplier.Body(c.Request.Context(), view, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	status := http.StatusOK
	if len(view.ErrorList) > 0 {
		status = http.StatusNotFound
	}
	c.Data(status, contentTypeHTML, []byte(body))
}

func (s *Server) checkoutSummary(c *gin.Context) {
	view := viewOf(c)
	view.ActiveStep = c.DefaultQuery("step", core.StepSummary)
	s.renderSummary(c, view, http.StatusOK)
}

func (s *Server) checkoutProcess(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "malformed form")
		return
	}

	view := viewOf(c)
	view.ActiveStep = c.DefaultPostForm("step", core.StepSummary)

	status := http.StatusOK
	err := s.clients.Summary.Process(c.Request.Context(), view, summary.FormFromValues(c.Request.PostForm))
	switch {
	case err == nil && len(view.ErrorList) == 0:
	case err == nil, errors.Is(err, services.ErrBasketIncomplete), errors.Is(err, summary.ErrInvalidForm):
		if err != nil {
			logger.Debug().Err(err).Str("session_id", view.SessionID).Msg("checkout summary rejected")
			view.AddError(summary.ErrorMessage(view.T, err))
		}
		status = http.StatusUnprocessableEntity
	default:
		s.fail(c, err)
		return
	}
	s.renderSummary(c, view, status)
}

func (s *Server) renderSummary(c *gin.Context, view *core.View, status int) {
	ctx := c.Request.Context()
	header, err := s.clients.Summary.Header(ctx, view)
	if err != nil {
		s.fail(c, err)
		return
	}
	body, err := s.clients.Summary.Body(ctx, view)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(status, contentTypeHTML, []byte(header+body))
}

type loginRequest struct {
	UserID string `form:"user_id" json:"user_id" binding:"required"`
}

// login binds the session to a customer account. Authentication belongs
// to the customer service and is out of scope here.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	session := sessions.Default(c)
	session.Set(userIDKey, req.UserID)
	if err := session.Save(); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID})
}

func (s *Server) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(userIDKey)
	if err := session.Save(); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrProductNotFound) {
		status = http.StatusNotFound
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.String(status, http.StatusText(status))
}
