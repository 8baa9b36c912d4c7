package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/tourbook/internal/http/middleware"
	"github.com/nurpe/tourbook/internal/model"
	"github.com/nurpe/tourbook/internal/notify"
	"github.com/nurpe/tourbook/internal/pricing"
	"github.com/nurpe/tourbook/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type EventPublisher interface {
	Publish(ctx context.Context, event notify.ReservationEvent) error
}

type Handler struct {
	reservations *service.ReservationService
	catalog      *service.CatalogService
	quotes       *service.QuoteService
	documents    *service.DocumentService
	events       EventPublisher
	log          zerolog.Logger
}

func NewHandler(
	reservations *service.ReservationService,
	catalog *service.CatalogService,
	quotes *service.QuoteService,
	documents *service.DocumentService,
	events EventPublisher,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		reservations: reservations,
		catalog:      catalog,
		quotes:       quotes,
		documents:    documents,
		events:       events,
		log:          log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware, optionalAuth gin.HandlerFunc) {
	public := router.Group("/")
	public.GET("/products/:id", h.getProduct)
	public.GET("/products/:id/price", h.getPrice)

	optional := router.Group("/")
	optional.Use(optionalAuth)
	optional.POST("/reservations", h.createReservation)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/reservations", h.listReservations)
	protected.GET("/reservations/:id", h.getReservation)
	protected.PUT("/reservations/:id", h.updateReservation)
	protected.DELETE("/reservations/:id", h.deleteReservation)
	protected.POST("/reservations/:id/history", h.appendHistory)
	protected.GET("/reservations/:id/voucher", h.downloadVoucher)
	protected.GET("/admin/reservations/export", h.exportReservations)
	protected.PUT("/products/:id/options/:optionId/default", h.setDefaultOption)
	protected.GET("/quotes/:id/draft", h.getQuoteDraft)
	protected.POST("/quotes/:id/reservations", h.convertQuote)
}

func (h *Handler) createReservation(c *gin.Context) {
	var input service.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if ok {
		owner := principal.UserID
		input.UserID = &owner
	}

	res, err := h.reservations.Create(c.Request.Context(), input, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.publish(c, notify.EventReservationCreated, *res)

	c.JSON(http.StatusCreated, gin.H{"message": "reservation created", "id": res.ID})
}

func (h *Handler) listReservations(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservations, err := h.reservations.List(c.Request.Context(), principal, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *Handler) getReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.reservations.Get(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) updateReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch model.ReservationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.reservations.Update(c.Request.Context(), id, patch, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if patch.Status != nil {
		h.publish(c, notify.EventReservationStatusChanged, *res)
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) deleteReservation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reservations.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

type appendHistoryRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Detail      string `json:"detail"`
}

func (h *Handler) appendHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req appendHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.reservations.AppendHistory(c.Request.Context(), id, model.HistoryEntry{
		Type:        req.Type,
		Description: req.Description,
		Detail:      req.Detail,
	}, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) downloadVoucher(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.documents.Voucher(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, pdfContentType, result.Content)
}

func (h *Handler) exportReservations(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}

	result, err := h.documents.ExportReservations(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) getPrice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	people, err := strconv.Atoi(strings.TrimSpace(c.Query("people")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid people"})
		return
	}

	breakdown, err := h.catalog.Price(c.Request.Context(), id, service.PriceRequest{
		People:        people,
		Accommodation: strings.TrimSpace(c.Query("accommodation")),
		Vehicle:       strings.TrimSpace(c.Query("vehicle")),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *Handler) setDefaultOption(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.SetDefaultOption(c.Request.Context(), id, strings.TrimSpace(c.Param("optionId")), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) getQuoteDraft(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	draft, err := h.quotes.Draft(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) convertQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		h.handleError(c, service.ErrUnauthorized)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.quotes.Convert(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.publish(c, notify.EventReservationCreated, *res)

	c.JSON(http.StatusCreated, gin.H{"message": "reservation created", "id": res.ID})
}

// publish hands the event to the broker. Delivery failures are logged and do
// not fail the request; the reservation is already committed.
func (h *Handler) publish(c *gin.Context, event string, res model.Reservation) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(c.Request.Context(), notify.NewReservationEvent(event, res, time.Now())); err != nil {
		h.log.Warn().Err(err).Str("event", event).Str("reservation_id", res.ID.String()).Msg("publish reservation event failed")
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrQuoteNotReady),
		errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrNoPricingData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func parsePage(c *gin.Context) (model.Page, error) {
	var page model.Page
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return page, errors.New("invalid limit")
		}
		page.Limit = limit
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return page, errors.New("invalid offset")
		}
		page.Offset = offset
	}
	return page, nil
}
