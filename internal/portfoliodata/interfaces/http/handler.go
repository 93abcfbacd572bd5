// Package http exposes the portfolio data store over REST.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/application"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

// Handler serves the REST interface of the data store.
type Handler struct {
	svc    *application.Service
	prices *application.PriceService
}

// NewHandler creates the REST handler.
func NewHandler(svc *application.Service, prices *application.PriceService) *Handler {
	return &Handler{svc: svc, prices: prices}
}

// RegisterRoutes mounts all endpoints under the given group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	v1 := r.Group("/v1")
	{
		v1.POST("/assets", h.CreateAsset)
		v1.GET("/assets", h.ListAssets)
		v1.GET("/assets/resolve", h.ResolveAsset)
		v1.GET("/assets/:id", h.GetAsset)
		v1.PUT("/assets/:id", h.UpdateAsset)
		v1.DELETE("/assets/:id", h.DeleteAsset)

		v1.POST("/tickers", h.CreateTicker)
		v1.GET("/tickers", h.ListTickers)
		v1.GET("/tickers/:id", h.GetTicker)
		v1.PUT("/tickers/:id", h.UpdateTicker)
		v1.DELETE("/tickers/:id", h.DeleteTicker)
		v1.GET("/tickers/:id/quotes", h.ListQuotes)

		v1.POST("/quotes", h.RecordQuote)
		v1.PUT("/quotes/:id", h.UpdateQuote)
		v1.DELETE("/quotes/:id", h.DeleteQuote)

		v1.GET("/prices/latest", h.LatestPrice)

		v1.GET("/rounding/:currency", h.GetRoundingDigits)
		v1.PUT("/rounding/:currency", h.SetRoundingDigits)

		v1.POST("/transactions", h.RecordTransaction)
		v1.GET("/transactions", h.ListTransactions)
		v1.GET("/transactions/:id", h.GetTransaction)
		v1.PUT("/transactions/:id", h.UpdateTransaction)
		v1.DELETE("/transactions/:id", h.DeleteTransaction)
	}
}

// --- assets ---

func (h *Handler) CreateAsset(c *gin.Context) {
	var asset domain.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.CreateAsset(c.Request.Context(), &asset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListAssets(c *gin.Context) {
	assets, err := h.svc.ListAssets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

func (h *Handler) ResolveAsset(c *gin.Context) {
	asset := domain.Asset{
		Name: c.Query("name"),
		WKN:  c.Query("wkn"),
		ISIN: c.Query("isin"),
	}
	if asset.Name == "" && asset.WKN == "" && asset.ISIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, wkn or isin is required"})
		return
	}
	id, ok := h.svc.ResolveAssetID(c.Request.Context(), &asset)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asset, err := h.svc.GetAsset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var asset domain.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	asset.ID = id
	if err := h.svc.UpdateAsset(c.Request.Context(), &asset); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAsset(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- tickers ---

type tickerRequest struct {
	Name     string       `json:"name"`
	AssetID  uint         `json:"asset_id"`
	Source   string       `json:"source"`
	Priority int32        `json:"priority"`
	Currency string       `json:"currency"`
	Factor   decimalOrOne `json:"factor"`
	Ensure   bool         `json:"ensure"`
}

func (h *Handler) CreateTicker(c *gin.Context) {
	var req tickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	ticker := domain.Ticker{
		Name:     req.Name,
		AssetID:  req.AssetID,
		Source:   req.Source,
		Priority: req.Priority,
		Currency: currency,
		Factor:   req.Factor.Value(),
	}

	ctx := c.Request.Context()
	var id uint
	if req.Ensure {
		id, err = h.svc.EnsureTicker(ctx, &ticker)
	} else {
		id, err = h.svc.CreateTicker(ctx, &ticker)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListTickers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		tickers []domain.Ticker
		err     error
	)
	switch {
	case c.Query("source") != "":
		tickers, err = h.svc.ListTickersForSource(ctx, c.Query("source"))
	case c.Query("asset_id") != "":
		var assetID uint64
		assetID, err = strconv.ParseUint(c.Query("asset_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset_id"})
			return
		}
		tickers, err = h.svc.ListTickersForAsset(ctx, uint(assetID))
	default:
		tickers, err = h.svc.ListTickers(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickers": tickers})
}

func (h *Handler) GetTicker(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ticker, err := h.svc.GetTicker(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticker)
}

func (h *Handler) UpdateTicker(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req tickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	ticker := domain.Ticker{
		ID:       id,
		Name:     req.Name,
		AssetID:  req.AssetID,
		Source:   req.Source,
		Priority: req.Priority,
		Currency: currency,
		Factor:   req.Factor.Value(),
	}
	if err := h.svc.UpdateTicker(c.Request.Context(), &ticker); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteTicker(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTicker(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- quotes ---

func (h *Handler) RecordQuote(c *gin.Context) {
	var quote domain.Quote
	if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.RecordQuote(c.Request.Context(), &quote)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListQuotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quotes, err := h.svc.ListQuotes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (h *Handler) UpdateQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var quote domain.Quote
	if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote.ID = id
	if err := h.svc.UpdateQuote(c.Request.Context(), &quote); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteQuote(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- price resolution ---

func (h *Handler) LatestPrice(c *gin.Context) {
	cutoff := time.Now().UTC()
	if at := c.Query("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at must be RFC 3339"})
			return
		}
		cutoff = parsed
	}

	ctx := c.Request.Context()
	var (
		quote    *domain.Quote
		currency domain.Currency
		err      error
	)
	switch {
	case c.Query("asset_id") != "":
		var assetID uint64
		assetID, err = strconv.ParseUint(c.Query("asset_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset_id"})
			return
		}
		quote, currency, err = h.prices.LatestQuoteBeforeByID(ctx, uint(assetID), cutoff)
	case c.Query("asset") != "":
		quote, currency, err = h.prices.LatestQuoteBefore(ctx, c.Query("asset"), cutoff)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset or asset_id is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote, "currency": currency})
}

// --- rounding convention ---

func (h *Handler) GetRoundingDigits(c *gin.Context) {
	currency, err := domain.ParseCurrency(c.Param("currency"))
	if err != nil {
		respondError(c, err)
		return
	}
	digits := h.svc.RoundingDigits(c.Request.Context(), currency)
	c.JSON(http.StatusOK, gin.H{"currency": currency, "digits": digits})
}

func (h *Handler) SetRoundingDigits(c *gin.Context) {
	currency, err := domain.ParseCurrency(c.Param("currency"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Digits int32 `json:"digits"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.SetRoundingDigits(c.Request.Context(), currency, req.Digits); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- transactions ---

func (h *Handler) RecordTransaction(c *gin.Context) {
	var dto transactionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	transaction, err := dto.toDomain()
	if err != nil {
		respondError(c, err)
		return
	}
	id, err := h.svc.RecordTransaction(c.Request.Context(), transaction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.svc.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	dtos := make([]transactionDTO, len(transactions))
	for i := range transactions {
		dtos[i] = fromDomain(&transactions[i])
	}
	c.JSON(http.StatusOK, gin.H{"transactions": dtos})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	transaction, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(transaction))
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var dto transactionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto.ID = id
	transaction, err := dto.toDomain()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.UpdateTransaction(c.Request.Context(), transaction); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- helpers ---

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrInvalidCurrency):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
