package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"MarketPulse/internal/domain/models"
	icache "MarketPulse/internal/service/cache"
	"MarketPulse/internal/service/metrics"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/usecase"
	pkgcache "MarketPulse/pkg/cache"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analysis pipeline over Echo. Responses are
// cached as serialized bytes per query shape, and each endpoint carries a
// per-client token bucket.
type AnalysisHandler struct {
	analyzer *usecase.Analyzer
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
	log      *applogger.Logger
}

var _ xhttp.Handler = (*AnalysisHandler)(nil)

func NewAnalysisHandler(log *applogger.Logger, analyzer *usecase.Analyzer) *AnalysisHandler {
	metrics.Register()
	return &AnalysisHandler{
		analyzer: analyzer,
		cacheTTL: 30 * time.Second,
		rl:       ratelimit.New(),
		log:      log,
	}
}

// SetCache enables response byte caching.
func (h *AnalysisHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetCacheTTL overrides the default response cache TTL.
func (h *AnalysisHandler) SetCacheTTL(ttl time.Duration) { h.cacheTTL = ttl }

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/analysis", h.Analysis)
	g.GET("/indicators", h.Indicators)
	g.GET("/volume", h.Volume)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/news-impact", h.NewsImpact)
	g.GET("/ai-signals", h.AISignals)
	g.GET("/signals", h.Signals)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AnalysisHandler) Analysis(c echo.Context) error {
	endpoint := "analysis"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return h.rateLimited(c, endpoint)
	}

	key := pkgcache.GenerateKeyWithParams("analysis", req.Ticker, req.Period, req.Interval)
	if b, ok := h.cached(endpoint, key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	bundle, err := h.analyzer.Analyze(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return h.respond(c, endpoint, key, bundle)
}

func (h *AnalysisHandler) Indicators(c echo.Context) error {
	endpoint := "indicators"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 10, 5) {
		return h.rateLimited(c, endpoint)
	}

	key := pkgcache.GenerateKeyWithParams("indicators", req.Ticker, req.Period, req.Interval)
	if b, ok := h.cached(endpoint, key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	set, err := h.analyzer.Indicators(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return h.respond(c, endpoint, key, set)
}

func (h *AnalysisHandler) Volume(c echo.Context) error {
	endpoint := "volume"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.VolumeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 10, 5) {
		return h.rateLimited(c, endpoint)
	}

	key := pkgcache.GenerateKeyWithParams("volume", req.Ticker, req.Period, req.Interval)
	if b, ok := h.cached(endpoint, key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	snap, err := h.analyzer.Volume(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return h.respond(c, endpoint, key, snap)
}

func (h *AnalysisHandler) Sentiment(c echo.Context) error {
	endpoint := "sentiment"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return h.rateLimited(c, endpoint)
	}

	market, results, err := h.analyzer.Sentiment(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"market_sentiment": market,
		"articles":         results,
	})
}

func (h *AnalysisHandler) NewsImpact(c echo.Context) error {
	endpoint := "news_impact"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.NewsImpactRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return h.rateLimited(c, endpoint)
	}

	impacts, err := h.analyzer.NewsImpacts(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, impacts)
}

func (h *AnalysisHandler) AISignals(c echo.Context) error {
	endpoint := "ai_signals"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return h.rateLimited(c, endpoint)
	}

	key := pkgcache.GenerateKeyWithParams("ai_signals", req.Ticker, req.Period, req.Interval)
	if b, ok := h.cached(endpoint, key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	sigs, err := h.analyzer.AISignals(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return h.respond(c, endpoint, key, sigs)
}

func (h *AnalysisHandler) Signals(c echo.Context) error {
	endpoint := "signals"
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return h.rateLimited(c, endpoint)
	}

	sig, err := h.analyzer.LegacySignal(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, sig)
}

// cached returns a previously serialized APIResponse for key.
func (h *AnalysisHandler) cached(endpoint, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.log.Warn("cache get failed",
			applogger.String("endpoint", endpoint),
			applogger.Error(err),
		)
		return nil, false
	}
	if ok {
		h.log.Debug("cache hit", applogger.String("key", key))
	}
	return b, ok
}

// respond serializes the success envelope once, caches it, and writes it.
func (h *AnalysisHandler) respond(c echo.Context, endpoint, key string, data interface{}) error {
	body := xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	}
	b, err := json.Marshal(body)
	if err != nil {
		metrics.AnalysisErrors.WithLabelValues(endpoint).Inc()
		h.log.Error("response marshal failed",
			applogger.String("endpoint", endpoint),
			applogger.Error(err),
		)
		return xhttp.InternalServerErrorResponse(c)
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(key, b, h.cacheTTL); err != nil {
			h.log.Warn("cache set failed",
				applogger.String("endpoint", endpoint),
				applogger.Error(err),
			)
		}
	}
	return c.JSONBlob(http.StatusOK, b)
}

func (h *AnalysisHandler) rateLimited(c echo.Context, endpoint string) error {
	h.log.Warn("rate limited",
		applogger.String("endpoint", endpoint),
		applogger.String("remote", c.RealIP()),
	)
	return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
}

func (h *AnalysisHandler) fail(c echo.Context, endpoint string, err error) error {
	metrics.AnalysisErrors.WithLabelValues(endpoint).Inc()
	if errors.Is(err, models.ErrInsufficientData) {
		h.log.Warn("insufficient data",
			applogger.String("endpoint", endpoint),
			applogger.Error(err),
		)
		appErr := xhttp.NewAppError("ERR_INSUFFICIENT_DATA", "", err.Error(), http.StatusUnprocessableEntity)
		return xhttp.AppErrorResponse(c, appErr)
	}
	h.log.Error("usecase error",
		applogger.String("endpoint", endpoint),
		applogger.Error(err),
	)
	return xhttp.AppErrorResponse(c, err)
}
