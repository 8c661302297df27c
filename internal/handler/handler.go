package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"sales-hierarchy/internal/apperr"
	"sales-hierarchy/internal/engine"
	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/inventory"
	"sales-hierarchy/internal/metrics"
	"sales-hierarchy/internal/model"
	"sales-hierarchy/internal/safecall"
	"sales-hierarchy/internal/store"
)

// unmatchedRoute labels requests the router could not match, keeping the
// metric cardinality bounded.
const unmatchedRoute = "unmatched"

type Handler struct {
	log      *zap.Logger
	store    *store.Store
	metrics  *metrics.Collector
	validate *validator.Validate
	router   *router.Router
}

func New(log *zap.Logger, st *store.Store, m *metrics.Collector) *Handler {
	h := &Handler{
		log:      log,
		store:    st,
		metrics:  m,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	r := router.New()
	r.SaveMatchedRoutePath = true
	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		h.writeError(ctx, apperr.NotFound("route not found"))
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		h.writeError(ctx, apperr.MethodNotAllowed("method not allowed"))
	}

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})
	r.GET("/metrics", m.Handler())
	r.POST("/calculate", h.endpoint(h.calculate))
	r.POST("/inventory", h.endpoint(h.inventory))
	r.POST("/hierarchies", h.endpoint(h.createHierarchy))
	r.GET("/hierarchies/{id}", h.endpoint(h.getHierarchy))
	r.DELETE("/hierarchies/{id}", h.endpoint(h.deleteHierarchy))
	r.POST("/hierarchies/{id}/leads", h.endpoint(h.assignLead))
	r.GET("/hierarchies/{id}/risk", h.endpoint(h.totalRisk))

	h.router = r
	return h
}

// Handle is the fasthttp entry point. Routing runs through safecall so a panic
// becomes a 500 and the request is still counted and logged.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	safecall.Run(
		func() (struct{}, error) {
			h.router.Handler(ctx)
			return struct{}{}, nil
		},
		func(err error) struct{} {
			h.writeError(ctx, apperr.Internal("handler panicked: "+err.Error()))
			return struct{}{}
		},
		func() {
			route := matchedRoute(ctx)
			status := ctx.Response.StatusCode()
			h.metrics.RecordRequest(route, status)
			h.log.Debug("request handled",
				zap.ByteString("method", ctx.Method()),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("elapsed", time.Since(start)),
			)
		},
	)
}

// endpoint adapts an error-returning handler to the router.
func (h *Handler) endpoint(fn func(*fasthttp.RequestCtx) error) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if err := fn(ctx); err != nil {
			h.writeError(ctx, err)
		}
	}
}

// matchedRoute returns the registered pattern, e.g. /hierarchies/{id}/leads.
func matchedRoute(ctx *fasthttp.RequestCtx) string {
	if route, ok := ctx.UserValue(router.MatchedRoutePathParam).(string); ok && route != "" {
		return route
	}
	return unmatchedRoute
}

func hierarchyID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func (h *Handler) getHierarchy(ctx *fasthttp.RequestCtx) error {
	st, err := h.store.State(hierarchyID(ctx))
	if err != nil {
		return err
	}
	return writeJSON(ctx, fasthttp.StatusOK, st)
}

func (h *Handler) deleteHierarchy(ctx *fasthttp.RequestCtx) error {
	if err := h.store.Delete(hierarchyID(ctx)); err != nil {
		return err
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
	return nil
}

func (h *Handler) totalRisk(ctx *fasthttp.RequestCtx) error {
	risk, err := h.store.TotalRisk(hierarchyID(ctx))
	if err != nil {
		return err
	}
	return writeJSON(ctx, fasthttp.StatusOK, model.RiskResponse{TotalRisk: risk})
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) error {
	var req model.EvaluationRequest
	if err := h.decode(ctx, &req); err != nil {
		return err
	}

	resp := engine.Process(&req)
	h.metrics.ObserveEvaluation(time.Duration(resp.CalculationMetadata.CalculationDurationMs) * time.Millisecond)
	h.recordEvaluation(resp)

	h.log.Info("evaluation processed",
		zap.String("calculation_id", resp.CalculationMetadata.CalculationID),
		zap.String("tenant_id", req.TenantID),
		zap.String("outcome", resp.CalculationMetadata.CalculationOutcome),
		zap.Int("operations", len(resp.CalculationResult.Operations)),
		zap.Float64("total_risk", resp.CalculationResult.EndState.State.TotalRisk),
	)
	return writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) recordEvaluation(resp *model.EvaluationResponse) {
	build := "ok"
	for _, m := range resp.CalculationResult.Messages {
		switch m.Code {
		case model.CodeUnknownVariant, model.CodeEmptyHierarchy, model.CodeInvalidHierarchy:
			build = "failed"
		case model.CodeHierarchyTruncated:
			build = "truncated"
		case model.CodeLeadUnassigned:
			h.metrics.RecordAssignment(false)
		}
	}
	h.metrics.RecordBuild(build)

	for _, n := range resp.CalculationResult.EndState.State.Nodes {
		if n.Lead != nil {
			h.metrics.RecordAssignment(true)
		}
	}
}

func (h *Handler) createHierarchy(ctx *fasthttp.RequestCtx) error {
	var req model.CreateHierarchyRequest
	if err := h.decode(ctx, &req); err != nil {
		return err
	}

	id, st, err := h.store.Create(req.Hierarchy)
	if err != nil {
		h.metrics.RecordBuild("failed")
		return err
	}
	if st.Dropped > 0 {
		h.metrics.RecordBuild("truncated")
		h.log.Warn("hierarchy truncated", zap.String("id", id), zap.Int("dropped_records", st.Dropped))
	} else {
		h.metrics.RecordBuild("ok")
	}
	return writeJSON(ctx, fasthttp.StatusCreated, model.HierarchyCreated{ID: id, State: st})
}

func (h *Handler) assignLead(ctx *fasthttp.RequestCtx) error {
	id := hierarchyID(ctx)
	var req model.LeadRequest
	if err := h.decode(ctx, &req); err != nil {
		return err
	}
	lead, err := hierarchy.NewLead(req.Name, req.Value)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		h.log.Warn("blank lead name", zap.String("id", id), zap.Float64("value", req.Value))
	}

	node, risk, err := h.store.Assign(id, lead)
	if err != nil {
		return err
	}
	h.metrics.RecordAssignment(node != nil)
	return writeJSON(ctx, fasthttp.StatusOK, model.AssignmentResponse{
		Assigned:  node != nil,
		Node:      node,
		TotalRisk: risk,
	})
}

func (h *Handler) inventory(ctx *fasthttp.RequestCtx) error {
	var req model.InventoryRequest
	if err := h.decode(ctx, &req); err != nil {
		return err
	}
	var opts []inventory.Option
	if req.Freq {
		opts = append(opts, inventory.WithFreq())
	}
	res := inventory.Parse(req.Inventory, opts...)
	return writeJSON(ctx, fasthttp.StatusOK, model.InventoryResponse{
		List:  res.List,
		Count: res.Count,
		Freq:  res.Freq,
	})
}

func (h *Handler) decode(ctx *fasthttp.RequestCtx, v any) error {
	if len(ctx.PostBody()) == 0 {
		return apperr.BadRequest("request body is empty")
	}
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		return apperr.Wrap(apperr.KindBadRequest, "Invalid request body: "+err.Error(), err)
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperr.Wrap(apperr.KindValidation,
				fmt.Sprintf("field %s failed %s validation", fe.Namespace(), fe.Tag()), err)
		}
		return apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	return nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode response", err)
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
	return nil
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := apperr.Status(err)
	message := err.Error()
	if status >= fasthttp.StatusInternalServerError {
		h.log.Error("request failed", zap.ByteString("path", ctx.Path()), zap.Error(err))
		message = "internal error"
	}
	body, _ := json.Marshal(model.ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
