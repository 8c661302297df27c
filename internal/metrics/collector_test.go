package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestCounters(t *testing.T) {
	c := NewCollector("sales")

	c.RecordAssignment(true)
	c.RecordAssignment(true)
	c.RecordAssignment(false)
	c.RecordBuild("ok")
	c.RecordRequest("/calculate", 200)
	c.RecordRequest("/calculate", 404)
	c.ObserveEvaluation(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.leadsAssigned.WithLabelValues("assigned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.leadsAssigned.WithLabelValues("unassigned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.hierarchiesBuilt.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("/calculate", "4xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.evaluationDuration))
}

func TestHandlerServesText(t *testing.T) {
	c := NewCollector("sales")
	c.RecordBuild("failed")

	var req fasthttp.Request
	req.SetRequestURI("/metrics")
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	c.Handler()(&ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `sales_hierarchies_built_total{result="failed"} 1`)
}
