package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	portfolioSaves   atomic.Int64
	portfolioResets  atomic.Int64
	portfolioExports atomic.Int64
	aiMerges         atomic.Int64
	aiMergeFailures  atomic.Int64
	chatRequests     atomic.Int64

	histMu         sync.Mutex
	pdfRenderMs    = map[float64]int64{}
	pdfRenderSum   float64
	pdfRenderCount int64
)

// Bucket upper bounds for PDF render duration in milliseconds.
var pdfRenderBuckets = []float64{100, 250, 500, 1000, 2500, 5000, 10000}

// IncPortfolioSave records one successful document save.
func IncPortfolioSave() { portfolioSaves.Add(1) }

// IncPortfolioReset records one document reset.
func IncPortfolioReset() { portfolioResets.Add(1) }

// IncPortfolioExport records one document export.
func IncPortfolioExport() { portfolioExports.Add(1) }

// IncAIMerge records one accepted AI rewrite merge.
func IncAIMerge() { aiMerges.Add(1) }

// IncAIMergeFailed records one rejected AI rewrite.
func IncAIMergeFailed() { aiMergeFailures.Add(1) }

// IncChatRequest records one chat completion request.
func IncChatRequest() { chatRequests.Add(1) }

// ObservePDFRenderMs records a PDF render duration.
func ObservePDFRenderMs(ms float64) {
	histMu.Lock()
	defer histMu.Unlock()
	for _, ub := range pdfRenderBuckets {
		if ms <= ub {
			pdfRenderMs[ub]++
		}
	}
	pdfRenderSum += ms
	pdfRenderCount++
}

// Render emits the current counters in Prometheus text exposition format.
func Render() string {
	out := ""
	counter := func(name, help string, v int64) {
		out += fmt.Sprintf("# HELP %s %s\n# TYPE %s counter\n%s %d\n", name, help, name, name, v)
	}
	counter("portfolio_saves_total", "Total document saves.", portfolioSaves.Load())
	counter("portfolio_resets_total", "Total document resets.", portfolioResets.Load())
	counter("portfolio_exports_total", "Total document exports.", portfolioExports.Load())
	counter("ai_merges_total", "Total accepted AI rewrites.", aiMerges.Load())
	counter("ai_merge_failures_total", "Total rejected AI rewrites.", aiMergeFailures.Load())
	counter("chat_requests_total", "Total chat completion requests.", chatRequests.Load())

	histMu.Lock()
	defer histMu.Unlock()
	out += "# HELP pdf_render_duration_ms PDF render duration in milliseconds.\n"
	out += "# TYPE pdf_render_duration_ms histogram\n"
	bounds := make([]float64, len(pdfRenderBuckets))
	copy(bounds, pdfRenderBuckets)
	sort.Float64s(bounds)
	for _, ub := range bounds {
		out += fmt.Sprintf("pdf_render_duration_ms_bucket{le=\"%g\"} %d\n", ub, pdfRenderMs[ub])
	}
	out += fmt.Sprintf("pdf_render_duration_ms_bucket{le=\"+Inf\"} %d\n", pdfRenderCount)
	out += fmt.Sprintf("pdf_render_duration_ms_sum %g\n", pdfRenderSum)
	out += fmt.Sprintf("pdf_render_duration_ms_count %d\n", pdfRenderCount)
	return out
}

// Handler serves the metrics endpoint.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}
