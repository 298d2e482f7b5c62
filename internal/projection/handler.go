package projection

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	httperr "github.com/aevon-lab/login-usage/internal/core/errors"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/gin-gonic/gin"
)

const (
	modeRaw = "raw"
	modeCSV = "csv"
)

// RegisterRoutes registers the usage API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	for _, path := range []string{"/v1/usage/login", "/v1/usage/login/:mode"} {
		r.GET(path, s.HandleLoginUsage)
		r.POST(path, s.HandleLoginUsage)
	}
}

// HandleLoginUsage handles GET|POST /v1/usage/login[/:mode]
// Parameters: start, end, aggregate (query string or form body), content_type
// for mode raw.
func (s *Service) HandleLoginUsage(c *gin.Context) {
	mode := c.Param("mode")
	if mode == modeRaw && c.Query("content_type") == modeCSV {
		mode = modeCSV
	}
	switch mode {
	case "", modeRaw, modeCSV:
	default:
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Unsupported output mode",
			Details:   mode,
		})
		return
	}

	req, err := ParseRequest(c.Request.FormValue("start"), c.Request.FormValue("end"), c.Request.FormValue("aggregate"))
	if err == nil {
		var resp *UsageResponse
		resp, err = s.Usage(c.Request.Context(), req)
		if err == nil {
			writeUsage(c, mode, resp)
			return
		}
	}

	switch {
	case errors.Is(err, usage.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRangeError,
			Message:   "Invalid date range",
			Details:   err.Error(),
		})
	case errors.Is(err, usage.ErrInvalidAggregation):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidAggregationError,
			Message:   "Invalid aggregation",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query login usage",
			Details:   err.Error(),
		})
	}
}

func writeUsage(c *gin.Context, mode string, resp *UsageResponse) {
	switch mode {
	case modeRaw:
		c.JSON(http.StatusOK, resp.Data)
	case modeCSV:
		body, err := EncodeCSV(resp.Data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to encode csv",
				Details:   err.Error(),
			})
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

// EncodeCSV renders interval counts as "interval_start,unique_users" rows
// with a header line.
func EncodeCSV(data []usage.IntervalCount) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"interval_start", "unique_users"}); err != nil {
		return nil, err
	}
	for _, row := range data {
		if err := w.Write([]string{
			row.IntervalStart.UTC().Format(time.RFC3339),
			strconv.Itoa(row.UniqueUsers),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
