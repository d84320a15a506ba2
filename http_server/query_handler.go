package http_server

import (
	"context"
	"net/http"
	"time"

	"github.com/duckview/duckview/result"
	"github.com/duckview/duckview/utils"
)

type (
	QueryReqBody struct {
		SQL string `validate:"required"`
	}

	QueryResBody struct {
		Columns []result.Column
		Rows    [][]any
		NumRows int
		TimeMS  int64
	}

	ExecResBody struct {
		RowsAffected int64
		TimeMS       int64
	}
)

func (s *HTTPServer) QueryHandler(c *CustomContext) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second*time.Duration(utils.QUERY_TIMEOUT_SEC))
	defer cancel()

	var reqBody QueryReqBody
	if err := ValidateRequest(c, &reqBody); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	set, err := s.conn.Query(ctx, reqBody.SQL)
	if err != nil {
		// query errors are user errors here (bad SQL against their own db)
		return c.String(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, QueryResBody{
		Columns: set.Columns,
		Rows:    set.Rows,
		NumRows: set.NumRows(),
		TimeMS:  time.Since(start).Milliseconds(),
	})
}

func (s *HTTPServer) ExecHandler(c *CustomContext) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second*time.Duration(utils.QUERY_TIMEOUT_SEC))
	defer cancel()

	var reqBody QueryReqBody
	if err := ValidateRequest(c, &reqBody); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	n, err := s.conn.Exec(ctx, reqBody.SQL)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, ExecResBody{
		RowsAffected: n,
		TimeMS:       time.Since(start).Milliseconds(),
	})
}
