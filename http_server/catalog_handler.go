package http_server

import (
	"context"
	"net/http"
	"time"

	"github.com/duckview/duckview/schema"
)

type (
	TablesResBody struct {
		Tables []string
		Views  []string
	}

	TableSchemaResBody struct {
		Name        string
		Columns     []schema.ColumnInfo
		PrimaryKeys []string
	}
)

func (s *HTTPServer) TablesHandler(c *CustomContext) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second*10)
	defer cancel()

	tables, err := schema.ListTables(ctx, s.conn)
	if err != nil {
		return c.InternalError(err, "error listing tables")
	}
	views, err := schema.ListViews(ctx, s.conn)
	if err != nil {
		return c.InternalError(err, "error listing views")
	}

	return c.JSON(http.StatusOK, TablesResBody{Tables: tables, Views: views})
}

func (s *HTTPServer) TableSchemaHandler(c *CustomContext) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second*10)
	defer cancel()

	name := c.Param("name")
	cols, err := schema.Describe(ctx, s.conn, name)
	if err != nil {
		return c.String(http.StatusNotFound, err.Error())
	}
	pks, err := schema.PrimaryKeys(ctx, s.conn, name)
	if err != nil {
		return c.InternalError(err, "error reading primary keys")
	}

	return c.JSON(http.StatusOK, TableSchemaResBody{
		Name:        name,
		Columns:     cols,
		PrimaryKeys: pks,
	})
}
