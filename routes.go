package main

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"climate-science-service/export"
	"climate-science-service/query"
)

// buildFunc assembles the statement pair for one list endpoint. Returning
// false means the handler already wrote an error status.
type buildFunc func(c *gin.Context, params map[string]string, orderBy string) (query.Statement, bool)

// listHandler is the shared skeleton of every paginated endpoint: normalize
// parameters, validate the window and sort expression, build the statement
// pair, execute, render.
func (env *serverEnv) listHandler(spec query.Spec, title string, build buildFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := query.Normalize(c.Request.URL.Query(), query.FindDefaults)
		start, count, err := query.Window(params)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		orderBy, err := query.OrderBy(params["sort"], spec.DefaultOrder)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		stmt, ok := build(c, params, orderBy)
		if !ok {
			return
		}
		result, err := env.exec.Rows(stmt, start, count)
		if err != nil {
			env.fail(c, err)
			return
		}
		env.writeList(c, title, params["contentType"], result)
	}
}

func (env *serverEnv) handleGetByID(spec query.Spec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		record, err := env.exec.Row(spec.ByID(id))
		if err != nil {
			env.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func (env *serverEnv) handleFindAll(spec query.Spec, title string) gin.HandlerFunc {
	return env.listHandler(spec, title, func(c *gin.Context, params map[string]string, orderBy string) (query.Statement, bool) {
		return spec.FindAll(params["filter"], orderBy), true
	})
}

func (env *serverEnv) handleFindByLink(spec query.Spec, join query.Join, idParam, title string) gin.HandlerFunc {
	return env.listHandler(spec, title, func(c *gin.Context, params map[string]string, orderBy string) (query.Statement, bool) {
		id, ok := requireIntQuery(c, idParam)
		if !ok {
			return query.Statement{}, false
		}
		return spec.FindByLink(join, id, params["filter"], orderBy), true
	})
}

func (env *serverEnv) handleFindByRelated(spec query.Spec, related query.Related, title string) gin.HandlerFunc {
	return env.listHandler(spec, title, func(c *gin.Context, params map[string]string, orderBy string) (query.Statement, bool) {
		personID, ok := requireIntQuery(c, "personId")
		if !ok {
			return query.Statement{}, false
		}
		return spec.FindByRelated(related, personID, c.Query("lastName"), params["filter"], orderBy), true
	})
}

func (env *serverEnv) handleFindByOwner(spec query.Spec, ownerColumn, nameColumn, title string) gin.HandlerFunc {
	return env.listHandler(spec, title, func(c *gin.Context, params map[string]string, orderBy string) (query.Statement, bool) {
		personID, ok := requireIntQuery(c, "personId")
		if !ok {
			return query.Statement{}, false
		}
		return spec.FindByOwner(ownerColumn, nameColumn, personID, c.Query("lastName"), params["filter"], orderBy), true
	})
}

// requireIntQuery reads a mandatory numeric query parameter; a missing or
// malformed value aborts the request with 400.
func requireIntQuery(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, false
	}
	return value, true
}

// writeList renders a result set in the negotiated format. JSON is the
// passthrough default; the tabular formats are offered as downloads.
func (env *serverEnv) writeList(c *gin.Context, title, override string, result *query.ResultSet) {
	switch export.Negotiate(override, c.GetHeader("Accept")) {
	case export.MIMETSV:
		var buf bytes.Buffer
		if err := export.WriteTSV(&buf, result); err != nil {
			env.log.Error("rendering tsv failed", zap.String("title", title), zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+title+`.tsv"`)
		c.Data(http.StatusOK, export.MIMETSV, buf.Bytes())
	case export.MIMEPDF:
		document, err := env.pdf.Render(title, result)
		if err != nil {
			env.log.Error("rendering pdf failed", zap.String("title", title), zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+title+`.pdf"`)
		c.Data(http.StatusOK, export.MIMEPDF, document)
	default:
		c.JSON(http.StatusOK, result)
	}
}

// fail maps executor errors to status codes: statement misconfiguration is a
// server fault, everything else collapses to 404 like the wire contract
// demands. Store failures beyond a plain row miss get logged.
func (env *serverEnv) fail(c *gin.Context, err error) {
	if errors.Is(err, query.ErrBadStatement) {
		env.log.Error("statement misconfiguration", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err != query.ErrNotFound { // a wrapped error means the store failed, not just an empty result
		env.log.Warn("query failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.AbortWithStatus(http.StatusNotFound)
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}
