package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"climate-science-service/auth"
	"climate-science-service/models"
	"climate-science-service/query"
)

var quotationSpec = query.Spec{
	Table:        "quotation",
	Fields:       models.QuotationFields,
	DefaultOrder: "date DESC",
}

func setupQuotationRoutes(router *gin.Engine, env *serverEnv) {
	rg := router.Group("/quotation")
	rg.Use(auth.RequireAuth(env.tokens, env.log))

	rg.GET("/find", env.handleFindAll(quotationSpec, "quotations"))
	rg.GET("/findByAuthor", env.handleFindByOwner(quotationSpec, "person_id", "author", "quotations"))
	rg.GET("/:id", env.handleGetByID(quotationSpec))

	// PATCH /quotation/{id}?personId=N attributes the quotation to a person;
	// an empty personId removes the attribution.
	rg.PATCH("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		var personID any
		if value := c.Query("personId"); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			personID = parsed
		}
		if err := env.exec.Exec("UPDATE quotation SET person_id=? WHERE id=?", personID, id); err != nil {
			env.log.Warn("linking quotation author failed",
				zap.String("id", c.Param("id")), zap.Error(err))
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
}
