package main

import (
	"github.com/gin-gonic/gin"

	"climate-science-service/models"
	"climate-science-service/query"
)

var publicationSpec = query.Spec{
	Table:        "publication",
	Fields:       models.PublicationFields,
	DefaultOrder: "publication_year DESC, publication_date DESC",
}

func setupPublicationRoutes(router *gin.Engine, env *serverEnv) {
	rg := router.Group("/publication")

	rg.GET("/find", env.handleFindAll(publicationSpec, "publications"))
	rg.GET("/findByAuthor", env.handleFindByRelated(publicationSpec,
		query.Related{LinkTable: "authorship", LinkColumn: "publication_id", NameColumn: "authors"},
		"publications"))
	rg.GET("/:id", env.handleGetByID(publicationSpec))
}
