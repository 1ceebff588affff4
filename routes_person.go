package main

import (
	"github.com/gin-gonic/gin"

	"climate-science-service/models"
	"climate-science-service/query"
)

var personSpec = query.Spec{
	Table:        "person",
	Fields:       models.PersonFields,
	DefaultOrder: "last_name, first_name",
}

func setupPersonRoutes(router *gin.Engine, env *serverEnv) {
	rg := router.Group("/person")

	rg.GET("/find", env.handleFindAll(personSpec, "persons"))
	rg.GET("/findByPublication", env.handleFindByLink(personSpec,
		query.Join{Table: "authorship", On: "person_id", Where: "publication_id"},
		"publicationId", "authors"))
	rg.GET("/findByDeclaration", env.handleFindByLink(personSpec,
		query.Join{Table: "signatory", On: "person_id", Where: "declaration_id"},
		"declarationId", "signatories"))
	rg.GET("/:id", env.handleGetByID(personSpec))
}
