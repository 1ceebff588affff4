package main

import (
	"github.com/gin-gonic/gin"

	"climate-science-service/models"
	"climate-science-service/query"
)

var declarationSpec = query.Spec{
	Table:        "declaration",
	Fields:       models.DeclarationFields,
	DefaultOrder: "date DESC",
}

func setupDeclarationRoutes(router *gin.Engine, env *serverEnv) {
	rg := router.Group("/declaration")

	rg.GET("/find", env.handleFindAll(declarationSpec, "declarations"))
	rg.GET("/findBySignatory", env.handleFindByRelated(declarationSpec,
		query.Related{LinkTable: "signatory", LinkColumn: "declaration_id", NameColumn: "signatories"},
		"declarations"))
	rg.GET("/:id", env.handleGetByID(declarationSpec))
}
