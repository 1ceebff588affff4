package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"climate-science-service/auth"
	"climate-science-service/query"
)

func setupAuthorshipRoutes(router *gin.Engine, env *serverEnv) {
	registerLinkRoutes(router, env, "authorship",
		query.LinkSpec{Table: "authorship", Left: "person_id", Right: "publication_id"},
		"publicationId")
}

func setupSignatoryRoutes(router *gin.Engine, env *serverEnv) {
	registerLinkRoutes(router, env, "signatory",
		query.LinkSpec{Table: "signatory", Left: "person_id", Right: "declaration_id"},
		"declarationId")
}

// registerLinkRoutes wires the idempotent create/delete pair for one linking
// table. Creation answers 201 with the new resource URI, or 200 with no body
// when the link already exists; deletion answers 200 whether or not a row
// was there to remove.
func registerLinkRoutes(router *gin.Engine, env *serverEnv, family string, link query.LinkSpec, rightParam string) {
	rg := router.Group("/" + family)
	rg.Use(auth.RequireAuth(env.tokens, env.log))

	rg.PUT("/:personId/:"+rightParam, func(c *gin.Context) {
		personID, rightID, ok := linkIDs(c, rightParam)
		if !ok {
			return
		}
		row, err := env.exec.Row(link.Count(personID, rightID))
		if err != nil {
			env.fail(c, err)
			return
		}
		if query.Int(row["count"]) > 0 {
			c.Status(http.StatusOK)
			return
		}
		sqlText, args := link.Insert(personID, rightID)
		if err := env.exec.Exec(sqlText, args...); err != nil {
			env.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, fmt.Sprintf("/%s/%d/%d", family, personID, rightID))
	})

	rg.DELETE("/:personId/:"+rightParam, func(c *gin.Context) {
		personID, rightID, ok := linkIDs(c, rightParam)
		if !ok {
			return
		}
		row, err := env.exec.Row(link.Count(personID, rightID))
		if err != nil {
			env.fail(c, err)
			return
		}
		if query.Int(row["count"]) > 0 {
			sqlText, args := link.Delete(personID, rightID)
			if err := env.exec.Exec(sqlText, args...); err != nil {
				env.fail(c, err)
				return
			}
		}
		c.Status(http.StatusOK)
	})
}

func linkIDs(c *gin.Context, rightParam string) (int, int, bool) {
	personID, err := strconv.Atoi(c.Param("personId"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, 0, false
	}
	rightID, err := strconv.Atoi(c.Param(rightParam))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, 0, false
	}
	return personID, rightID, true
}
