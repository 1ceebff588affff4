package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"climate-science-service/query"
)

// climateStatistics defines the categories reported for the climate topic.
// Each entry becomes one branch of the statistics union select.
var climateStatistics = []struct {
	category    string
	source      string
	description string
}{
	{"Persons", "person", "Total number of people in the database"},
	{"Publications", "publication", "Total number of publications in the database"},
	{"Declarations", "declaration", "Total number of public declarations in the database"},
	{"Quotations", "quotation", "Total number of quotations in the database"},
	{"Professors", "person WHERE title='Prof.'", "Number of university professors (past or present)"},
	{"Doctorates", "person WHERE title='Dr.'", "Number qualified to doctoral or higher level (additional to professors)"},
	{"Meteorologists", "person WHERE description LIKE '%meteorolog%' OR description LIKE '%weather%'", "Number of qualified meterologists"},
	{"Climatologists", "person WHERE description LIKE '%climatolog%'", "Number of climatologists"},
	{"IPCC", "person WHERE description LIKE '%IPCC%' AND description NOT LIKE '%NIPCC%'", "Number of scientists who work(ed) for IPCC"},
	{"NASA", "person WHERE description LIKE '%NASA%'", "Number of scientists who work(ed) for NASA"},
	{"NOAA", "person WHERE description LIKE '%NOAA%'", "Number of scientists who work(ed) for NOAA"},
	{"Nobel Laureates", "person WHERE description LIKE '%Nobel%' AND description NOT LIKE '%Akzo%'", "Number of Nobel prize recipients"},
	{"Published", "person WHERE published", "Number of scientists who have published peer-reviewed science"},
	{"Checked", "person WHERE checked", "Number of scientists whose credentials have been checked"},
}

func climateStatisticsStatement() query.Statement {
	branches := make([]string, len(climateStatistics))
	for i, s := range climateStatistics {
		if i == 0 {
			branches[i] = fmt.Sprintf(
				"SELECT '%s' AS category, COUNT(*) AS count, '%s' AS description FROM %s",
				s.category, s.description, s.source)
			continue
		}
		branches[i] = fmt.Sprintf("SELECT '%s', COUNT(*), '%s' FROM %s",
			s.category, s.description, s.source)
	}
	return query.Statement{
		CountSQL:  fmt.Sprintf("SELECT %d", len(climateStatistics)),
		SelectSQL: strings.Join(branches, " UNION "),
	}
}

func setupStatisticsRoutes(router *gin.Engine, env *serverEnv) {
	rg := router.Group("/statistics")

	rg.GET("/find", func(c *gin.Context) {
		params := query.Normalize(c.Request.URL.Query(), query.FindDefaults)
		start, count, err := query.Window(params)
		if err != nil || c.Query("topic") != "climate" {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		result, err := env.exec.Rows(climateStatisticsStatement(), start, count)
		if err != nil {
			env.fail(c, err)
			return
		}
		env.writeList(c, "statistics", params["contentType"], result)
	})
}
