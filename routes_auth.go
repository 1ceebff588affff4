package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"climate-science-service/auth"
	"climate-science-service/query"
)

func setupAuthRoutes(router *gin.Engine, env *serverEnv) {
	rg := router.Group("/auth")

	rg.POST("/login", func(c *gin.Context) {
		var credentials struct {
			UserID   string `json:"userId" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&credentials); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		row, err := env.exec.Row(query.Statement{
			SelectSQL: "SELECT * FROM users WHERE id=?",
			Args:      []any{credentials.UserID},
		})
		if err != nil || !auth.VerifyPassword(stringValue(row["password_hash"]), credentials.Password) {
			env.log.Info("login rejected", zap.String("user_id", credentials.UserID))
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		token, err := env.tokens.Mint(credentials.UserID,
			stringValue(row["first_name"]),
			stringValue(row["last_name"]),
			stringValue(row["email"]))
		if err != nil {
			env.log.Error("minting token failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, token)
	})
}
