package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/querybuilder"
)

// bindJSON decodes the request body into dest. An empty body leaves dest untouched so the service reports
// the missing fields.
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid JSON payload")
	}
	return nil
}

func pageFromQuery(c *gin.Context) querybuilder.Page {
	return querybuilder.ParsePage(c.Query("page"), c.Query("limit"))
}
