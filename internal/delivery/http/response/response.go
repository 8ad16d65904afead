// Package response writes the JSON bodies of successful requests.
package response

import (
	"net/http"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OK writes data with status 200.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// Created writes data with status 201.
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// Message writes a {"message": ...} body with status 200.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, usecase.MessageResponse{Message: message})
}

// Attachment streams body as a downloadable file.
func Attachment(c echo.Context, contentType, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	return c.Blob(http.StatusOK, contentType, body)
}
