package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"inventory/config"
	"inventory/internal/delivery/http/response"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	csvFormField   = "file"
	csvContentType = "text/csv"
)

// CSVHandler exports and imports products and orders as CSV files.
type CSVHandler struct {
	uc            usecase.CSVUsecase
	maxUploadSize int64
}

func NewCSVHandler(uc usecase.CSVUsecase, cfg *config.Config) *CSVHandler {
	return &CSVHandler{uc: uc, maxUploadSize: cfg.CSV.MaxUploadSize}
}

func (h *CSVHandler) ExportProducts(c echo.Context) error {
	return h.export(c, "products.csv", h.uc.ExportProducts)
}

func (h *CSVHandler) ExportOrders(c echo.Context) error {
	return h.export(c, "orders.csv", h.uc.ExportOrders)
}

func (h *CSVHandler) ImportProducts(c echo.Context) error {
	file, err := h.openUpload(c)
	if err != nil {
		return err
	}
	defer file.Close()

	output, err := h.uc.ImportProducts(c.Request().Context(), file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

func (h *CSVHandler) ImportOrders(c echo.Context) error {
	file, err := h.openUpload(c)
	if err != nil {
		return err
	}
	defer file.Close()

	output, err := h.uc.ImportOrders(c.Request().Context(), file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// export renders the whole file before writing headers so a failure still yields an error envelope.
func (h *CSVHandler) export(c echo.Context, filename string, write func(context.Context, io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(c.Request().Context(), &buf); err != nil {
		return errors.WithStack(err)
	}

	return response.Attachment(c, csvContentType, filename, buf.Bytes())
}

func (h *CSVHandler) openUpload(c echo.Context) (io.ReadCloser, error) {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxUploadSize)

	header, err := c.FormFile(csvFormField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, echo.ErrStatusRequestEntityTooLarge
		}

		return nil, domainerrors.ErrInvalidCSV.WithMessagef("Missing CSV file in form field %q", csvFormField)
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}

	return file, nil
}
