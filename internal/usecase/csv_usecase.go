package usecase

import (
	"context"
	"io"
)

// CSVUsecase moves products and orders in and out as CSV documents.
type CSVUsecase interface {
	ExportProducts(ctx context.Context, w io.Writer) error
	// ImportProducts creates one product per row. Rows naming an unknown supplier are skipped.
	ImportProducts(ctx context.Context, r io.Reader) ([]*ProductResponse, error)
	ExportOrders(ctx context.Context, w io.Writer) error
	// ImportOrders creates one order per row. Rows naming an unknown user are skipped,
	// unknown product ids are dropped and totals are recomputed.
	ImportOrders(ctx context.Context, r io.Reader) ([]*OrderResponse, error)
}
