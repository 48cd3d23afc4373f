package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/seedstock/internal/common"
	"github.com/dmitrijs2005/seedstock/internal/server/models"
	"github.com/gorilla/mux"
)

const (
	uploadFormField  = "file"
	archiveKeyHeader = "X-Archive-Key"
)

// writeProductError maps a ProductService error onto a response.
func (s *HTTPServer) writeProductError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "Product already exists")
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "product store failure", "error", err.Error(), "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *HTTPServer) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		s.writeProductError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Product{}
	}
	_ = writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeProductError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) createProduct(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.products.Create(r.Context(), req.ID, req.ProductFields)
	if err != nil {
		s.writeProductError(w, r, err)
		return
	}

	subject, _ := SubjectFromContext(r.Context())
	s.logger.Debug(r.Context(), "product created", "id", p.ID, "account", subject)
	_ = writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) importProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.ContentLength > s.maxUploadBytes {
		s.writeUploadTooLarge(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		if isTooLarge(err) {
			s.writeUploadTooLarge(w)
			return
		}
		writeError(w, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			s.writeUploadTooLarge(w)
			return
		}
		writeError(w, http.StatusBadRequest, "CSV file could not be read")
		return
	}

	created, key, err := s.products.ImportCSV(ctx, header.Filename, data)
	if key != "" {
		w.Header().Set(archiveKeyHeader, key)
	}
	if err != nil {
		s.writeProductError(w, r, err)
		return
	}

	subject, _ := SubjectFromContext(ctx)
	s.logger.Info(ctx, "products imported", "count", len(created), "archive_key", key, "account", subject)
	_ = writeJSON(w, http.StatusOK, created)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (s *HTTPServer) writeUploadTooLarge(w http.ResponseWriter) {
	writeError(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Upload exceeds the %d byte limit", s.maxUploadBytes))
}

func (s *HTTPServer) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.products.Update(r.Context(), mux.Vars(r)["id"], req.ProductFields)
	if err != nil {
		s.writeProductError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) deleteProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeProductError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, p)
}
