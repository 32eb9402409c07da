package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harsh-gohil-129/inventory-management-app/internal/core"
	"github.com/harsh-gohil-129/inventory-management-app/internal/logging"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Server is Running..."))
}

// handleListProducts returns every product for the admin table.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.ListProducts(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"productData": products})
}

// handleCreateProduct creates a product from a multipart form. An attached
// image file is handed to the upload collaborator; the product only ever
// stores the resulting URI.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Uploads.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(s.cfg.Uploads.MaxImageSize); err != nil {
		s.respondError(w, r, &core.ValidationError{Message: "invalid multipart form"})
		return
	}

	input := core.CreateProductInput{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Brand:    r.FormValue("brand"),
		Price:    r.FormValue("price"),
		Stock:    r.FormValue("stock"),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, s.cfg.Uploads.MaxImageSize))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		uri, err := s.uploader.Upload(r.Context(), header.Filename, data)
		if err != nil {
			s.respondError(w, r, &core.ValidationError{Field: "image", Message: err.Error()})
			return
		}
		input.Image = uri
	}

	product, err := s.service.CreateProduct(r.Context(), input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

// handleUpdateProduct performs a full-field replace from a JSON body.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	var input core.UpdateProductInput
	if err := decodeJSON(r, &input); err != nil {
		s.respondError(w, r, &core.ValidationError{Message: "invalid JSON body"})
		return
	}

	product, err := s.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": product})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	deleted, err := s.service.DeleteProduct(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Deleted successfully",
		"id":      deleted,
	})
}

func (s *Server) handleProductHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	history, err := s.service.GetHistory(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

// handleExport streams the full product set as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=product-export.csv`)

	if err := s.service.ExportCSV(r.Context(), w); err != nil {
		// Nothing has been written yet on the empty-dataset path; reset the
		// headers and answer with the structured error instead.
		w.Header().Del("Content-Disposition")
		s.respondError(w, r, err)
		return
	}
}

// handleImport runs one CSV import batch and returns the reconciliation
// report. A transient store fault mid-batch still returns the partial
// report, alongside the error payload semantics of respondError.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		s.respondError(w, r, &core.ValidationError{Message: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, &core.ValidationError{Field: "file", Message: "no file uploaded"})
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	logger := logging.WithFields(ctx, "file", header.Filename)
	logger.Info("import started", "size", header.Size)

	report, err := s.service.ImportProducts(ctx, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Import process finished.",
		"added":      report.Added,
		"skipped":    report.Skipped,
		"duplicates": report.Duplicates,
		"errors":     report.Errors,
	})
}

// productID parses the {id} route parameter, answering 404 on garbage since
// a non-numeric id can never resolve to a product.
func (s *Server) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, core.ErrNotFound)
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
