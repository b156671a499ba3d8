package http

import (
	"bytes"
	"net/http"

	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
)

const csvContentType = "text/csv; charset=utf-8"

func (s *Server) importEntity(w http.ResponseWriter, r *http.Request) {
	e, err := usecase.ParseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	result, err := s.uc.Transfer.Import(r.Context(), e, body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, result)
}

func (s *Server) exportEntity(w http.ResponseWriter, r *http.Request) {
	e, err := usecase.ParseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.uc.Transfer.Export(r.Context(), e, &buf); err != nil {
		handleError(w, r, err)
		return
	}
	writeCSV(w, r, string(e)+".csv", buf.Bytes())
}

func (s *Server) template(w http.ResponseWriter, r *http.Request) {
	e, err := usecase.ParseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.uc.Transfer.Template(e, &buf); err != nil {
		handleError(w, r, err)
		return
	}
	writeCSV(w, r, string(e)+"_template.csv", buf.Bytes())
}

func (s *Server) exportAll(w http.ResponseWriter, r *http.Request) {
	files, err := s.uc.Transfer.ExportAll(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, files)
}

func writeCSV(w http.ResponseWriter, r *http.Request, filename string, body []byte) {
	w.Header().Set("Content-Type", csvContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, body)
}
