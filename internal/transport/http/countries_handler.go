package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/logger"
)

// CountriesHandler serves the country reference table.
type CountriesHandler struct {
	lister    app.CountryLister
	directory app.CountryDirectory
	log       *zap.Logger
}

func NewCountriesHandler(lister app.CountryLister, directory app.CountryDirectory, log *zap.Logger) *CountriesHandler {
	return &CountriesHandler{lister: lister, directory: directory, log: logger.OrNop(log)}
}

func (h *CountriesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/countries", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/countries/{id}", h.Get).Methods(http.MethodGet)
}

func (h *CountriesHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.lister.ListCountries(r.Context())
	if err != nil {
		h.log.Error("list countries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list countries")
		return
	}
	if countries == nil {
		countries = []domain.Country{}
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *CountriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	country, err := h.directory.GetCountry(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrCountryNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.log.Error("get country failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load country")
		return
	}
	writeJSON(w, http.StatusOK, country)
}
