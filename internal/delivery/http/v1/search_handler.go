package v1

import (
	"net/http"
	"strconv"

	"catalog-search-backend/internal/domain"
	"catalog-search-backend/pkg/utils"
)

type SearchHandler struct {
	searchUC     domain.SearchUsecase
	defaultLimit int
	maxLimit     int
}

func NewSearchHandler(searchUC domain.SearchUsecase, defaultLimit, maxLimit int) *SearchHandler {
	return &SearchHandler{
		searchUC:     searchUC,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// bindFilter maps query parameters onto the validated filter value object.
// colors/categories accept repeated params (?colors=red&colors=blue).
func (h *SearchHandler) bindFilter(r *http.Request) (domain.SearchFilter, error) {
	query := r.URL.Query()

	in := domain.SearchFilterInput{
		Query:      query.Get("q"),
		Colors:     query["colors"],
		Categories: query["categories"],
		Sort:       query.Get("sort"),
	}

	if val := query.Get("min_price"); val != "" {
		p, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return domain.SearchFilter{}, domain.NewValidationError("min_price", "must be an integer")
		}
		in.MinPrice = &p
	}
	if val := query.Get("max_price"); val != "" {
		p, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return domain.SearchFilter{}, domain.NewValidationError("max_price", "must be an integer")
		}
		in.MaxPrice = &p
	}
	if val := query.Get("page"); val != "" {
		p, err := strconv.Atoi(val)
		if err != nil || p < 1 {
			return domain.SearchFilter{}, domain.NewValidationError("page", "must be an integer >= 1")
		}
		in.Page = p
	}
	if val := query.Get("limit"); val != "" {
		l, err := strconv.Atoi(val)
		if err != nil || l < 1 {
			return domain.SearchFilter{}, domain.NewValidationError("limit", "must be an integer >= 1")
		}
		in.Limit = l
	}

	return domain.NewSearchFilter(in, h.defaultLimit, h.maxLimit)
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := h.bindFilter(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.searchUC.Search(r.Context(), filter)
	if err != nil {
		// Never leak query structure to the caller
		utils.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *SearchHandler) Explain(w http.ResponseWriter, r *http.Request) {
	filter, err := h.bindFilter(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	explain, err := h.searchUC.Explain(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.WriteJSON(w, http.StatusOK, explain)
}

// InvalidateCache clears cached search results under search:<prefix>. With
// no prefix it clears the whole namespace.
func (h *SearchHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	if err := h.searchUC.InvalidateFilters(r.Context(), prefix); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Invalidation failed")
		return
	}

	message := "Invalidated all search cache entries"
	if prefix != "" {
		message = "Invalidated cache entries with prefix: " + prefix
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}
