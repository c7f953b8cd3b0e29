package api

import (
	"embed"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SanteonNL/welfare/cmd/welfare/output"
	"github.com/SanteonNL/welfare/cmd/welfare/session"
	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// WelfareRouter serves the search form, result table and exports
type WelfareRouter struct {
	fetcher session.Fetcher
	tmpl    *template.Template
	log     zerolog.Logger
}

func NewWelfareRouter(fetcher session.Fetcher, log zerolog.Logger) (*WelfareRouter, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &WelfareRouter{
		fetcher: fetcher,
		tmpl:    tmpl,
		log:     log,
	}, nil
}

func (wr *WelfareRouter) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(wr.logRequests)

	r.HandleFunc("/", wr.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/search", wr.handleSearch).Methods(http.MethodPost)
	r.HandleFunc("/export/{format}", wr.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	return r
}

// pageView is the data the index template renders
type pageView struct {
	LifeStages     welfare.CodeTable
	TargetGroups   welfare.CodeTable
	InterestThemes welfare.CodeTable
	PageSizes      []int
	Columns        []string
	Filter         welfare.SearchFilter
	State          *session.State
	Notice         *session.Notice
	Records        []welfare.ServiceRecord
	CSVURL         string
	XLSXURL        string
}

func newPageView(filter welfare.SearchFilter) pageView {
	return pageView{
		LifeStages:     welfare.LifeStages,
		TargetGroups:   welfare.TargetGroups,
		InterestThemes: welfare.InterestThemes,
		PageSizes:      welfare.PageSizes,
		Columns:        welfare.Columns(),
		Filter:         filter,
	}
}

func (wr *WelfareRouter) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := welfare.SearchFilter{PageNumber: 1, PageSize: welfare.DefaultPageSize}
	wr.render(w, http.StatusOK, newPageView(filter))
}

func (wr *WelfareRouter) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		wr.renderError(w, http.StatusBadRequest, err)
		return
	}
	filter, err := filterFromValues(r.PostForm)
	if err != nil {
		wr.renderError(w, http.StatusBadRequest, err)
		return
	}

	// page state travels with the form
	count, _ := strconv.Atoi(r.PostForm.Get("count"))
	current := session.State{Filter: filter, LastCount: count}

	var state session.State
	action := r.PostForm.Get("action")
	switch action {
	case "next":
		state = session.Next(r.Context(), wr.fetcher, current)
	case "prev":
		state = session.Prev(r.Context(), wr.fetcher, current)
	case "first":
		state = session.First(r.Context(), wr.fetcher, current)
	default:
		state = session.Submit(r.Context(), wr.fetcher, filter)
	}

	if state.Err != nil {
		wr.log.Error().Err(state.Err).
			Str("action", action).
			Int("page", state.Page()).
			Msg("Search failed")
	}

	view := newPageView(state.Filter)
	notice := session.NoticeFor(state)
	view.State = &state
	view.Notice = &notice
	view.Records = state.Records
	if len(state.Records) > 0 {
		query := exportQuery(state.Filter, len(state.Records))
		view.CSVURL = "/export/csv?" + query
		view.XLSXURL = "/export/xlsx?" + query
	}
	wr.render(w, http.StatusOK, view)
}

func (wr *WelfareRouter) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := output.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	filter, err := filterFromValues(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := wr.fetcher.Fetch(r.Context(), filter)
	if err != nil {
		wr.log.Error().Err(err).Int("page", filter.PageNumber).Msg("Export fetch failed")
		notice := session.NoticeFor(session.State{Filter: filter, Err: err})
		http.Error(w, notice.Text, http.StatusBadGateway)
		return
	}

	// count is the size of the page the user saw; a different size means the
	// results changed since it was rendered.
	if v := r.URL.Query().Get("count"); v != "" {
		if count, err := strconv.Atoi(v); err == nil && count != len(res.Records) {
			wr.log.Warn().
				Int("shown", count).
				Int("fetched", len(res.Records)).
				Int("page", filter.PageNumber).
				Msg("Export does not match the displayed page")
			http.Error(w, "검색 결과가 변경되었습니다. 다시 검색해 주세요.", http.StatusConflict)
			return
		}
	}

	data, err := output.Encode(res.Records, format)
	if err != nil {
		wr.log.Error().Err(err).Str("format", string(format)).Msg("Export encoding failed")
		http.Error(w, "failed to encode export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": output.FileName(filter.PageNumber, format),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (wr *WelfareRouter) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := wr.tmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		wr.log.Error().Err(err).Msg("Failed to render page")
	}
}

func (wr *WelfareRouter) renderError(w http.ResponseWriter, status int, err error) {
	view := newPageView(welfare.SearchFilter{PageNumber: 1, PageSize: welfare.DefaultPageSize})
	view.Notice = &session.Notice{Kind: session.NoticeError, Text: "잘못된 검색 조건입니다.", Detail: err.Error()}
	wr.render(w, status, view)
}

func (wr *WelfareRouter) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		wr.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

// Helper functions

// filterFromValues reads a filter from form or query values. Missing page and
// rows fall back to page 1 and the default page size.
func filterFromValues(values url.Values) (welfare.SearchFilter, error) {
	filter := welfare.SearchFilter{
		LifeStage:     values.Get("life"),
		TargetGroup:   values.Get("target"),
		InterestTheme: values.Get("theme"),
		PageNumber:    1,
		PageSize:      welfare.DefaultPageSize,
	}
	if v := values.Get("rows"); v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid rows %q", v)
		}
		filter.PageSize = rows
	}
	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid page %q", v)
		}
		filter.PageNumber = page
	}
	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}

func exportQuery(filter welfare.SearchFilter, count int) string {
	values := url.Values{}
	values.Set("count", strconv.Itoa(count))
	values.Set("life", filter.LifeStage)
	values.Set("target", filter.TargetGroup)
	values.Set("theme", filter.InterestTheme)
	values.Set("rows", strconv.Itoa(filter.PageSize))
	values.Set("page", strconv.Itoa(filter.PageNumber))
	return values.Encode()
}
