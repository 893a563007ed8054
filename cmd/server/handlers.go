package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/Simplici0/lavender/internal/chart"
	"github.com/Simplici0/lavender/internal/defaults"
	"github.com/Simplici0/lavender/internal/input"
	"github.com/Simplici0/lavender/internal/pricing"
	"github.com/Simplici0/lavender/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	Authenticated  bool
}

type loginViewData struct {
	baseViewData
	Email string
}

type fieldView struct {
	Name  string
	Label string
	Value string
	Step  string
}

type chartsData struct {
	Strategies chart.Spec `json:"strategies"`
	Breakdown  chart.Spec `json:"breakdown"`
}

type calculatorViewData struct {
	baseViewData
	Fields []fieldView
	View   report.View
	Charts chartsData
}

type defaultsViewData struct {
	baseViewData
	Fields []fieldView
}

type quoteResponse struct {
	Quote  pricing.Quote `json:"quote"`
	View   report.View   `json:"view"`
	Charts chartsData    `json:"charts"`
}

var fieldLabels = map[string]string{
	input.FieldCostPerUnit:       "Material cost per unit",
	input.FieldShippingMaterials: "Shipping materials (total)",
	input.FieldNumUnits:          "Number of units",
	input.FieldTimeHours:         "Production time (hours)",
	input.FieldHourlyRate:        "Hourly rate",
	input.FieldDesignHours:       "Design time (hours)",
	input.FieldCommsHours:        "Client communication (hours)",
	input.FieldShippingHours:     "Packing & shipping (hours)",
	input.FieldCustomPrice:       "Desired price per unit (HT)",
}

func fieldViews(raw map[string]string) []fieldView {
	views := make([]fieldView, 0, len(input.Fields))
	for _, field := range input.Fields {
		step := "0.01"
		if field == input.FieldNumUnits {
			step = "1"
		}
		views = append(views, fieldView{Name: field, Label: fieldLabels[field], Value: raw[field], Step: step})
	}
	return views
}

func newCharts(q pricing.Quote) chartsData {
	return chartsData{Strategies: chart.Strategies(q), Breakdown: chart.Breakdown(q.Costs)}
}

func submittedAny(values url.Values) bool {
	for _, field := range input.Fields {
		if _, ok := values[field]; ok {
			return true
		}
	}
	return false
}

// calculatorForm reads the request's inputs. A request carrying no field at all starts
// from the stored defaults; reset=1 starts from a blank form.
func (s *server) calculatorForm(r *http.Request) (input.Form, error) {
	if err := r.ParseForm(); err != nil {
		return input.Form{}, err
	}
	if r.Form.Get("reset") == "1" {
		return input.Blank(), nil
	}

	form := input.Parse(r.Form)
	if submittedAny(r.Form) {
		return form, nil
	}

	stored, err := s.defaults.Get(r.Context())
	if err != nil {
		return input.Form{}, err
	}
	return form.Merge(stored), nil
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	form, err := s.calculatorForm(r)
	if err != nil {
		s.logger.Error("load calculator form", zap.Error(err))
		http.Error(w, "failed to load form", http.StatusInternalServerError)
		return
	}

	q := form.Quote()
	s.renderTemplate(w, http.StatusOK, "calculator.html", calculatorViewData{
		baseViewData: baseViewData{Authenticated: s.auth.isAuthenticated(r)},
		Fields:       fieldViews(form.Raw),
		View:         report.NewView(q, s.formatter),
		Charts:       newCharts(q),
	})
}

func (s *server) handleQuoteAPI(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	q := input.Parse(r.Form).Quote()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(quoteResponse{
		Quote:  q,
		View:   report.NewView(q, s.formatter),
		Charts: newCharts(q),
	}); err != nil {
		s.logger.Error("encode quote response", zap.Error(err))
		http.Error(w, "failed to encode quote", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	form, err := s.calculatorForm(r)
	if err != nil {
		s.logger.Error("load quote form", zap.Error(err))
		http.Error(w, "failed to load form", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.WriteText(w, report.NewView(form.Quote(), s.formatter)); err != nil {
		s.logger.Error("write quote text", zap.Error(err))
	}
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.auth.isAuthenticated(r) {
		http.Redirect(w, r, "/admin/defaults", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r, email, password)
	if err != nil {
		s.logger.Error("validate credentials", zap.Error(err))
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		s.logger.Warn("login rejected", zap.String("email", email))
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: "Invalid email or password."},
			Email:        email,
		})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/admin/defaults", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleAdminDefaultsForm(w http.ResponseWriter, r *http.Request) {
	values, err := s.defaults.Get(r.Context())
	if err != nil {
		s.logger.Error("load form defaults", zap.Error(err))
		http.Error(w, "failed to load defaults", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "admin_defaults.html", defaultsViewData{
		baseViewData: baseViewData{Authenticated: true},
		Fields:       fieldViews(values),
	})
}

func (s *server) handleAdminDefaultsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	values, validationErr := defaults.Validate(r.PostForm)
	if validationErr != nil {
		s.renderTemplate(w, http.StatusBadRequest, "admin_defaults.html", defaultsViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error(), Authenticated: true},
			Fields:       fieldViews(values),
		})
		return
	}

	if err := s.defaults.Update(r.Context(), values); err != nil {
		s.logger.Error("save form defaults", zap.Error(err))
		http.Error(w, "failed to save defaults", http.StatusInternalServerError)
		return
	}
	s.logger.Info("form defaults updated")

	s.renderTemplate(w, http.StatusOK, "admin_defaults.html", defaultsViewData{
		baseViewData: baseViewData{SuccessMessage: "Defaults saved.", Authenticated: true},
		Fields:       fieldViews(values),
	})
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		s.logger.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
