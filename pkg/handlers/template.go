package handlers

import (
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/nilsiker/disarm/pkg/common"
	"github.com/nilsiker/disarm/pkg/expression"
	"github.com/nilsiker/disarm/pkg/helpers"
	"github.com/nilsiker/disarm/pkg/template"
)

const (
	// TemplatePath is where the template decode handler is mounted
	TemplatePath = "/api/template"
	// ExpressionPath is where the expression parse handler is mounted
	ExpressionPath = "/api/expression"
)

// LinkedTemplate is the response body when dependency linking is
// requested with the link query parameter
type LinkedTemplate struct {
	Template  *template.Template `json:"template"`
	DependsOn [][]int            `json:"dependsOn"`
}

// ParsedExpression is the response body for expression parse requests
type ParsedExpression struct {
	Expression string          `json:"expression"`
	AST        expression.Expr `json:"ast"`
}

// NewTemplateHandler is the router for template decode requests
func NewTemplateHandler() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", templateHandler)
	return r
}

// NewExpressionHandler is the router for single expression parse requests
func NewExpressionHandler() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", expressionHandler)
	return r
}

func templateHandler(w http.ResponseWriter, r *http.Request) {
	decoded, err := template.Decode(r.Body)
	if err != nil {
		log.Infof("Failed to decode template: %v", err)
		_ = render.Render(w, r, helpers.ErrorInvalidRequestFromError(err))
		return
	}

	if !getQueryParam(r, "link") {
		if err := common.WriteOutput(w, decoded, true); err != nil {
			_ = render.Render(w, r, helpers.ErrorInternal(err))
		}
		return
	}

	links, err := decoded.LinkDependencies()
	if err != nil {
		log.Infof("Failed to link template dependencies: %v", err)
		_ = render.Render(w, r, helpers.ErrorInvalidRequestFromError(err))
		return
	}
	if err := common.WriteOutput(w, LinkedTemplate{Template: decoded, DependsOn: links}, true); err != nil {
		_ = render.Render(w, r, helpers.ErrorInternal(err))
	}
}

func expressionHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := ioutil.ReadAll(r.Body)
	if err != nil {
		_ = render.Render(w, r, helpers.ErrorInvalidRequest("Failed to read request body"))
		return
	}

	node, err := expression.Parse(string(raw))
	if err != nil {
		log.Infof("Failed to parse expression: %v", err)
		_ = render.Render(w, r, helpers.ErrorInvalidRequestFromError(err))
		return
	}

	response := ParsedExpression{
		Expression: expression.Render(node),
		AST:        node,
	}
	if err := common.WriteOutput(w, response, true); err != nil {
		_ = render.Render(w, r, helpers.ErrorInternal(err))
	}
}

func getQueryParam(r *http.Request, name string) bool {
	result := false
	for k, v := range r.URL.Query() {
		// ignore multiple values
		if strings.EqualFold(k, name) && (len(v[0]) == 0 || strings.ToLower(v[0]) == "true") {
			result = true
		}
	}
	return result
}
