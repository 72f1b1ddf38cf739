// Package helpers agrupa utilidades compartidas por los controllers: cómo
// se convierte un flow.Outcome o un error en respuesta HTTP.
package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datacentricdesign/dcd-auth/internal/flow"
	"github.com/datacentricdesign/dcd-auth/internal/http/dto/flows"
	httperrors "github.com/datacentricdesign/dcd-auth/internal/http/errors"
	mw "github.com/datacentricdesign/dcd-auth/internal/http/middlewares"
	"github.com/datacentricdesign/dcd-auth/internal/http/views"
	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
	"github.com/datacentricdesign/dcd-auth/internal/upstream"
	"go.uber.org/zap"
)

const contentTypeJSON = "application/json; charset=utf-8"

var errEmptyRedirect = errors.New("authorization server returned an empty redirect_to")

// Responder es el único lugar que escribe respuestas de los flujos y el
// único que loguea el detalle completo de un error.
type Responder struct {
	views *views.Renderer
	base  string
}

func NewResponder(v *views.Renderer, basePath string) *Responder {
	return &Responder{views: v, base: basePath}
}

// Outcome escribe el resultado de una operación de flow.
//
//   - redirect → 302 (o {"redirect_to"} para clientes JSON)
//   - página sin error → 200; con mensaje inline → 400
//   - ValidationError con formulario → formulario a 400
//   - cualquier otro error → página de error
func (rp *Responder) Outcome(w http.ResponseWriter, r *http.Request, out flow.Outcome, err error) {
	if err != nil {
		if ve, ok := flow.AsValidation(err); ok && ve.Page != nil {
			logger.From(r.Context()).Debug("validation failed",
				logger.Flow(ve.Flow), logger.String("reason", ve.Message))
			rp.Page(w, r, http.StatusBadRequest, ve.Page)
			return
		}
		rp.Error(w, r, err)
		return
	}

	if out.IsRedirect() {
		rp.Redirect(w, r, out.RedirectTo)
		return
	}

	status := http.StatusOK
	if out.Page.ErrorMessage() != "" {
		status = http.StatusBadRequest
	}
	rp.Page(w, r, status, out.Page)
}

// Redirect envía al navegador a la URL devuelta por Hydra.
func (rp *Responder) Redirect(w http.ResponseWriter, r *http.Request, to string) {
	if to == "" {
		rp.Error(w, r, httperrors.ErrUpstreamRejected.WithCause(errEmptyRedirect))
		return
	}
	if WantsJSON(r) {
		writeJSON(w, http.StatusOK, flows.RedirectResponse{RedirectTo: to})
		return
	}
	http.Redirect(w, r, to, http.StatusFound)
}

// Page renderiza un modelo de vista.
func (rp *Responder) Page(w http.ResponseWriter, r *http.Request, status int, page flow.Page) {
	if WantsJSON(r) {
		writeJSON(w, status, flows.PageResponse{
			Page:  page.Template(),
			Error: page.ErrorMessage(),
			Data:  page,
		})
		return
	}
	if err := rp.views.Render(w, status, page.Template(), rp.data(r, page)); err != nil {
		rp.Error(w, r, err)
	}
}

// Error traduce el error a AppError, lo loguea con todo el detalle y
// responde con la página de error (o JSON). Firma compatible con
// middlewares.ErrorWriter.
func (rp *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := httperrors.FromError(err)
	if appErr == nil {
		appErr = httperrors.ErrInternalServerError
	}
	logError(r, appErr)

	if WantsJSON(r) {
		httperrors.WriteError(w, appErr)
		return
	}

	page := views.ErrorPage{Code: appErr.Code, Message: appErr.Message, Detail: appErr.Detail}
	if rerr := rp.views.Render(w, appErr.HTTPStatus, "error", rp.data(r, page)); rerr != nil {
		logger.From(r.Context()).Error("error page render failed", logger.Err(rerr))
		http.Error(w, appErr.Message, appErr.HTTPStatus)
	}
}

// NotFound es el handler para rutas desconocidas.
func (rp *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rp.Error(w, r, httperrors.ErrRouteNotFound)
}

// MethodNotAllowed es el handler para métodos no soportados.
func (rp *Responder) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	rp.Error(w, r, httperrors.ErrMethodNotAllowed)
}

func (rp *Responder) data(r *http.Request, page any) views.Data {
	return views.Data{
		Base:      rp.base,
		CSRF:      mw.GetCSRFToken(r.Context()),
		RequestID: mw.GetRequestID(r.Context()),
		Page:      page,
	}
}

func logError(r *http.Request, appErr *httperrors.AppError) {
	fields := []zap.Field{
		logger.String("code", appErr.Code),
		logger.Status(appErr.HTTPStatus),
	}
	if appErr.Err != nil {
		fields = append(fields, logger.Err(appErr.Err))
	}
	if ue, ok := upstream.As(appErr); ok {
		fields = append(fields,
			logger.Upstream(ue.Service),
			logger.String("upstream_op", ue.Op),
			logger.Int("upstream_status", ue.Status),
			logger.String("upstream_message", ue.Message),
		)
	}

	log := logger.From(r.Context())
	switch {
	case appErr.HTTPStatus >= 500:
		log.Error("request error", fields...)
	case appErr.HTTPStatus == http.StatusNotFound:
		log.Debug("request error", fields...)
	default:
		log.Warn("request error", fields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
