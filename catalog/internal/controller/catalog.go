package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/catalog/internal/otel"
	"github.com/nvallejo/postreria/catalog/internal/service"
	"github.com/nvallejo/postreria/catalog/pkg/request"
	inHttp "github.com/nvallejo/postreria/internal/http"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

type CatalogController struct {
	service *service.CatalogService
}

func AttachCatalogController(mux *mux.Router, service *service.CatalogService) {
	controller := CatalogController{service}

	router := mux.PathPrefix("/postres").Subrouter()
	router.HandleFunc("", controller.FindPostres).Methods(http.MethodGet)
	router.HandleFunc("/{postreId}", controller.FindPostreById).Methods(http.MethodGet)

	mux.HandleFunc("/ingredientes", controller.FindIngredientes).Methods(http.MethodGet)
}

func (ctrl CatalogController) FindPostres(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindPostres")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogController FindPostres").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "parsing filter criteria").Logger()
	logger.Trace().Msg("parsing filter criteria")
	span.AddEvent("parsing filter criteria")
	criteria, err := request.FindPostresFromQuery(r.URL.Query())
	if err != nil {
		err = fmt.Errorf("failed parsing filter criteria with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	span.AddEvent("parsed filter criteria")
	logger = logger.With().Any(log.KEY_FILTER, criteria).Logger()
	logger.Trace().Msg("parsed filter criteria")

	logger = logger.With().Str(log.KEY_PROCESS, "validating filter criteria").Logger()
	logger.Trace().Msg("validating filter criteria")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, criteria); err != nil {
		err = fmt.Errorf("failed validating filter criteria with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Trace().Msg("validated filter criteria")

	logger = logger.With().Str(log.KEY_PROCESS, "finding postres").Logger()
	logger.Info().Msg("finding postres")
	c = logger.WithContext(c)
	postres, err := ctrl.service.FindPostres(c, criteria)
	if err != nil {
		err = fmt.Errorf("failed finding postres with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d postres", len(postres))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "postres found",
		"data": map[string]interface{}{
			"postres": postres,
		},
	})
}

func (ctrl CatalogController) FindPostreById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindPostreById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogController FindPostreById").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "getting pathValue postreId").Logger()
	logger.Trace().Msg("getting pathValue postreId")
	pathValues := mux.Vars(r)
	id, err := strconv.ParseInt(pathValues["postreId"], 10, 32)
	if err != nil {
		err = fmt.Errorf("failed getting pathValue postreId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int32(log.KEY_POSTRE_ID, int32(id)).Logger()
	logger.Trace().Msg("got pathValue postreId")

	logger = logger.With().Str(log.KEY_PROCESS, "finding postre").Logger()
	logger.Info().Msg("finding postre")
	c = logger.WithContext(c)
	postre, err := ctrl.service.FindPostreById(c, int32(id))
	if err != nil {
		err = fmt.Errorf("failed finding postre with id=%d with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KEY_POSTRE, postre).Logger()
	logger.Info().Msg("found postre")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("postre id=%d found", id),
		"data": map[string]interface{}{
			"postre": postre,
		},
	})
}

func (ctrl CatalogController) FindIngredientes(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindIngredientes")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogController FindIngredientes").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding ingredientes").Logger()
	logger.Info().Msg("finding ingredientes")
	c = logger.WithContext(c)
	ingredientes, err := ctrl.service.FindIngredientes(c)
	if err != nil {
		err = fmt.Errorf("failed finding ingredientes with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d ingredientes", len(ingredientes))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "ingredientes found",
		"data": map[string]interface{}{
			"ingredientes": ingredientes,
		},
	})
}
