package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/favorite/internal/otel"
	"github.com/nvallejo/postreria/favorite/internal/service"
	"github.com/nvallejo/postreria/favorite/pkg/request"
	"github.com/nvallejo/postreria/favorite/pkg/response"
	"github.com/nvallejo/postreria/internal/common"
	inErrors "github.com/nvallejo/postreria/internal/common/errors"
	inHttp "github.com/nvallejo/postreria/internal/http"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

type FavoriteController struct {
	service *service.FavoriteService
}

func AttachFavoriteController(mux *mux.Router, service *service.FavoriteService) {
	controller := FavoriteController{service}

	router := mux.PathPrefix("/favoritos").Subrouter()
	router.HandleFunc("", controller.FindFavoritos).Methods(http.MethodGet)
	router.HandleFunc("", controller.AddFavorito).Methods(http.MethodPost)
	router.HandleFunc("/{postreId}", controller.FindFavorito).Methods(http.MethodGet)
	router.HandleFunc("/{postreId}", controller.DeleteFavorito).Methods(http.MethodDelete)
	router.HandleFunc("/{postreId}/toggle", controller.ToggleFavorito).
		Methods(http.MethodPost)
}

// FindFavoritos lists the session user's favoritos. Without a session the
// listing is empty rather than an error, matching the storefront's guest
// behavior.
func (ctrl FavoriteController) FindFavoritos(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "FavoriteController FindFavoritos")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteController FindFavoritos").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		logger.Info().Msg("no session, returning empty favoritos")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    "favoritos found",
			"data": map[string]interface{}{
				"favoritos": []response.Favorito{},
			},
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding favoritos").Logger()
	logger.Info().Msg("finding favoritos")
	c = logger.WithContext(c)
	favoritos, err := ctrl.service.FindFavoritos(c, session.UserID)
	if err != nil {
		err = fmt.Errorf("failed finding favoritos with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d favoritos", len(favoritos))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "favoritos found",
		"data": map[string]interface{}{
			"favoritos": favoritos,
		},
	})
}

func (ctrl FavoriteController) FindFavorito(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "FavoriteController FindFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteController FindFavorito").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		logger.Info().Msg("no session, postre is not a favorito")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    "favorito not found",
			"data": map[string]interface{}{
				"favorito": nil,
			},
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	postreID, err := postreIdPathValue(r)
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
	logger = logger.With().Int32(log.KEY_POSTRE_ID, postreID).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding favorito").Logger()
	logger.Info().Msg("finding favorito")
	c = logger.WithContext(c)
	favorito, err := ctrl.service.FindFavorito(c, session.UserID, postreID)
	if err != nil {
		if errors.Is(err, inErrors.ErrFavoritoNotFound) {
			logger.Info().Msg("favorito not found")
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "success",
				"statusCode": http.StatusOK,
				"message":    "favorito not found",
				"data": map[string]interface{}{
					"favorito": nil,
				},
			})
			return
		}
		err = fmt.Errorf("failed finding favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found favorito")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "favorito found",
		"data": map[string]interface{}{
			"favorito": favorito,
		},
	})
}

func (ctrl FavoriteController) AddFavorito(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "FavoriteController AddFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteController AddFavorito").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		logger.Info().Msg("no session, favorito not added")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    "favorito not added",
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	param := request.AddFavorito{}
	if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KEY_REQUEST_BODY, param).Logger()
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KEY_PROCESS, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KEY_PROCESS, "adding favorito").Logger()
	logger.Info().Msg("adding favorito")
	c = logger.WithContext(c)
	favorito, err := ctrl.service.AddFavorito(c, session.UserID, param.PostreID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrPostreNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed adding favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("added favorito")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "favorito added",
		"data": map[string]interface{}{
			"favorito": favorito,
		},
	})
}

func (ctrl FavoriteController) DeleteFavorito(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "FavoriteController DeleteFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteController DeleteFavorito").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		logger.Info().Msg("no session, favorito not deleted")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    "favorito not deleted",
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	postreID, err := postreIdPathValue(r)
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
	logger = logger.With().Int32(log.KEY_POSTRE_ID, postreID).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "deleting favorito").Logger()
	logger.Info().Msg("deleting favorito")
	c = logger.WithContext(c)
	favorito, err := ctrl.service.DeleteFavorito(c, session.UserID, postreID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrFavoritoNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed deleting favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("deleted favorito")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "favorito deleted",
		"data": map[string]interface{}{
			"favorito": favorito,
		},
	})
}

// ToggleFavorito flips the favorito state for a postre. Without a session it
// reports neither added nor removed so guests see their tap quietly ignored.
func (ctrl FavoriteController) ToggleFavorito(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "FavoriteController ToggleFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "FavoriteController ToggleFavorito").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		logger.Info().Msg("no session, favorito not toggled")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"message":    "favorito not toggled",
			"data": map[string]interface{}{
				"result": response.ToggleResult{},
			},
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	postreID, err := postreIdPathValue(r)
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
	logger = logger.With().Int32(log.KEY_POSTRE_ID, postreID).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "toggling favorito").Logger()
	logger.Info().Msg("toggling favorito")
	c = logger.WithContext(c)
	result, err := ctrl.service.ToggleFavorito(c, session.UserID, postreID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrPostreNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed toggling favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().
		Bool("added", result.Added).
		Bool("removed", result.Removed).
		Msg("toggled favorito")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "favorito toggled",
		"data": map[string]interface{}{
			"result": result,
		},
	})
}

func postreIdPathValue(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["postreId"], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
