package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/nvallejo/postreria/cart/internal/otel"
	"github.com/nvallejo/postreria/cart/internal/service"
	"github.com/nvallejo/postreria/cart/pkg/request"
	"github.com/nvallejo/postreria/internal/common"
	inHttp "github.com/nvallejo/postreria/internal/http"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/lines", controller.AddCartLine).Methods(http.MethodPost)
	router.HandleFunc("/lines/{lineId}", controller.UpdateQuantity).Methods(http.MethodPut)
	router.HandleFunc("/lines/{lineId}", controller.RemoveCartLine).Methods(http.MethodDelete)
}

func (ctrl CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartController FindCart").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		err := fmt.Errorf("session not found in context")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart := ctrl.service.Cart(c, session.UserID)
	logger.Info().Msgf("found cart with %d lines", len(cart.Lines))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ctrl CartController) AddCartLine(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartController AddCartLine").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		err := fmt.Errorf("session not found in context")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	param := request.AddCartLine{}
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

	logger = logger.With().Str(log.KEY_PROCESS, "adding cart line").Logger()
	logger.Info().Msg("adding cart line")
	c = logger.WithContext(c)
	line, err := ctrl.service.AddLine(c, session.UserID, param)
	if err != nil {
		err = fmt.Errorf("failed adding cart line with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_CART_LINE_ID, line.ID.String()).Logger()
	logger.Info().Msg("added cart line")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "cart line added",
		"data": map[string]interface{}{
			"line": line,
		},
	})
}

func (ctrl CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartController UpdateQuantity").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		err := fmt.Errorf("session not found in context")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "getting pathValue lineId").Logger()
	logger.Trace().Msg("getting pathValue lineId")
	pathValues := mux.Vars(r)
	lineID, err := uuid.Parse(pathValues["lineId"])
	if err != nil {
		err = fmt.Errorf("failed getting pathValue lineId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_CART_LINE_ID, lineID.String()).Logger()
	logger.Trace().Msg("got pathValue lineId")

	logger = logger.With().Str(log.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	param := request.UpdateQuantity{}
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
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KEY_PROCESS, "updating cart line quantity").Logger()
	logger.Info().Msg("updating cart line quantity")
	c = logger.WithContext(c)
	line, err := ctrl.service.UpdateQuantity(c, session.UserID, lineID, param.Quantity)
	if err != nil {
		err = fmt.Errorf("failed updating cart line quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated cart line quantity")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart line updated",
		"data": map[string]interface{}{
			"line": line,
		},
	})
}

func (ctrl CartController) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartController RemoveCartLine").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		err := fmt.Errorf("session not found in context")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "getting pathValue lineId").Logger()
	logger.Trace().Msg("getting pathValue lineId")
	pathValues := mux.Vars(r)
	lineID, err := uuid.Parse(pathValues["lineId"])
	if err != nil {
		err = fmt.Errorf("failed getting pathValue lineId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_CART_LINE_ID, lineID.String()).Logger()
	logger.Trace().Msg("got pathValue lineId")

	logger = logger.With().Str(log.KEY_PROCESS, "removing cart line").Logger()
	logger.Info().Msg("removing cart line")
	c = logger.WithContext(c)
	ctrl.service.RemoveLine(c, session.UserID, lineID)
	logger.Info().Msg("removed cart line")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart line removed",
	})
}

func (ctrl CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CartController ClearCart").
		Logger()

	session, ok := common.SessionFromContext(c)
	if !ok {
		err := fmt.Errorf("session not found in context")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KEY_USER_ID, session.UserID.String()).Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	ctrl.service.Clear(c, session.UserID)
	logger.Info().Msg("cleared cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart cleared",
	})
}
