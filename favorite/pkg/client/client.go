package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nvallejo/postreria/favorite/internal/otel"
	"github.com/nvallejo/postreria/favorite/pkg/response"
	inHttp "github.com/nvallejo/postreria/internal/http"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

// FavoritoAPI is the surface the reconciler needs from the favorite service.
type FavoritoAPI interface {
	Authenticated() bool
	FindFavoritos(c context.Context) ([]response.Favorito, error)
	ToggleFavorito(c context.Context, postreID int32) (response.ToggleResult, error)
}

// Client talks to the favorite service over HTTP on behalf of one session.
// An empty token marks a guest session.
type Client struct {
	baseUrl string
	token   string
}

func NewClient(baseUrl string, token string) Client {
	if baseUrl == "" {
		baseUrl = inHttp.URL_FAVORITE_SERVICE
	}
	return Client{baseUrl: baseUrl, token: token}
}

func (cl Client) Authenticated() bool {
	return cl.token != ""
}

func (cl Client) FindFavoritos(c context.Context) ([]response.Favorito, error) {
	c, span := otel.Tracer.Start(c, "Client FindFavoritos")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Client FindFavoritos").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "finding favoritos").Logger()
	logger.Info().Msg("finding favoritos")
	respBody := struct {
		Data struct {
			Favoritos []response.Favorito `json:"favoritos"`
		} `json:"data"`
	}{}
	err := cl.do(c, http.MethodGet, cl.baseUrl, &respBody)
	if err != nil {
		err = fmt.Errorf("failed finding favoritos with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d favoritos", len(respBody.Data.Favoritos))

	return respBody.Data.Favoritos, nil
}

func (cl Client) ToggleFavorito(
	c context.Context,
	postreID int32,
) (response.ToggleResult, error) {
	c, span := otel.Tracer.Start(c, "Client ToggleFavorito")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Client ToggleFavorito").
		Int32(log.KEY_POSTRE_ID, postreID).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "toggling favorito").Logger()
	logger.Info().Msg("toggling favorito")
	respBody := struct {
		Data struct {
			Result response.ToggleResult `json:"result"`
		} `json:"data"`
	}{}
	url := fmt.Sprintf("%s/%d/toggle", cl.baseUrl, postreID)
	err := cl.do(c, http.MethodPost, url, &respBody)
	if err != nil {
		err = fmt.Errorf("failed toggling favorito with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ToggleResult{}, err
	}
	logger.Info().
		Bool("added", respBody.Data.Result.Added).
		Bool("removed", respBody.Data.Result.Removed).
		Msg("toggled favorito")

	return respBody.Data.Result, nil
}

func (cl Client) do(c context.Context, method string, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(c, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed creating request with error=%w", err)
	}
	req.Header.Add(inHttp.KEY_HEADER_REQUEST_ID, log.RequestIDFromContext(c))
	if cl.token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", cl.token))
	}
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed sending request with error=%w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed with statusCode=%d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed decoding response with error=%w", err)
	}
	return nil
}
