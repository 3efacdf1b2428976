package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nvallejo/postreria/cart/internal/otel"
	catalogResponse "github.com/nvallejo/postreria/catalog/pkg/response"
	inHttp "github.com/nvallejo/postreria/internal/http"
	"github.com/nvallejo/postreria/internal/log"
	inOtel "github.com/nvallejo/postreria/internal/otel"
)

// CatalogClient is the HTTP-backed PostreFinder, resolving postres against
// the catalog service.
type CatalogClient struct {
	baseUrl string
}

func NewCatalogClient(baseUrl string) CatalogClient {
	if baseUrl == "" {
		baseUrl = inHttp.URL_CATALOG_SERVICE
	}
	return CatalogClient{baseUrl: baseUrl}
}

func (cl CatalogClient) FindPostreById(
	c context.Context,
	id int32,
) (catalogResponse.Postre, error) {
	c, span := otel.Tracer.Start(c, "CatalogClient FindPostreById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "CatalogClient FindPostreById").
		Int32(log.KEY_POSTRE_ID, id).
		Logger()

	logger = logger.With().
		Str(log.KEY_PROCESS, fmt.Sprintf("finding postreId=%d in catalog-service", id)).
		Logger()
	logger.Info().Msgf("finding postreId=%d", id)
	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		fmt.Sprintf("%s/%d", cl.baseUrl, id),
		nil,
	)
	if err != nil {
		err = fmt.Errorf("failed creating request for postreId=%d with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return catalogResponse.Postre{}, err
	}
	req.Header.Add(inHttp.KEY_HEADER_REQUEST_ID, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed getting postreId=%d with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return catalogResponse.Postre{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("postreId=%d not found", id)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return catalogResponse.Postre{}, err
	}
	logger.Info().Msgf("found postreId=%d", id)

	logger = logger.With().Str(log.KEY_PROCESS, "decoding catalog response").Logger()
	logger.Trace().Msg("decoding catalog response")
	respBody := struct {
		Data struct {
			Postre catalogResponse.Postre `json:"postre"`
		} `json:"data"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&respBody)
	if err != nil {
		err = fmt.Errorf("failed decoding catalog response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return catalogResponse.Postre{}, err
	}
	logger.Trace().Msg("decoded catalog response")

	return respBody.Data.Postre, nil
}
