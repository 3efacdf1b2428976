package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/nvallejo/postreria/internal/common/constants"
)

var Tracer = otel.Tracer(constants.APP_CART_SERVICE)
