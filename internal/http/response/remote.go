package response

import (
	"errors"
	"net/http"

	"github.com/trackpro/trackagent/internal/trackapi"
)

// RemoteError переводит типизированную ошибку клиента удалённого API в
// HTTP-статус и тело ответа локального API.
func RemoteError(err error) (int, Response) {
	switch {
	case errors.Is(err, trackapi.ErrUnauthenticated):
		return http.StatusUnauthorized, Error("invalid or expired token")
	case errors.Is(err, trackapi.ErrForbidden):
		return http.StatusForbidden, Error("admin only")
	case errors.Is(err, trackapi.ErrEmailTaken):
		return http.StatusPaymentRequired, Error("email already registered")
	case errors.Is(err, trackapi.ErrInvalidResponse):
		return http.StatusBadGateway, Error("unexpected remote response")
	case errors.Is(err, trackapi.ErrNetwork):
		return http.StatusBadGateway, Error("remote api unavailable")
	default:
		return http.StatusInternalServerError, Error("internal error")
	}
}
