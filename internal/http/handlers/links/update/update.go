package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/trackpro/trackagent/internal/http/middlewarectx"
	"github.com/trackpro/trackagent/internal/http/response"
	"github.com/trackpro/trackagent/internal/lib/sl"
	"github.com/trackpro/trackagent/internal/trackapi"
)

// Request обновлённые данные ссылки. Формат совпадает с созданием:
// сервер заменяет запись целиком.
type Request struct {
	URL               string `json:"link" validate:"required"`
	Name              string `json:"nome_link" validate:"required"`
	ExpertAlias       string `json:"expert_apelido" validate:"required"`
	GroupName         string `json:"group_name" validate:"required"`
	TelegramChannelID string `json:"id_channel_telegram" validate:"required"`
	MetaAPIToken      string `json:"token_api,omitempty"`
	PixelID           string `json:"pixel_id,omitempty"`
	BioOrExternal     bool   `json:"bio_ou_externo"`
}

// LinkUpdater обновляет ссылку на удалённом API.
type LinkUpdater interface {
	UpdateLink(ctx context.Context, tok, id string, link trackapi.Link) (*trackapi.Link, error)
}

func New(log *slog.Logger, api LinkUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.links.update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		linkID := chi.URLParam(r, "id")
		if linkID == "" {
			log.Error("missing link id in path")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing link id"))
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		tok := middlewarectx.TokenFromContext(r.Context())
		link, err := api.UpdateLink(r.Context(), tok, linkID, trackapi.Link{
			URL:               req.URL,
			Name:              req.Name,
			ExpertAlias:       req.ExpertAlias,
			GroupName:         req.GroupName,
			TelegramChannelID: req.TelegramChannelID,
			MetaAPIToken:      req.MetaAPIToken,
			PixelID:           req.PixelID,
			BioOrExternal:     req.BioOrExternal,
		})
		if err != nil {
			log.Error("failed to update link", slog.String("link_id", linkID), sl.Err(err))
			status, resp := response.RemoteError(err)
			render.Status(r, status)
			render.JSON(w, r, resp)
			return
		}

		log.Info("link updated", slog.String("link_id", link.ID))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"link": link,
		}))
	}
}
