package trackapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListLinks возвращает все ссылки, доступные текущему пользователю.
func (c *Client) ListLinks(ctx context.Context, tok string) ([]Link, error) {
	const op = "trackapi.ListLinks"

	var out linksEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/links", tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out.Links, nil
}

// GetLink возвращает одну ссылку по идентификатору.
func (c *Client) GetLink(ctx context.Context, tok, id string) (*Link, error) {
	const op = "trackapi.GetLink"

	var out linkEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/links/"+id, tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out.Link == nil {
		return nil, fmt.Errorf("%s: %w: missing link", op, ErrInvalidResponse)
	}
	return out.Link, nil
}

// CreateLink регистрирует новую трекаемую ссылку.
func (c *Client) CreateLink(ctx context.Context, tok string, link Link) (*Link, error) {
	const op = "trackapi.CreateLink"

	var out linkEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/links", tok, link, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out.Link == nil {
		return nil, fmt.Errorf("%s: %w: missing link", op, ErrInvalidResponse)
	}
	return out.Link, nil
}

// UpdateLink обновляет существующую ссылку.
func (c *Client) UpdateLink(ctx context.Context, tok, id string, link Link) (*Link, error) {
	const op = "trackapi.UpdateLink"

	var out linkEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/links/"+id, tok, link, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out.Link == nil {
		return nil, fmt.Errorf("%s: %w: missing link", op, ErrInvalidResponse)
	}
	return out.Link, nil
}

// DeleteLink удаляет ссылку.
func (c *Client) DeleteLink(ctx context.Context, tok, id string) error {
	const op = "trackapi.DeleteLink"

	if err := c.doJSON(ctx, http.MethodDelete, "/links/"+id, tok, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
