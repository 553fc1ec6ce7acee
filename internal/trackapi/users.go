package trackapi

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ListUsers возвращает список пользователей. Операция доступна только
// администратору, что контролируется сервером.
func (c *Client) ListUsers(ctx context.Context, tok string) ([]User, error) {
	const op = "trackapi.ListUsers"

	var out usersEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/users", tok, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out.Data, nil
}

// UpdateUserPlanStatus меняет статус плана пользователя. trialEnd равный
// nil явно обнуляет дату теста на сервере.
func (c *Client) UpdateUserPlanStatus(ctx context.Context, tok, userID, status string, trialEnd *time.Time) error {
	const op = "trackapi.UpdateUserPlanStatus"

	body := updateStatusRequest{PlanStatus: status}
	if trialEnd != nil {
		body.TrialEndDate = &APITime{Time: *trialEnd}
	}
	path := "/users/" + userID + "/status"
	if err := c.doJSON(ctx, http.MethodPatch, path, tok, body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
