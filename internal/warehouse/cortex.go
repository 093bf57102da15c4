package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CortexComplete runs the warehouse-hosted completion function and
// returns the generated text. The prompt is passed as a bind variable,
// never interpolated.
func (c *Client) CortexComplete(ctx context.Context, model, prompt string) (string, error) {
	var response string
	err := c.queryRow(ctx,
		`SELECT SNOWFLAKE.CORTEX.COMPLETE(?, ?) AS RESPONSE`,
		model, prompt,
	).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: empty completion result", ErrUnavailable)
	}
	if err != nil {
		return "", wrapScan(err)
	}
	return response, nil
}
