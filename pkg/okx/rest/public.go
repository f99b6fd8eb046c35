package rest

import (
	"context"

	"github.com/fd1az/okx-client/internal/ratelimit"
)

// PublicInstrumentsParams are the filters for PublicInstruments.
type PublicInstrumentsParams struct {
	InstType   InstType
	Uly        string
	InstFamily string
	InstID     string
}

// PublicInstruments fetches GET /api/v5/public/instruments: the full list
// of tradable products for a product type.
func (c *Client) PublicInstruments(ctx context.Context, p PublicInstrumentsParams) ([]Instrument, error) {
	params := map[string]string{"instType": string(p.InstType)}
	if p.Uly != "" {
		params["uly"] = p.Uly
	}
	if p.InstFamily != "" {
		params["instFamily"] = p.InstFamily
	}
	if p.InstID != "" {
		params["instId"] = p.InstID
	}

	var out []Instrument
	if err := c.getInstType(ctx, ratelimit.APIPublicInstruments, string(p.InstType), "/api/v5/public/instruments", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
