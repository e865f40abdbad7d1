package oci

import (
	"context"
	"net/http"
	"net/url"
)

// ListAvailabilityDomains fetches the availability domains visible to compartmentID.
func (c *Client) ListAvailabilityDomains(ctx context.Context, compartmentID string) ([]AvailabilityDomain, error) {
	params := url.Values{}
	params.Set("compartmentId", compartmentID)

	var domains []AvailabilityDomain
	if err := c.call(ctx, http.MethodGet, serviceIdentity, "/availabilityDomains/", params, nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}
