package oci

import (
	"context"
	"net/http"
	"net/url"
)

// ListSubnets fetches the subnets matching the filters in r.
func (c *Client) ListSubnets(ctx context.Context, r ListSubnetsRequest) ([]Subnet, error) {
	params := url.Values{}
	params.Set("compartmentId", r.CompartmentID)
	setIf(params, "displayName", r.DisplayName)
	setIf(params, "sortBy", r.SortBy)
	setIf(params, "sortOrder", r.SortOrder)

	var subnets []Subnet
	if err := c.call(ctx, http.MethodGet, serviceCore, "/subnets", params, nil, &subnets); err != nil {
		return nil, err
	}
	return subnets, nil
}
