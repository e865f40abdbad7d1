package oci

import (
	"context"
	"net/http"
	"net/url"
)

// ListImages fetches the images matching the filters in r.
func (c *Client) ListImages(ctx context.Context, r ListImagesRequest) ([]Image, error) {
	params := url.Values{}
	params.Set("compartmentId", r.CompartmentID)
	setIf(params, "operatingSystem", r.OperatingSystem)
	setIf(params, "operatingSystemVersion", r.OperatingSystemVersion)
	setIf(params, "displayName", r.DisplayName)
	setIf(params, "sortBy", r.SortBy)
	setIf(params, "sortOrder", r.SortOrder)

	var images []Image
	if err := c.call(ctx, http.MethodGet, serviceCore, "/images", params, nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}
