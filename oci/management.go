package oci

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInstanceConfiguration saves a new instance configuration.
func (c *Client) CreateInstanceConfiguration(ctx context.Context, details CreateInstanceConfigurationDetails) (*InstanceConfiguration, error) {
	var cfg InstanceConfiguration
	if err := c.call(ctx, http.MethodPost, serviceCore, "/instanceConfigurations", nil, details, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LaunchInstanceConfiguration launches one instance from the configuration
// identified by id. details may override parts of the saved launch details.
func (c *Client) LaunchInstanceConfiguration(ctx context.Context, id string, details *ComputeInstanceDetails) (*Instance, error) {
	if details == nil {
		details = NewComputeInstanceDetails(nil)
	}

	path := "/instanceConfigurations/" + url.PathEscape(id) + "/actions/launch"
	var instance Instance
	if err := c.call(ctx, http.MethodPost, serviceCore, path, nil, details, &instance); err != nil {
		return nil, err
	}
	return &instance, nil
}
