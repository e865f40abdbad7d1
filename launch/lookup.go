package launch

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/idanyas/oci-launch/oci"
)

// Identifiers are the provider IDs a launch request needs.
type Identifiers struct {
	Domain   string
	ImageID  string
	SubnetID string
}

// first returns the attribute picked by attr from the first item.
func first[T any](items []T, what string, attr func(T) string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: no %s returned", ErrNotFound, what)
	}
	v := attr(items[0])
	if v == "" {
		return "", fmt.Errorf("%w: first %s has no value", ErrNotFound, what)
	}
	return v, nil
}

func (p *Pipeline) resolveDomain(ctx context.Context, params Parameters) (string, error) {
	domain := params.DomainName
	if domain == "" {
		domains, err := p.Services.Identity.ListAvailabilityDomains(ctx, p.CompartmentID)
		if err != nil {
			return "", fmt.Errorf("couldn't get domain name: %w", err)
		}
		domain, err = first(domains, "availability domain", func(d oci.AvailabilityDomain) string { return d.Name })
		if err != nil {
			return "", fmt.Errorf("couldn't get domain name: %w", err)
		}
	}
	clog.InfoContext(ctx, "resolved domain name", "domain", domain)
	return domain, nil
}

func (p *Pipeline) resolveImage(ctx context.Context, params Parameters) (string, error) {
	images, err := p.Services.Compute.ListImages(ctx, oci.ListImagesRequest{
		CompartmentID:          p.CompartmentID,
		OperatingSystem:        params.OperatingSystem,
		OperatingSystemVersion: params.OperatingSystemVersion,
		DisplayName:            params.ImageName,
		SortBy:                 oci.SortByTimeCreated,
		SortOrder:              oci.SortOrderDesc,
	})
	if err != nil {
		return "", fmt.Errorf("couldn't get image id: %w", err)
	}
	id, err := first(images, "image", func(i oci.Image) string { return i.ID })
	if err != nil {
		return "", fmt.Errorf("couldn't get image id: %w", err)
	}
	clog.InfoContext(ctx, "resolved image id", "image_id", id)
	return id, nil
}

// resolveSubnet picks the subnet named params.SubnetName, or the newest subnet.
func (p *Pipeline) resolveSubnet(ctx context.Context, params Parameters) (string, error) {
	subnets, err := p.Services.Network.ListSubnets(ctx, oci.ListSubnetsRequest{
		CompartmentID: p.CompartmentID,
		DisplayName:   params.SubnetName,
		SortBy:        oci.SortByTimeCreated,
		SortOrder:     oci.SortOrderDesc,
	})
	if err != nil {
		return "", fmt.Errorf("couldn't get subnet id: %w", err)
	}
	id, err := first(subnets, "subnet", func(s oci.Subnet) string { return s.ID })
	if err != nil {
		return "", fmt.Errorf("couldn't get subnet id: %w", err)
	}
	clog.InfoContext(ctx, "resolved subnet id", "subnet_id", id)
	return id, nil
}
