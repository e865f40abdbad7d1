// Package launch resolves launch parameters and provider identifiers, builds
// an instance configuration request and submits it.
//
// Run walks the states
//
//	RESOLVE_PARAMS → RESOLVE_DOMAIN → RESOLVE_IMAGE → RESOLVE_SUBNET →
//	ASSEMBLE → CREATE_CONFIG → LAUNCH
//
// stopping after the requested Stage. The first error ends the run; nothing
// already created is rolled back.
package launch

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/idanyas/oci-launch/logging"
	"github.com/idanyas/oci-launch/notifier"
	"github.com/idanyas/oci-launch/oci"
)

// Stage is the last state a Run performs.
type Stage int

const (
	// StageResolve stops once the domain, image and subnet are known.
	StageResolve Stage = iota
	// StageAssemble also builds the request without submitting it.
	StageAssemble
	// StageConfigure also creates the instance configuration.
	StageConfigure
	// StageLaunch also launches an instance from the configuration.
	StageLaunch
)

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageAssemble:
		return "assemble"
	case StageConfigure:
		return "configure"
	case StageLaunch:
		return "launch"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// IdentityService lists availability domains.
type IdentityService interface {
	ListAvailabilityDomains(ctx context.Context, compartmentID string) ([]oci.AvailabilityDomain, error)
}

// ComputeService lists images.
type ComputeService interface {
	ListImages(ctx context.Context, r oci.ListImagesRequest) ([]oci.Image, error)
}

// NetworkService lists subnets.
type NetworkService interface {
	ListSubnets(ctx context.Context, r oci.ListSubnetsRequest) ([]oci.Subnet, error)
}

// ManagementService creates and launches instance configurations.
type ManagementService interface {
	CreateInstanceConfiguration(ctx context.Context, details oci.CreateInstanceConfigurationDetails) (*oci.InstanceConfiguration, error)
	LaunchInstanceConfiguration(ctx context.Context, id string, details *oci.ComputeInstanceDetails) (*oci.Instance, error)
}

// Services groups the provider APIs a Pipeline calls.
type Services struct {
	Identity   IdentityService
	Compute    ComputeService
	Network    NetworkService
	Management ManagementService
}

// ClientServices serves every API from a single OCI client.
func ClientServices(c *oci.Client) Services {
	return Services{Identity: c, Compute: c, Network: c, Management: c}
}

// Result holds whatever a Run produced before it stopped.
type Result struct {
	Parameters      Parameters
	Identifiers     Identifiers
	Request         *oci.CreateInstanceConfigurationDetails
	ConfigurationID string
	Instance        *oci.Instance
}

// Pipeline provisions one instance in CompartmentID.
type Pipeline struct {
	CompartmentID string
	Resolver      *Resolver
	Services      Services
	// Notifier, when set, is told about the launched instance. Failures are only logged.
	Notifier notifier.Notifier
}

// Run executes the pipeline through stage. On error the partial Result is
// returned alongside it.
func (p *Pipeline) Run(ctx context.Context, through Stage) (*Result, error) {
	ctx = logging.With(ctx, "stage", through.String())

	res := &Result{}
	params, err := p.Resolver.Parameters(ctx)
	if err != nil {
		return res, err
	}
	res.Parameters = params

	if res.Identifiers.Domain, err = p.resolveDomain(ctx, params); err != nil {
		return res, err
	}
	if res.Identifiers.ImageID, err = p.resolveImage(ctx, params); err != nil {
		return res, err
	}
	if res.Identifiers.SubnetID, err = p.resolveSubnet(ctx, params); err != nil {
		return res, err
	}
	if through == StageResolve {
		return res, nil
	}

	if res.Parameters.SSHKey, err = p.Resolver.SSHKey(ctx); err != nil {
		return res, err
	}
	req := Assemble(p.CompartmentID, res.Identifiers, res.Parameters)
	res.Request = &req
	if through == StageAssemble {
		return res, nil
	}

	cfg, err := p.Services.Management.CreateInstanceConfiguration(ctx, req)
	if err != nil {
		return res, fmt.Errorf("couldn't create instance configuration: %w", err)
	}
	if cfg == nil || cfg.ID == "" {
		return res, fmt.Errorf("couldn't create instance configuration: %w: response has no id", ErrNotFound)
	}
	res.ConfigurationID = cfg.ID
	clog.InfoContext(ctx, "created instance configuration", "instance_configuration_id", cfg.ID)
	if through == StageConfigure {
		return res, nil
	}

	instance, err := p.Services.Management.LaunchInstanceConfiguration(ctx, cfg.ID, oci.NewComputeInstanceDetails(nil))
	if err != nil {
		return res, fmt.Errorf("couldn't launch instance configuration: %w", err)
	}
	if instance == nil {
		return res, fmt.Errorf("couldn't launch instance configuration: %w: empty response", ErrNotFound)
	}
	res.Instance = instance
	clog.InfoContext(ctx, "launched instance", "instance_id", instance.ID, "state", instance.LifecycleState)

	p.notify(ctx, res)
	return res, nil
}

func (p *Pipeline) notify(ctx context.Context, res *Result) {
	if p.Notifier == nil {
		return
	}
	msg := fmt.Sprintf("Launched instance %s\nshape: %s\ndomain: %s\ninstance configuration: %s",
		res.Instance.ID, res.Parameters.Shape, res.Identifiers.Domain, res.ConfigurationID)
	if err := p.Notifier.Notify(ctx, msg); err != nil {
		clog.WarnContext(ctx, "failed to send notification", "error", err)
		return
	}
	clog.InfoContext(ctx, "sent launch notification")
}
