package launch

import (
	"context"
	"errors"
	"time"

	"github.com/idanyas/oci-launch/config"
	"github.com/idanyas/oci-launch/oci"
	"github.com/idanyas/oci-launch/prompt"
)

const testCompartment = "ocid1.tenancy.oc1..t"

// fakeServices records every call and answers from its fields.
type fakeServices struct {
	domains []oci.AvailabilityDomain
	images  []oci.Image
	subnets []oci.Subnet
	config  *oci.InstanceConfiguration
	launch  *oci.Instance

	domainsErr error
	imagesErr  error
	subnetsErr error
	createErr  error
	launchErr  error

	calls        []string
	imagesReq    oci.ListImagesRequest
	subnetsReq   oci.ListSubnetsRequest
	created      *oci.CreateInstanceConfigurationDetails
	launchedFrom string
}

func newFakeServices() *fakeServices {
	return &fakeServices{
		domains: []oci.AvailabilityDomain{{Name: "AD-1"}},
		images:  []oci.Image{{ID: "ocid1.image.a"}},
		subnets: []oci.Subnet{{ID: "ocid1.subnet.b"}},
		config:  &oci.InstanceConfiguration{ID: "ocid1.instanceconfiguration.c"},
		launch:  &oci.Instance{ID: "ocid1.instance.d", LifecycleState: "PROVISIONING"},
	}
}

func (f *fakeServices) services() Services {
	return Services{Identity: f, Compute: f, Network: f, Management: f}
}

func (f *fakeServices) ListAvailabilityDomains(_ context.Context, compartmentID string) ([]oci.AvailabilityDomain, error) {
	f.calls = append(f.calls, "ListAvailabilityDomains")
	return f.domains, f.domainsErr
}

func (f *fakeServices) ListImages(_ context.Context, r oci.ListImagesRequest) ([]oci.Image, error) {
	f.calls = append(f.calls, "ListImages")
	f.imagesReq = r
	return f.images, f.imagesErr
}

func (f *fakeServices) ListSubnets(_ context.Context, r oci.ListSubnetsRequest) ([]oci.Subnet, error) {
	f.calls = append(f.calls, "ListSubnets")
	f.subnetsReq = r
	return f.subnets, f.subnetsErr
}

func (f *fakeServices) CreateInstanceConfiguration(_ context.Context, details oci.CreateInstanceConfigurationDetails) (*oci.InstanceConfiguration, error) {
	f.calls = append(f.calls, "CreateInstanceConfiguration")
	f.created = &details
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.config, nil
}

func (f *fakeServices) LaunchInstanceConfiguration(_ context.Context, id string, _ *oci.ComputeInstanceDetails) (*oci.Instance, error) {
	f.calls = append(f.calls, "LaunchInstanceConfiguration")
	f.launchedFrom = id
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	return f.launch, nil
}

// scriptedPrompter answers prompts in order and counts them.
type scriptedPrompter struct {
	answers []string
	err     error
	asked   []string
}

func (s *scriptedPrompter) Ask(title, _ string) (string, error) {
	s.asked = append(s.asked, title)
	if s.err != nil {
		return "", s.err
	}
	if len(s.answers) == 0 {
		return "", nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

var fixedNow = func() time.Time { return time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC) }

func newResolver(env map[string]string, p prompt.Prompter) *Resolver {
	return &Resolver{Env: config.NewEnv(env), Prompter: p, Now: fixedNow}
}

func ptr(f float64) *float64 { return &f }

var errService = errors.New("service unavailable")
