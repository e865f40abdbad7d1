package oci

// This file contains type definitions for OCI API objects.

// Sort values accepted by the list operations.
const (
	SortByTimeCreated = "TIMECREATED"
	SortOrderDesc     = "DESC"
)

// Recovery actions for InstanceAvailabilityConfig.
const (
	RecoveryActionRestoreInstance = "RESTORE_INSTANCE"
	RecoveryActionStopInstance    = "STOP_INSTANCE"
)

const (
	instanceTypeCompute = "compute"
	sourceTypeImage     = "image"
)

// AvailabilityDomain represents an OCI availability domain.
type AvailabilityDomain struct {
	Name          string `json:"name"`
	ID            string `json:"id"`
	CompartmentID string `json:"compartmentId"`
}

// Image represents an OCI compute image.
type Image struct {
	ID                     string `json:"id"`
	CompartmentID          string `json:"compartmentId"`
	DisplayName            string `json:"displayName"`
	OperatingSystem        string `json:"operatingSystem"`
	OperatingSystemVersion string `json:"operatingSystemVersion"`
	LifecycleState         string `json:"lifecycleState"`
	TimeCreated            string `json:"timeCreated"`
}

// Subnet represents an OCI VCN subnet.
type Subnet struct {
	ID                 string `json:"id"`
	CompartmentID      string `json:"compartmentId"`
	VcnID              string `json:"vcnId"`
	DisplayName        string `json:"displayName"`
	CidrBlock          string `json:"cidrBlock"`
	AvailabilityDomain string `json:"availabilityDomain,omitempty"`
	LifecycleState     string `json:"lifecycleState"`
	TimeCreated        string `json:"timeCreated"`
}

// Instance represents an OCI compute instance.
type Instance struct {
	ID                 string `json:"id"`
	AvailabilityDomain string `json:"availabilityDomain"`
	CompartmentID      string `json:"compartmentId"`
	DisplayName        string `json:"displayName"`
	Shape              string `json:"shape"`
	LifecycleState     string `json:"lifecycleState"`
}

// InstanceConfiguration is a saved template for launching instances.
type InstanceConfiguration struct {
	ID            string `json:"id"`
	CompartmentID string `json:"compartmentId"`
	DisplayName   string `json:"displayName"`
	TimeCreated   string `json:"timeCreated"`
}

// ListImagesRequest filters ListImages. Empty fields are not sent.
type ListImagesRequest struct {
	CompartmentID          string
	OperatingSystem        string
	OperatingSystemVersion string
	DisplayName            string
	SortBy                 string
	SortOrder              string
}

// ListSubnetsRequest filters ListSubnets. Empty fields are not sent.
type ListSubnetsRequest struct {
	CompartmentID string
	DisplayName   string
	SortBy        string
	SortOrder     string
}

// CreateInstanceConfigurationDetails is the request body for creating an instance configuration.
type CreateInstanceConfigurationDetails struct {
	CompartmentID   string                  `json:"compartmentId"`
	DisplayName     string                  `json:"displayName,omitempty"`
	InstanceDetails *ComputeInstanceDetails `json:"instanceDetails"`
}

// ComputeInstanceDetails describes a compute instance inside an instance configuration.
type ComputeInstanceDetails struct {
	InstanceType  string                 `json:"instanceType"`
	LaunchDetails *LaunchInstanceDetails `json:"launchDetails,omitempty"`
}

// NewComputeInstanceDetails returns instance details of type compute.
func NewComputeInstanceDetails(launch *LaunchInstanceDetails) *ComputeInstanceDetails {
	return &ComputeInstanceDetails{InstanceType: instanceTypeCompute, LaunchDetails: launch}
}

// LaunchInstanceDetails holds the launch parameters of an instance configuration.
type LaunchInstanceDetails struct {
	CompartmentID      string                      `json:"compartmentId"`
	AvailabilityDomain string                      `json:"availabilityDomain"`
	DisplayName        string                      `json:"displayName,omitempty"`
	Shape              string                      `json:"shape"`
	ShapeConfig        *LaunchShapeConfig          `json:"shapeConfig,omitempty"`
	AvailabilityConfig *InstanceAvailabilityConfig `json:"availabilityConfig,omitempty"`
	InstanceOptions    *InstanceOptions            `json:"instanceOptions,omitempty"`
	SourceDetails      *InstanceSourceDetails      `json:"sourceDetails"`
	Metadata           map[string]string           `json:"metadata,omitempty"`
	CreateVnicDetails  *CreateVnicDetails          `json:"createVnicDetails"`
}

// LaunchShapeConfig sizes a flexible shape.
type LaunchShapeConfig struct {
	Ocpus       *float64 `json:"ocpus,omitempty"`
	MemoryInGBs *float64 `json:"memoryInGBs,omitempty"`
}

// InstanceAvailabilityConfig sets what happens after a host maintenance event.
type InstanceAvailabilityConfig struct {
	RecoveryAction string `json:"recoveryAction"`
}

// InstanceOptions holds instance metadata service options.
type InstanceOptions struct {
	AreLegacyImdsEndpointsDisabled bool `json:"areLegacyImdsEndpointsDisabled"`
}

// InstanceSourceDetails selects the boot source.
type InstanceSourceDetails struct {
	SourceType string `json:"sourceType"`
	ImageID    string `json:"imageId"`
}

// NewImageSource returns source details booting from imageID.
func NewImageSource(imageID string) *InstanceSourceDetails {
	return &InstanceSourceDetails{SourceType: sourceTypeImage, ImageID: imageID}
}

// CreateVnicDetails configures the primary VNIC.
type CreateVnicDetails struct {
	SubnetID               string `json:"subnetId"`
	AssignPublicIP         bool   `json:"assignPublicIp"`
	AssignPrivateDNSRecord bool   `json:"assignPrivateDnsRecord"`
}
