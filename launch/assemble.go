package launch

import "github.com/idanyas/oci-launch/oci"

const sshAuthorizedKeys = "ssh_authorized_keys"

// Assemble nests the resolved values into an instance configuration request.
// It performs no I/O.
func Assemble(compartmentID string, ids Identifiers, params Parameters) oci.CreateInstanceConfigurationDetails {
	var shapeConfig *oci.LaunchShapeConfig
	if params.OCPUs != nil || params.MemoryInGBs != nil {
		shapeConfig = &oci.LaunchShapeConfig{
			Ocpus:       params.OCPUs,
			MemoryInGBs: params.MemoryInGBs,
		}
	}

	metadata := map[string]string{}
	if params.SSHKey != "" {
		metadata[sshAuthorizedKeys] = params.SSHKey
	}

	launch := &oci.LaunchInstanceDetails{
		CompartmentID:      compartmentID,
		AvailabilityDomain: ids.Domain,
		DisplayName:        params.DisplayName,
		Shape:              params.Shape,
		ShapeConfig:        shapeConfig,
		AvailabilityConfig: &oci.InstanceAvailabilityConfig{
			RecoveryAction: params.RecoveryAction,
		},
		InstanceOptions: &oci.InstanceOptions{
			AreLegacyImdsEndpointsDisabled: false,
		},
		SourceDetails: oci.NewImageSource(ids.ImageID),
		Metadata:      metadata,
		CreateVnicDetails: &oci.CreateVnicDetails{
			SubnetID:               ids.SubnetID,
			AssignPublicIP:         params.AssignPublicIP,
			AssignPrivateDNSRecord: true,
		},
	}

	return oci.CreateInstanceConfigurationDetails{
		CompartmentID:   compartmentID,
		DisplayName:     params.DisplayName,
		InstanceDetails: oci.NewComputeInstanceDetails(launch),
	}
}
