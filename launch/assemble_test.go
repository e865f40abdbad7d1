package launch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/idanyas/oci-launch/oci"
)

var testIDs = Identifiers{Domain: "AD-1", ImageID: "ocid1.image.a", SubnetID: "ocid1.subnet.b"}

func TestAssemble(t *testing.T) {
	params := Parameters{
		Shape:          "VM.Standard2.1",
		OCPUs:          ptr(1),
		MemoryInGBs:    ptr(4),
		RecoveryAction: oci.RecoveryActionRestoreInstance,
		SSHKey:         "ssh-ed25519 AAAA test",
		DisplayName:    "web-1",
	}

	got := Assemble(testCompartment, testIDs, params)

	want := oci.CreateInstanceConfigurationDetails{
		CompartmentID: testCompartment,
		DisplayName:   "web-1",
		InstanceDetails: &oci.ComputeInstanceDetails{
			InstanceType: "compute",
			LaunchDetails: &oci.LaunchInstanceDetails{
				CompartmentID:      testCompartment,
				AvailabilityDomain: "AD-1",
				DisplayName:        "web-1",
				Shape:              "VM.Standard2.1",
				ShapeConfig:        &oci.LaunchShapeConfig{Ocpus: ptr(1), MemoryInGBs: ptr(4)},
				AvailabilityConfig: &oci.InstanceAvailabilityConfig{RecoveryAction: "RESTORE_INSTANCE"},
				InstanceOptions:    &oci.InstanceOptions{},
				SourceDetails:      &oci.InstanceSourceDetails{SourceType: "image", ImageID: "ocid1.image.a"},
				Metadata:           map[string]string{"ssh_authorized_keys": "ssh-ed25519 AAAA test"},
				CreateVnicDetails: &oci.CreateVnicDetails{
					SubnetID:               "ocid1.subnet.b",
					AssignPrivateDNSRecord: true,
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_OptionalFields(t *testing.T) {
	got := Assemble(testCompartment, testIDs, Parameters{
		Shape:          "VM.Standard2.1",
		RecoveryAction: oci.RecoveryActionStopInstance,
		AssignPublicIP: true,
	})

	launch := got.InstanceDetails.LaunchDetails
	assert.Nil(t, launch.ShapeConfig)
	assert.NotContains(t, launch.Metadata, "ssh_authorized_keys")
	assert.True(t, launch.CreateVnicDetails.AssignPublicIP)
	assert.Equal(t, "STOP_INSTANCE", launch.AvailabilityConfig.RecoveryAction)
}

func TestAssemble_OnlyOCPUs(t *testing.T) {
	got := Assemble(testCompartment, testIDs, Parameters{Shape: "VM.Standard.A1.Flex", OCPUs: ptr(2)})

	shape := got.InstanceDetails.LaunchDetails.ShapeConfig
	if diff := cmp.Diff(&oci.LaunchShapeConfig{Ocpus: ptr(2)}, shape); diff != "" {
		t.Errorf("shape config mismatch (-want +got):\n%s", diff)
	}
}
