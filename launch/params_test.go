package launch

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idanyas/oci-launch/prompt"
)

func TestParameters_Defaults(t *testing.T) {
	r := newResolver(map[string]string{
		"SHAPE":                    "VM.Standard.A1.Flex",
		"OPERATING_SYSTEM":         "Canonical Ubuntu",
		"OPERATING_SYSTEM_VERSION": "22.04",
	}, nil)

	got, err := r.Parameters(context.Background())
	require.NoError(t, err)

	want := Parameters{
		Shape:                  "VM.Standard.A1.Flex",
		OperatingSystem:        "Canonical Ubuntu",
		OperatingSystemVersion: "22.04",
		RecoveryAction:         "RESTORE_INSTANCE",
		DisplayName:            "vm-standard-a1-flex-20240615-1230",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestParameters_AllSet(t *testing.T) {
	r := newResolver(map[string]string{
		"SHAPE":                    "VM.Standard.E4.Flex",
		"OCPU":                     "2",
		"MEMORY_IN_GB":             "16.5",
		"OPERATING_SYSTEM":         "Oracle Linux",
		"OPERATING_SYSTEM_VERSION": "9",
		"DOMAIN_NAME":              "AD-3",
		"SUBNET_NAME":              "private",
		"RECOVERY_ACTION":          "STOP_INSTANCE",
		"ASSIGN_PUBLIC_IP":         "false",
		"DISPLAY_NAME":             "web-1",
	}, nil)

	got, err := r.Parameters(context.Background())
	require.NoError(t, err)

	want := Parameters{
		Shape:                  "VM.Standard.E4.Flex",
		OCPUs:                  ptr(2),
		MemoryInGBs:            ptr(16.5),
		OperatingSystem:        "Oracle Linux",
		OperatingSystemVersion: "9",
		DomainName:             "AD-3",
		SubnetName:             "private",
		RecoveryAction:         "STOP_INSTANCE",
		AssignPublicIP:         true,
		DisplayName:            "web-1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestParameters_ShapeRequired(t *testing.T) {
	p := &scriptedPrompter{}
	_, err := newResolver(map[string]string{"OCPU": "1"}, p).Parameters(context.Background())
	require.ErrorIs(t, err, ErrShapeNotSet)
	assert.Empty(t, p.asked)
}

func TestParameters_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"ocpu not a number": {"OCPU": "one"},
		"memory negative":   {"MEMORY_IN_GB": "-4"},
		"recovery action":   {"RECOVERY_ACTION": "REBOOT"},
	}
	for name, extra := range tests {
		t.Run(name, func(t *testing.T) {
			env := map[string]string{
				"SHAPE":                    "VM.Standard2.1",
				"OPERATING_SYSTEM":         "Oracle Linux",
				"OPERATING_SYSTEM_VERSION": "9",
			}
			for k, v := range extra {
				env[k] = v
			}
			_, err := newResolver(env, nil).Parameters(context.Background())
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestParameters_ImageNameFromEnv(t *testing.T) {
	p := &scriptedPrompter{}
	got, err := newResolver(map[string]string{
		"SHAPE":      "VM.Standard2.1",
		"IMAGE_NAME": "Oracle-Linux-9.3-2024.01.26-0",
	}, p).Parameters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Oracle-Linux-9.3-2024.01.26-0", got.ImageName)
	assert.Empty(t, p.asked)
}

func TestParameters_ImageNamePrompt(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"", "Canonical-Ubuntu-22.04-2024.01.12-0"}}
	got, err := newResolver(map[string]string{
		"SHAPE":            "VM.Standard2.1",
		"OPERATING_SYSTEM": "Canonical Ubuntu",
	}, p).Parameters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Canonical-Ubuntu-22.04-2024.01.12-0", got.ImageName)
	assert.Len(t, p.asked, 2)
}

func TestParameters_ImageNamePromptExhausted(t *testing.T) {
	p := &scriptedPrompter{}
	_, err := newResolver(map[string]string{"SHAPE": "VM.Standard2.1"}, p).Parameters(context.Background())
	require.ErrorIs(t, err, ErrImageNameNotSet)
	assert.Len(t, p.asked, maxImageNamePrompts)
}

func TestParameters_ImageNameNotInteractive(t *testing.T) {
	p := &scriptedPrompter{err: prompt.ErrNotInteractive}
	_, err := newResolver(map[string]string{"SHAPE": "VM.Standard2.1"}, p).Parameters(context.Background())
	require.ErrorIs(t, err, ErrImageNameNotSet)
	require.ErrorIs(t, err, prompt.ErrNotInteractive)
	assert.Len(t, p.asked, 1)
}

func TestSSHKey(t *testing.T) {
	ctx := context.Background()

	key, err := newResolver(map[string]string{"SSH_KEY": "ssh-ed25519 AAAA env"}, nil).SSHKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ssh-ed25519 AAAA env", key)

	p := &scriptedPrompter{answers: []string{"ssh-ed25519 AAAA typed"}}
	key, err = newResolver(nil, p).SSHKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ssh-ed25519 AAAA typed", key)
	assert.Equal(t, []string{"Enter ssh key"}, p.asked)

	key, err = newResolver(nil, nil).SSHKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)

	_, err = newResolver(nil, &scriptedPrompter{err: errors.New("tty closed")}).SSHKey(ctx)
	require.Error(t, err)
}
