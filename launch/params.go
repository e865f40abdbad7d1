package launch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gosimple/slug"

	"github.com/idanyas/oci-launch/config"
	"github.com/idanyas/oci-launch/oci"
	"github.com/idanyas/oci-launch/prompt"
)

const maxImageNamePrompts = 3

// Parameters are the launch settings taken from the environment or the operator.
type Parameters struct {
	Shape                  string
	OCPUs                  *float64
	MemoryInGBs            *float64
	OperatingSystem        string
	OperatingSystemVersion string
	ImageName              string
	DomainName             string
	SubnetName             string
	RecoveryAction         string
	AssignPublicIP         bool
	SSHKey                 string
	DisplayName            string
}

// Resolver reads Parameters from env, prompting for what is missing.
type Resolver struct {
	Env      *config.Env
	Prompter prompt.Prompter
	Now      func() time.Time
}

// Parameters resolves every setting except the SSH key.
func (r *Resolver) Parameters(ctx context.Context) (Parameters, error) {
	var p Parameters

	p.Shape = r.Env.Get("SHAPE")
	if p.Shape == "" {
		return p, ErrShapeNotSet
	}
	clog.InfoContext(ctx, "resolved shape", "shape", p.Shape)

	var err error
	if p.OCPUs, err = r.float("OCPU"); err != nil {
		return p, err
	}
	if p.MemoryInGBs, err = r.float("MEMORY_IN_GB"); err != nil {
		return p, err
	}

	p.RecoveryAction = oci.RecoveryActionRestoreInstance
	if v := r.Env.Get("RECOVERY_ACTION"); v != "" {
		switch v {
		case oci.RecoveryActionRestoreInstance, oci.RecoveryActionStopInstance:
			p.RecoveryAction = v
		default:
			return p, fmt.Errorf("%w: RECOVERY_ACTION must be %s or %s, got %q",
				ErrInvalidParameter, oci.RecoveryActionRestoreInstance, oci.RecoveryActionStopInstance, v)
		}
	}

	p.AssignPublicIP = r.Env.Get("ASSIGN_PUBLIC_IP") != ""
	p.DomainName = r.Env.Get("DOMAIN_NAME")
	p.SubnetName = r.Env.Get("SUBNET_NAME")

	p.OperatingSystem = r.Env.Get("OPERATING_SYSTEM")
	p.OperatingSystemVersion = r.Env.Get("OPERATING_SYSTEM_VERSION")
	if p.OperatingSystem == "" || p.OperatingSystemVersion == "" {
		clog.WarnContext(ctx, "OPERATING_SYSTEM and OPERATING_SYSTEM_VERSION is not set")
		if p.ImageName, err = r.imageName(ctx); err != nil {
			return p, err
		}
	}

	p.DisplayName = r.Env.Get("DISPLAY_NAME")
	if p.DisplayName == "" {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		p.DisplayName = fmt.Sprintf("%s-%s", slug.Make(p.Shape), now().Format("20060102-1504"))
	}

	return p, nil
}

// SSHKey returns SSH_KEY, or asks once for a key. An empty answer is allowed.
func (r *Resolver) SSHKey(ctx context.Context) (string, error) {
	if key := strings.TrimSpace(r.Env.Get("SSH_KEY")); key != "" {
		return key, nil
	}

	clog.WarnContext(ctx, "SSH_KEY is not set")
	clog.InfoContext(ctx, "You need to set at least one ssh key, or you wouldn't be able to login")

	key, err := r.ask("Enter ssh key", "ssh-ed25519 AAAA...")
	if err != nil {
		if errors.Is(err, prompt.ErrNotInteractive) {
			clog.WarnContext(ctx, "launching without an ssh key", "error", err)
			return "", nil
		}
		return "", err
	}
	if key == "" {
		clog.WarnContext(ctx, "launching without an ssh key")
	}
	return key, nil
}

func (r *Resolver) imageName(ctx context.Context) (string, error) {
	if name := r.Env.Get("IMAGE_NAME"); name != "" {
		return name, nil
	}

	for attempt := 1; attempt <= maxImageNamePrompts; attempt++ {
		name, err := r.ask("Enter image name", "Canonical-Ubuntu-22.04-2024.01.12-0")
		if errors.Is(err, prompt.ErrNotInteractive) || errors.Is(err, prompt.ErrAborted) {
			return "", fmt.Errorf("%w: %w", ErrImageNameNotSet, err)
		}
		if err != nil {
			clog.WarnContext(ctx, "image name prompt failed", "attempt", attempt, "error", err)
			continue
		}
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrImageNameNotSet, maxImageNamePrompts)
}

func (r *Resolver) ask(title, placeholder string) (string, error) {
	if r.Prompter == nil {
		return "", prompt.ErrNotInteractive
	}
	return r.Prompter.Ask(title, placeholder)
}

// float parses key as a float64; unset yields nil.
func (r *Resolver) float(key string) (*float64, error) {
	v := strings.TrimSpace(r.Env.Get(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive number, got %q", ErrInvalidParameter, key, v)
	}
	return &f, nil
}
