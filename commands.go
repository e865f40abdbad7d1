package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/idanyas/oci-launch/config"
	"github.com/idanyas/oci-launch/launch"
	"github.com/idanyas/oci-launch/logging"
	"github.com/idanyas/oci-launch/notifier"
	"github.com/idanyas/oci-launch/oci"
	"github.com/idanyas/oci-launch/prompt"
)

// clientOptions are applied to every OCI client. Tests point it at a fake endpoint.
var clientOptions []oci.Option

type options struct {
	envFile    string
	configFile string
	profile    string
	logFile    string
	debug      bool

	prompter prompt.Prompter
}

func newRootCommand() *cobra.Command {
	opts := &options{prompter: prompt.Terminal{}}

	cmd := &cobra.Command{
		Use:   "oci-launch",
		Short: "Launch one OCI compute instance from environment settings",
		Long: `oci-launch provisions a single Oracle Cloud Infrastructure compute instance.

It reads credentials from the OCI config file, takes launch settings from the
environment (SHAPE is required), resolves the availability domain, image and
subnet, creates an instance configuration and launches it.

Environment:
  SHAPE                     instance shape (required)
  OCPU, MEMORY_IN_GB        flexible shape sizing
  OPERATING_SYSTEM          image operating system
  OPERATING_SYSTEM_VERSION  image operating system version
  IMAGE_NAME                image display name (prompted when the OS is unset)
  DOMAIN_NAME               availability domain (default: first listed)
  SUBNET_NAME               subnet display name (default: newest subnet)
  RECOVERY_ACTION           RESTORE_INSTANCE (default) or STOP_INSTANCE
  ASSIGN_PUBLIC_IP          any non-empty value assigns a public IP
  SSH_KEY                   authorized public key (prompted when unset)
  DISPLAY_NAME              instance configuration name`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStage(cmd, opts, launch.StageLaunch)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "envfile", ".env", "Path to the environment file")
	flags.StringVar(&opts.configFile, "config-file", "", "OCI config file (default $OCI_CONFIG_FILE or ~/.oci/config)")
	flags.StringVar(&opts.profile, "profile", "", "OCI config profile (default $OCI_CONFIG_PROFILE or DEFAULT)")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write JSON log records to this file")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		stageCommand(opts, "resolve", "Resolve the availability domain, image and subnet", launch.StageResolve),
		stageCommand(opts, "render", "Print the instance configuration request without submitting it", launch.StageAssemble),
		stageCommand(opts, "configure", "Create the instance configuration without launching it", launch.StageConfigure),
		stageCommand(opts, "launch", "Create the instance configuration and launch it", launch.StageLaunch),
	)

	return cmd
}

func stageCommand(opts *options, use, short string, stage launch.Stage) *cobra.Command {
	return &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStage(cmd, opts, stage)
		},
	}
}

// runStage logs to stderr so stdout carries only command output. It logs its
// own failures, so cobra is told not to print them again.
func runStage(cmd *cobra.Command, opts *options, stage launch.Stage) error {
	ctx, closeLog, err := logging.Setup(cmd.Context(), cmd.ErrOrStderr(), logging.Options{
		Debug: opts.debug,
		File:  opts.logFile,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := run(ctx, opts, stage)
	if err != nil {
		clog.ErrorContext(ctx, err.Error())
		cmd.SilenceErrors = true
		return err
	}

	if stage == launch.StageAssemble {
		out, err := json.MarshalIndent(res.Request, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}
	return nil
}

func run(ctx context.Context, opts *options, stage launch.Stage) (*launch.Result, error) {
	env, err := config.LoadEnv(opts.envFile)
	if err != nil {
		return nil, err
	}

	path, profile := config.Location(opts.configFile, opts.profile, env)
	cfg, err := config.Load(path, profile)
	if err != nil {
		return nil, fmt.Errorf("config file error: %w", err)
	}
	clog.DebugContext(ctx, "loaded OCI config", "path", path, "profile", profile, "region", cfg.Region)

	signer, err := oci.NewSigner(cfg)
	if err != nil {
		return nil, fmt.Errorf("config file error: %w", err)
	}

	pipeline := &launch.Pipeline{
		CompartmentID: cfg.TenancyID,
		Resolver:      &launch.Resolver{Env: env, Prompter: opts.prompter},
		Services:      launch.ClientServices(oci.NewClient(cfg.Region, signer, clientOptions...)),
		Notifier:      notifier.FromEnv(env.Get),
	}
	return pipeline.Run(ctx, stage)
}
