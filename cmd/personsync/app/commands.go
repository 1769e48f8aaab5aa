package app

import (
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/personsync"
	"github.com/agentstation/personsync/internal/mockdesk"
	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/logging"
	"github.com/agentstation/personsync/pkg/pipeline"
)

// NewProcessCommand creates the process command.
func (a *App) NewProcessCommand() *cobra.Command {
	var (
		file  string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Provision the person described by a set of login attributes",
		Long: `Process runs the provisioning step once: the person is looked up by
mail and created when absent.

Attributes come from a YAML or JSON file mapping names to a value or a
list of values, and from repeated --attr name=value flags.`,
		Example: `  personsync process --attributes login.yaml
  personsync process --attr mail=jane@example.com --attr sn=Doe --attr givenName=Jane`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attrs := attributes.Set{}
			if file != "" {
				loaded, err := LoadAttributes(file)
				if err != nil {
					return err
				}
				attrs = loaded
			}
			if err := ParseAttrFlags(attrs, pairs); err != nil {
				return err
			}

			step, err := a.Step()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), a.logger)
			ctx = logging.WithRequestID(ctx, uuid.NewString())

			result, err := step.Reconcile(ctx, &pipeline.Request{Attributes: attrs})
			if result != nil {
				if printErr := printResult(cmd.OutOrStdout(), a.config.Format, logging.RequestID(ctx), result); printErr != nil {
					a.logger.Warn().Err(printErr).Msg("printing result")
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "attributes", "a", "", "YAML or JSON attribute file")
	cmd.Flags().StringArrayVar(&pairs, "attr", nil, "attribute as name=value, repeat for more values")

	return cmd
}

// NewProbeCommand creates the probe command.
func (a *App) NewProbeCommand() *cobra.Command {
	var mail string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether a person exists for an email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attrs := attributes.Set{constants.AttrMail: {mail}}
			email, err := attrs.RequireSingle(constants.AttrMail, constants.MinMailLength, constants.MaxMailLength)
			if err != nil {
				return err
			}

			client, err := a.Client()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), a.logger)
			ctx = logging.WithRequestID(ctx, uuid.NewString())

			outcome, err := client.ProbeExists(ctx, email)
			if printErr := printProbe(cmd.OutOrStdout(), a.config.Format, email, outcome); printErr != nil {
				a.logger.Warn().Err(printErr).Msg("printing probe outcome")
			}
			return err
		},
	}

	cmd.Flags().StringVar(&mail, "mail", "", "email to look up")
	_ = cmd.MarkFlagRequired("mail")

	return cmd
}

// NewMockCommand creates the mock command.
func (a *App) NewMockCommand() *cobra.Command {
	var addr, username, password string

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory persons API for local testing",
		Long: `Mock serves the persons endpoints personsync uses from memory. Point
PERSONSYNC_BASE_URL at it to try the other commands without a TOPdesk
installation. An empty --username disables authentication.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			desk := mockdesk.New(username, password)
			return desk.ListenAndServe(cmd.Context(), addr, a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&username, "username", "", "basic auth username")
	cmd.Flags().StringVar(&password, "password", "", "basic auth password")

	return cmd
}

// NewConfigCommand creates the config command.
func (a *App) NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective remote configuration, password masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.RemoteConfig()
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), a.config.Format, cfg.Redacted())
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !a.config.Verbose && a.config.Format == formatText {
				fmt.Fprintf(out, "%s %s\n", personsync.Name, a.version)
				return nil
			}
			info := a.versionInfo()
			if a.config.Format == formatText {
				fmt.Fprintln(out, info.String())
				return nil
			}
			return encode(out, a.config.Format, info)
		},
	}
}

// versionInfo merges the linker-provided build details into the module
// build info.
func (a *App) versionInfo() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(personsync.Name, "Provision TOPdesk persons from login attributes", ""),
		func(i *goversion.Info) {
			if a.version != "" {
				i.GitVersion = a.version
			}
			if a.commit != "" {
				i.GitCommit = a.commit
			}
			if a.date != "" {
				i.BuildDate = a.date
			}
			if a.builtBy != "" {
				i.BuiltBy = a.builtBy
			}
		},
	)
}
