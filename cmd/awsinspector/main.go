package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	inspector "github.com/younsl/awsinspector/pkg/aws"
	"github.com/younsl/awsinspector/pkg/focus"
	"github.com/younsl/awsinspector/pkg/provider"
	"github.com/younsl/awsinspector/pkg/tree"
)

var (
	debug    bool
	iconRoot string
	noIMDS   bool
)

// app holds the collaborators shared by every subcommand
type app struct {
	logger   *slog.Logger
	shared   *inspector.SharedConfig
	session  *inspector.Session
	registry *provider.Registry
	identity *inspector.IdentityResolver
	regions  *inspector.RegionLister
}

func newApp() *app {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	shared := inspector.NewSharedConfig()
	session := inspector.NewSession(shared, inspector.SessionOptions{
		DisableIMDS: noIMDS,
		Logger:      logger,
	})
	return &app{
		logger:  logger,
		shared:  shared,
		session: session,
		registry: provider.NewRegistry(provider.Config{
			IconRoot: iconRoot,
			Clients:  session,
			Logger:   logger,
		}),
		identity: inspector.NewIdentityResolver(session),
		regions:  inspector.NewRegionLister(session),
	}
}

func (a *app) engine() *tree.Engine {
	return tree.New(tree.Options{
		Registry: a.registry,
		Config:   a.shared,
		Identity: a.identity,
		Regions:  a.regions,
		Logger:   a.logger,
	})
}

func (a *app) deriver() *focus.Deriver {
	return focus.NewDeriver(a.registry, a.session)
}

func (a *app) focusView() (*tree.FocusView, error) {
	p, err := a.registry.Get("cloudformation")
	if err != nil {
		return nil, err
	}
	cfn, ok := p.(*provider.CloudFormation)
	if !ok {
		return nil, fmt.Errorf("unexpected CloudFormation provider %T", p)
	}
	return tree.NewFocusView(tree.FocusViewOptions{
		Config:   a.shared,
		Identity: a.identity,
		Regions:  a.regions,
		Stacks:   cfn,
		Deriver:  a.deriver(),
		Logger:   a.logger,
	}), nil
}

// startSpinner creates and starts a spinner on stderr with a message
func startSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "awsinspector",
		Short: "Browse AWS resources across profiles and regions",
		Long: `awsinspector expands a focus document into a tree of AWS resources
(Lambda, DynamoDB, SQS, SNS, Step Functions, CloudFormation and IAM),
across every profile and region the focus selects.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&iconRoot, "icon-root", "resources/icons", "Directory holding service icons")
	rootCmd.PersistentFlags().BoolVar(&noIMDS, "no-imds", false, "Disable EC2 instance metadata credential lookup")

	rootCmd.AddCommand(
		newTreeCmd(),
		newDescribeCmd(),
		newDeriveCmd(),
		newFocusesCmd(),
		newProfilesCmd(),
		newStacksCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
