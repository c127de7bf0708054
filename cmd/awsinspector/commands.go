package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/internal/version"
	"github.com/younsl/awsinspector/pkg/arn"
	"github.com/younsl/awsinspector/pkg/focus"
	"github.com/younsl/awsinspector/pkg/formatter"
	"github.com/younsl/awsinspector/pkg/tree"
)

func newTreeCmd() *cobra.Command {
	var (
		focusFile string
		standard  string
		stack     string
		profile   string
		depth     int
		showARNs  bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Expand a focus into a tree of AWS resources",
		Example: `  awsinspector tree
  awsinspector tree --standard everything-in-all-profiles --depth 3
  awsinspector tree --focus-file my.focus.yaml --arns
  awsinspector tree --stack arn:aws:cloudformation:us-east-1:123456789012:stack/app/1a2b --profile dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			ctx := cmd.Context()

			var f *models.Focus
			var err error
			switch {
			case stack != "":
				f, err = deriveFocus(ctx, a, profile, stack)
			case focusFile != "":
				f, err = focus.LoadFile(focusFile)
			default:
				f, err = focus.LoadStandard(standard)
			}
			if err != nil {
				return err
			}

			engine := a.engine()
			engine.SetFocus(f)
			<-engine.Changed()

			startTime := time.Now()
			s := startSpinner("Resolving focus ...")
			rows, err := newWalker(engine, depth).Walk(ctx)
			s.Stop()
			if err != nil {
				return err
			}

			formatter.PrintTree(os.Stdout, rows, showARNs)
			fmt.Println()
			formatter.PrintTimestamp(os.Stdout, startTime, time.Since(startTime))
			return nil
		},
	}

	cmd.Flags().StringVarP(&focusFile, "focus-file", "f", "", "Focus document to expand (JSON or YAML)")
	cmd.Flags().StringVarP(&standard, "standard", "s", focus.EverythingInDefaultRegion, "Built-in focus to expand")
	cmd.Flags().StringVar(&stack, "stack", "", "Expand the resources of this CloudFormation stack ARN")
	cmd.Flags().StringVarP(&profile, "profile", "p", "default", "Profile used with --stack")
	cmd.Flags().IntVarP(&depth, "depth", "d", 5, "Number of tree levels to expand (1-5)")
	cmd.Flags().BoolVar(&showARNs, "arns", false, "Show full ARNs next to resources")
	cmd.MarkFlagsMutuallyExclusive("focus-file", "standard", "stack")
	return cmd
}

func deriveFocus(ctx context.Context, a *app, profile, stackArn string) (*models.Focus, error) {
	stack, err := arn.Parse(stackArn)
	if err != nil {
		return nil, err
	}
	s := startSpinner("Reading stack resources ...")
	defer s.Stop()
	return a.deriver().DeriveFromStack(ctx, profile, stack)
}

func newDescribeCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "describe ARN",
		Short: "Show the details of one AWS resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			details := tree.NewDetails(a.registry, a.logger)
			details.SetSelectedResource(profile, args[0])

			s := startSpinner("Describing resource ...")
			fields, err := details.Fields(cmd.Context())
			s.Stop()
			if err != nil {
				return err
			}
			formatter.PrintDetails(os.Stdout, fields)
			return nil
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "default", "Profile to describe the resource with")
	return cmd
}

func newDeriveCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "derive STACK_ARN",
		Short: "Print the focus document equivalent to a CloudFormation stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := deriveFocus(cmd.Context(), newApp(), profile, args[0])
			if err != nil {
				return err
			}
			return formatter.PrintFocus(os.Stdout, f)
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "default", "Profile owning the stack")
	return cmd
}

func newFocusesCmd() *cobra.Command {
	var show string

	cmd := &cobra.Command{
		Use:   "focuses",
		Short: "List the built-in focuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if show != "" {
				f, err := focus.LoadStandard(show)
				if err != nil {
					return err
				}
				return formatter.PrintFocus(os.Stdout, f)
			}
			formatter.PrintStandardFocuses(os.Stdout, focus.StandardFocuses())
			return nil
		},
	}
	cmd.Flags().StringVar(&show, "show", "", "Print the document of one built-in focus")
	return cmd
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured profiles with their account id and alias",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			ids, err := a.shared.ProfileIDs()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Printf("No profiles found in %s\n", a.shared.Path())
				return nil
			}

			s := startSpinner(fmt.Sprintf("Checking %d profiles ...", len(ids)))
			profiles := make([]models.ProfileInfo, len(ids))
			var wg sync.WaitGroup
			for i, id := range ids {
				wg.Add(1)
				go func(idx int, profile string) {
					defer wg.Done()
					profiles[idx] = profileInfo(cmd.Context(), a, profile)
				}(i, id)
			}
			wg.Wait()
			s.Stop()

			formatter.PrintProfiles(os.Stdout, profiles)
			return nil
		},
	}
}

func profileInfo(ctx context.Context, a *app, profile string) models.ProfileInfo {
	info := models.ProfileInfo{ProfileID: profile}
	info.DefaultRegion, _ = a.shared.DefaultRegion(profile)

	account, err := a.identity.CallerAccountID(ctx, profile)
	if err != nil {
		info.Err = err
		return info
	}
	alias, err := a.identity.AccountAlias(ctx, profile)
	if err != nil {
		info.Err = err
		return info
	}
	info.AccountID, info.AccountAlias = account, alias
	return info
}

func newStacksCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "List CloudFormation stacks that can be used as a focus",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			view, err := a.focusView()
			if err != nil {
				return err
			}

			s := startSpinner("Listing stacks ...")
			items, err := stackItems(cmd.Context(), view, profile)
			s.Stop()
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No stacks found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "PROFILE\tREGION\tSTACK\tSTATUS")
			for _, it := range items {
				if it.Kind == tree.ItemError {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Profile, it.Region, "-", color.RedString(it.Label))
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Profile, it.Region, it.Label, it.Description)
			}
			w.Flush()
			fmt.Printf("\nFound %s stacks. Use 'awsinspector tree --stack <ARN>' to expand one.\n", humanize.Comma(int64(countStacks(items))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Only list stacks of this profile")
	return cmd
}

// stackItems walks the CloudFormation group of the focus view down to the
// stack items, keeping error items so failures stay visible
func stackItems(ctx context.Context, view *tree.FocusView, profile string) ([]*tree.FocusItem, error) {
	groups, err := view.Children(ctx, nil)
	if err != nil {
		return nil, err
	}
	var cfnGroup *tree.FocusItem
	for _, g := range groups {
		if g.Label == tree.CloudFormationLabel {
			cfnGroup = g
		}
	}
	if cfnGroup == nil {
		return nil, errors.New("focus view has no CloudFormation group")
	}

	profiles, err := view.Children(ctx, cfnGroup)
	if err != nil {
		return nil, err
	}

	var items []*tree.FocusItem
	for _, p := range profiles {
		if p.Kind == tree.ItemError {
			if profile == "" {
				items = append(items, p)
			}
			continue
		}
		if profile != "" && p.Profile != profile {
			continue
		}
		regions, err := view.Children(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, r := range regions {
			if r.Kind == tree.ItemError {
				items = append(items, r)
				continue
			}
			stacks, err := view.Children(ctx, r)
			if err != nil {
				return nil, err
			}
			for _, st := range stacks {
				if st.Kind != tree.ItemPlaceholder {
					items = append(items, st)
				}
			}
		}
	}
	return items, nil
}

func countStacks(items []*tree.FocusItem) int {
	n := 0
	for _, it := range items {
		if it.Kind == tree.ItemStack {
			n++
		}
	}
	return n
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Get())
		},
	}
}
