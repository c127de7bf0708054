package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/younsl/awsinspector/internal/models"
	"github.com/younsl/awsinspector/pkg/focus"
)

// PrintFocus prints a Focus in its persisted JSON layout
func PrintFocus(w io.Writer, f *models.Focus) error {
	data, err := focus.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode focus: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// PrintStandardFocuses lists the built-in focuses
func PrintStandardFocuses(w io.Writer, focuses []focus.StandardFocus) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL")
	for _, f := range focuses {
		fmt.Fprintf(tw, "%s\t%s\n", f.Key, f.Label)
	}
	tw.Flush()
}

// PrintProfiles lists configured profiles with their account details
func PrintProfiles(w io.Writer, profiles []models.ProfileInfo) {
	width := len("PROFILE")
	for _, p := range profiles {
		if pw := StringWidth(p.ProfileID); pw > width {
			width = pw
		}
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tACCOUNT\tALIAS\tDEFAULT REGION\tSTATUS\n", PadString("PROFILE", width))
	for _, p := range profiles {
		region := p.DefaultRegion
		if region == "" {
			region = "-"
		}
		status := color.GreenString("OK")
		account, alias := p.AccountID, p.AccountAlias
		if p.Err != nil {
			status = color.RedString(truncateString(p.Err.Error(), 60))
			account, alias = "-", "-"
		}
		if alias == "" {
			alias = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", PadString(p.ProfileID, width), account, alias, region, status)
	}
	tw.Flush()
}
