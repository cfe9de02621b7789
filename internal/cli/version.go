package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viktori/matteray/pkg/buildinfo"
)

// versionCommand creates the version command. The global --verbose flag adds
// the manifest and project metadata.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", appName, buildinfo.String())
			if !c.verbose {
				return nil
			}

			fmt.Fprintln(out)
			printKeyValue(out, "Group", buildinfo.Group)
			for _, attr := range buildinfo.Manifest() {
				printKeyValue(out, attr.Name, attr.Value)
			}

			p := buildinfo.Project
			fmt.Fprintln(out)
			fmt.Fprintln(out, StyleTitle.Render(p.Name)+" "+StyleDim.Render(p.Description))
			printKeyValue(out, "URL", StyleLink.Render(p.URL))
			for _, l := range p.Licenses {
				printKeyValue(out, "License", l.Name)
			}
			ids := make([]string, len(p.Developers))
			for i, d := range p.Developers {
				ids[i] = d.ID
			}
			printKeyValue(out, "Developers", strings.Join(ids, ", "))
			printKeyValue(out, "SCM", p.SCM)
			printKeyValue(out, "Issues", p.IssueTracker)
			return nil
		},
	}
}
