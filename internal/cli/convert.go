package cli

import (
	"github.com/spf13/cobra"

	"github.com/viktori/matteray/pkg/codec"
	apperr "github.com/viktori/matteray/pkg/errors"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "convert IN OUT",
		Short:   "Convert a matrix document between JSON and TOML",
		Example: "  matteray convert rotation.json rotation.toml",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if err := apperr.ValidateDocumentPath(out); err != nil {
				return err
			}
			doc, err := readDocument(in)
			if err != nil {
				return err
			}
			if name != "" {
				doc.Name = name
			}

			if err := codec.ExportFile(out, doc); err != nil {
				return apperr.FromDomain(err)
			}
			c.Logger.Debug("converted", "from", in, "to", out, "rows", doc.Matrix.Rows(), "columns", doc.Matrix.Columns())

			printSuccess("Converted %s", doc.Name)
			printFile(out)
			printNextStep("Show it", "matteray show "+out)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "rename the document")
	return cmd
}
