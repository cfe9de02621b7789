package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/viktori/matteray/pkg/codec"
	apperr "github.com/viktori/matteray/pkg/errors"
)

// viewCommand creates the interactive view command.
func (c *CLI) viewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse and transform a matrix interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				if err := apperr.ValidateDocumentPath(output); err != nil {
					return err
				}
			}
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			runner, closeCache := c.newRunner(cmd.Context())
			defer closeCache()

			model := newMatrixViewModel(cmd.Context(), runner, doc.Name, doc.Matrix)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				return err
			}

			fm, ok := final.(matrixViewModel)
			if !ok || output == "" {
				return nil
			}
			doc.Matrix = fm.matrix
			if err := codec.ExportFile(output, doc); err != nil {
				return apperr.FromDomain(err)
			}
			printSuccess("Saved %s", doc.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "save the matrix to a .json or .toml file on exit")
	return cmd
}
