package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viktori/matteray/pkg/codec"
	apperr "github.com/viktori/matteray/pkg/errors"
)

// readDocument loads a matrix file and maps failures to coded errors.
func readDocument(path string) (codec.Document[float64], error) {
	if err := apperr.ValidateDocumentPath(path); err != nil {
		return codec.Document[float64]{}, err
	}
	doc, err := codec.ImportFile[float64](path)
	if err != nil {
		return doc, apperr.FromDomain(err)
	}
	return doc, nil
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a matrix as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(doc.Name))
			fmt.Fprintln(out, matrixTable(doc.Matrix, nil))
			printShape(doc.Matrix.Rows(), doc.Matrix.Columns(), false)
			return nil
		},
	}
}
