package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xmlmerge/pkg/script"
)

// checkCommand creates the check command, which validates an edit script
// without touching any document.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>",
		Short: "Validate an edit script and list its actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				printError("%s is invalid", args[0])
				return err
			}

			printSuccess("%s is valid", args[0])
			indent, decl, sorted := s.Settings()
			printKeyValue("indent", fmt.Sprint(indent))
			printKeyValue("declaration", fmt.Sprint(decl))
			printKeyValue("sort attrs", fmt.Sprint(sorted))

			if len(s.Steps) == 0 {
				printWarning("script has no actions; apply will only reformat")
				return nil
			}
			for i, st := range s.Steps {
				printDetail("%d. %s", i+1, st.Label())
			}
			printNextStep("Apply it", fmt.Sprintf("%s apply <input> --script %s", appName, args[0]))
			return nil
		},
	}
}
