package cli

import (
	"github.com/spf13/cobra"
)

func newBondCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "bond <a> <b>",
		Short:   "Describe the bond between two elements",
		Example: "  chemsolver bond Na Cl\n  chemsolver bond H O -o json",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, svc, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			rep, err := svc.Bond(cmd.Context(), args[0], args[1], cliCtx.Lang)
			if err != nil {
				return err
			}
			return PrintResult(cmd, bondOutput(*rep))
		},
	}
}

func newElementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "element <symbol>",
		Short: "Show one catalog element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, svc, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			elem, err := svc.Element(cmd.Context(), args[0], cliCtx.Lang)
			if err != nil {
				return err
			}
			return PrintResult(cmd, elementOutput(*elem))
		},
	}
}

func newElementsCmd() *cobra.Command {
	var (
		class   string
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List catalog elements by atomic number",
		Long: "Elements lists the supported elements, optionally filtered by class\n" +
			"(alkaline_metal, transition_metal, nonmetal, semimetal, halogen, noble_gas, ...).\n" +
			"With --summary it prints per-class electronegativity and mass statistics.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, svc, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			if summary {
				sum, err := svc.Summary(cmd.Context(), cliCtx.Lang)
				if err != nil {
					return err
				}
				return PrintResult(cmd, summaryOutput(*sum))
			}
			elems, err := svc.Elements(cmd.Context(), class, cliCtx.Lang)
			if err != nil {
				return err
			}
			return PrintResult(cmd, elementsOutput(elems))
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "filter by element class")
	cmd.Flags().BoolVar(&summary, "summary", false, "print per-class statistics instead of the list")
	return cmd
}

//Personal.AI order the ending
