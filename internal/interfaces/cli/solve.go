package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

func newShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "shape <formula>",
		Short:   "Classify the molecular shape of a formula",
		Example: "  chemsolver shape C,O2\n  chemsolver shape N,H3 --lang it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolveOne(cmd, args[0], []chemistry.Operation{chemistry.OperationShape})
		},
	}
}

func newCompoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "compound <formula>",
		Short:   "Classify the compound family of a formula",
		Example: "  chemsolver compound Na,Cl\n  chemsolver compound H2,O2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolveOne(cmd, args[0], []chemistry.Operation{chemistry.OperationCompound})
		},
	}
}

func newSolveCmd() *cobra.Command {
	var ops []string
	cmd := &cobra.Command{
		Use:   "solve <formula>...",
		Short: "Run shape and compound classification on one or more formulas",
		Long: "Solve runs the selected operations on every formula. With several\n" +
			"formulas the batch is solved concurrently and reported one row per formula;\n" +
			"the command fails when any formula fails.",
		Example: "  chemsolver solve C,O2\n  chemsolver solve C,O2 H2,O S,F6 --ops shape -o table",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseOperations(ops)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return runSolveOne(cmd, args[0], parsed)
			}
			return runSolveBatch(cmd, args, parsed)
		},
	}
	cmd.Flags().StringSliceVar(&ops, "ops", nil, "operations to run: shape,compound (default: both)")
	return cmd
}

func parseOperations(names []string) ([]chemistry.Operation, error) {
	var ops []chemistry.Operation
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		op, err := chemistry.ParseOperation(n)
		if err != nil {
			return nil, errors.InvalidParam("invalid --ops value").WithDetail(err.Error())
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func runSolveOne(cmd *cobra.Command, formula string, ops []chemistry.Operation) error {
	cliCtx, svc, err := serviceFor(cmd)
	if err != nil {
		return err
	}
	res, err := svc.Solve(cmd.Context(), chemistry.SolveRequest{Formula: formula, Operations: ops, Lang: cliCtx.Lang})
	if err != nil {
		return err
	}
	return PrintResult(cmd, resultOutput(*res))
}

func runSolveBatch(cmd *cobra.Command, formulas []string, ops []chemistry.Operation) error {
	cliCtx, svc, err := serviceFor(cmd)
	if err != nil {
		return err
	}
	reqs := make([]chemistry.SolveRequest, len(formulas))
	for i, f := range formulas {
		reqs[i] = chemistry.SolveRequest{Formula: f, Operations: ops, Lang: cliCtx.Lang}
	}
	items, err := svc.SolveBatch(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	out := batchOutput(items)
	if err := PrintResult(cmd, out); err != nil {
		return err
	}
	if n := out.failed(); n > 0 {
		return errors.New(errors.ErrCodeBadRequest, "batch incomplete").
			WithDetail(fmt.Sprintf("%d of %d formulas failed", n, len(items)))
	}
	return nil
}

//Personal.AI order the ending
