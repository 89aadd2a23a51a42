package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// tableProvider is implemented by outputs that render as a table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd, data)
	}
	switch cliCtx.OutputFormat {
	case "json":
		return printJSON(cmd, data)
	case "table":
		return printTable(cmd, data)
	default:
		return printText(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprint(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

func printTable(cmd *cobra.Command, data interface{}) error {
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(cmd, data)
}

// PrintError writes the user-facing message of err to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	var ae *errors.AppError
	if errors.As(err, &ae) {
		msg = ae.UserMessage()
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", msg)
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// keyValues renders aligned "key  value" lines.
func keyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(padRight(p[0]+":", width+1))
		sb.WriteString("  ")
		sb.WriteString(p[1])
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Solve outputs
// ─────────────────────────────────────────────────────────────────────────────

// resultOutput renders one solve.
type resultOutput chemistry.SolveResult

func atomLabel(a chemistry.AtomView) string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Symbol)
}

func symbols(atoms []chemistry.AtomView) string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.Symbol
	}
	return strings.Join(out, ", ")
}

func (r resultOutput) pairs() [][2]string {
	pairs := [][2]string{
		{"Formula", r.Formula},
		{"Central", fmt.Sprintf("%s, lone pairs %d", atomLabel(r.Central), r.LonePairs)},
		{"Bonded", symbols(r.Bonded)},
		{"Elements", strconv.Itoa(r.ElementCount)},
		{"Mass", formatFloat(r.Mass)},
	}
	if r.Shape != "" {
		pairs = append(pairs, [2]string{"Shape", r.ShapeName})
	}
	if r.Family != "" {
		pairs = append(pairs, [2]string{"Family", r.FamilyName})
	}
	return pairs
}

func (r resultOutput) String() string {
	var sb strings.Builder
	sb.WriteString(keyValues(r.pairs()))
	if len(r.Trace) > 0 {
		sb.WriteString("Trace:\n")
		for i, ev := range r.Trace {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, ev.Text)
		}
	}
	return sb.String()
}

func (r resultOutput) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (r resultOutput) TableRows() [][]string {
	pairs := r.pairs()
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return rows
}

// batchOutput renders a batch solve, one row per formula.
type batchOutput []chemistry.BatchItem

func (b batchOutput) TableHeaders() []string {
	return []string{"#", "FORMULA", "SHAPE", "FAMILY", "ERROR"}
}

func (b batchOutput) TableRows() [][]string {
	rows := make([][]string, len(b))
	for i, it := range b {
		row := []string{strconv.Itoa(it.Index + 1), it.Formula, "", "", ""}
		if it.Result != nil {
			row[2], row[3] = it.Result.ShapeName, it.Result.FamilyName
		}
		if it.Error != nil {
			row[4] = it.Error.Message
		}
		rows[i] = row
	}
	return rows
}

func (b batchOutput) String() string {
	return FormatTable(b.TableHeaders(), b.TableRows())
}

func (b batchOutput) failed() int {
	n := 0
	for _, it := range b {
		if !it.OK() {
			n++
		}
	}
	return n
}

// ─────────────────────────────────────────────────────────────────────────────
// Catalog outputs
// ─────────────────────────────────────────────────────────────────────────────

type elementOutput chemistry.ElementView

func (e elementOutput) pairs() [][2]string {
	return [][2]string{
		{"Symbol", e.Symbol},
		{"Name", e.Name},
		{"Atomic number", strconv.Itoa(e.AtomicNumber)},
		{"Mass", formatFloat(e.Mass)},
		{"Electronegativity", formatFloat(e.Electronegativity)},
		{"Bonding electrons", strconv.Itoa(e.BondingElectrons)},
		{"Lone pairs", strconv.Itoa(e.LonePairs)},
		{"Ionization energy", strconv.Itoa(e.IonizationEnergy)},
		{"Class", e.ClassName},
		{"Metal", strconv.FormatBool(e.Metal)},
		{"Usable", strconv.FormatBool(e.Usable)},
	}
}

func (e elementOutput) String() string { return keyValues(e.pairs()) }

func (e elementOutput) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (e elementOutput) TableRows() [][]string {
	pairs := e.pairs()
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return rows
}

type elementsOutput []chemistry.ElementView

func (l elementsOutput) TableHeaders() []string {
	return []string{"Z", "SYMBOL", "NAME", "CLASS", "EN", "MASS"}
}

func (l elementsOutput) TableRows() [][]string {
	rows := make([][]string, len(l))
	for i, e := range l {
		rows[i] = []string{
			strconv.Itoa(e.AtomicNumber), e.Symbol, e.Name, e.ClassName,
			formatFloat(e.Electronegativity), formatFloat(e.Mass),
		}
	}
	return rows
}

func (l elementsOutput) String() string { return FormatTable(l.TableHeaders(), l.TableRows()) }

type summaryOutput chemistry.CatalogSummary

func (s summaryOutput) TableHeaders() []string {
	return []string{"CLASS", "COUNT", "MEAN EN", "STDDEV EN", "MIN MASS", "MAX MASS"}
}

func (s summaryOutput) TableRows() [][]string {
	rows := make([][]string, len(s.Classes))
	for i, c := range s.Classes {
		rows[i] = []string{
			c.ClassName, strconv.Itoa(c.Count),
			strconv.FormatFloat(c.MeanElectronegativity, 'f', 3, 64),
			strconv.FormatFloat(c.StdDevElectronegativity, 'f', 3, 64),
			formatFloat(c.MinMass), formatFloat(c.MaxMass),
		}
	}
	return rows
}

func (s summaryOutput) String() string {
	return fmt.Sprintf("%d elements\n", s.Elements) + FormatTable(s.TableHeaders(), s.TableRows())
}

type bondOutput chemistry.BondReport

func (b bondOutput) pairs() [][2]string {
	return [][2]string{
		{"Atoms", fmt.Sprintf("%s (%s) - %s (%s)", b.A.Name, b.A.Symbol, b.B.Name, b.B.Symbol)},
		{"Difference", strconv.FormatFloat(b.Difference, 'f', 2, 64)},
		{"Bond", b.TypeName},
		{"Most electronegative", b.MostElectronegative},
	}
}

func (b bondOutput) String() string { return keyValues(b.pairs()) }

func (b bondOutput) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (b bondOutput) TableRows() [][]string {
	pairs := b.pairs()
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return rows
}

//Personal.AI order the ending
