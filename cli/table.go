package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"go.hackfix.me/fwblock/firewall/netsh"
)

// renderRules writes the rules as a borderless table. Program paths are
// usually the widest column, so it isn't width limited.
func renderRules(rules []netsh.RuleListing, w io.Writer) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(
			tw.Rendition{
				Borders: tw.BorderNone,
				Symbols: tw.NewSymbols(tw.StyleASCII),
				Settings: tw.Settings{
					Lines: tw.Lines{
						ShowHeaderLine: tw.Off,
						ShowFooterLine: tw.Off,
						ShowTop:        tw.Off,
						ShowBottom:     tw.Off,
					},
					Separators: tw.Separators{
						ShowHeader:     tw.Off,
						ShowFooter:     tw.Off,
						BetweenRows:    tw.Off,
						BetweenColumns: tw.Off,
					},
				},
			},
		)),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)

	table.Header([]string{"Name", "Direction", "Action", "Enabled", "Program"})
	for _, r := range rules {
		row := []string{r.Name(), r.Get("Direction"), r.Get("Action"), r.Get("Enabled"), r.Get("Program")}
		if err := table.Append(row); err != nil {
			return err //nolint:wrapcheck // This is wrapped by the caller.
		}
	}

	return table.Render() //nolint:wrapcheck // This is wrapped by the caller.
}
