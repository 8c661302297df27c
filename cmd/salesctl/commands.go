package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/inventory"
	"sales-hierarchy/internal/model"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salesctl",
		Short:         "Build sales hierarchies, place leads and report risk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTreeCmd(), newAssignCmd(), newInventoryCmd())
	return root
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <hierarchy>",
		Short: "Print the hierarchy built from the legacy notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hierarchy.Build(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), model.NewHierarchyState(h))
		},
	}
}

type assignResult struct {
	Lead     string  `json:"lead"`
	Value    float64 `json:"value"`
	Assigned bool    `json:"assigned"`
	Rep      string  `json:"rep,omitempty"`
}

type assignReport struct {
	Assignments []assignResult       `json:"assignments"`
	TotalRisk   float64              `json:"total_risk"`
	State       model.HierarchyState `json:"state"`
}

func newAssignCmd() *cobra.Command {
	var leads []string
	cmd := &cobra.Command{
		Use:   "assign <hierarchy>",
		Short: "Assign leads (name=value) in order and report total risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hierarchy.Build(args[0])
			if err != nil {
				return err
			}
			report := assignReport{Assignments: []assignResult{}}
			for _, raw := range leads {
				lead, err := parseLead(raw)
				if err != nil {
					return err
				}
				res := assignResult{Lead: lead.Name(), Value: lead.Value()}
				if id, ok := h.AssignToBestRep(lead); ok {
					res.Assigned = true
					res.Rep = h.Name(id)
				}
				report.Assignments = append(report.Assignments, res)
			}
			report.TotalRisk = h.TotalRisk()
			report.State = model.NewHierarchyState(h)
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringArrayVarP(&leads, "lead", "l", nil, "lead as name=value, repeatable")
	return cmd
}

func parseLead(raw string) (hierarchy.Lead, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return hierarchy.Lead{}, fmt.Errorf("lead %q: expected name=value", raw)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return hierarchy.Lead{}, fmt.Errorf("lead %q: %w", raw, err)
	}
	return hierarchy.NewLead(strings.TrimSpace(name), v)
}

func newInventoryCmd() *cobra.Command {
	var freq bool
	cmd := &cobra.Command{
		Use:   "inventory <comma separated list>",
		Short: "Sort and count an inventory list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []inventory.Option
			if freq {
				opts = append(opts, inventory.WithFreq())
			}
			res := inventory.Parse(args[0], opts...)
			return printJSON(cmd.OutOrStdout(), model.InventoryResponse{
				List:  res.List,
				Count: res.Count,
				Freq:  res.Freq,
			})
		},
	}
	cmd.Flags().BoolVar(&freq, "freq", false, "include first-character frequencies")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
