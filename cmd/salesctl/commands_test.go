package main

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAssignCommand(t *testing.T) {
	out, err := run(t, "assign", "{A|Aggressive}0{B|Indifferent}1{C|SelfDeprecating}",
		"--lead", "shop=50", "-l", "tower=2000000")
	require.NoError(t, err)

	var report assignReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Assignments, 2)
	assert.Equal(t, "B", report.Assignments[0].Rep)
	assert.Equal(t, "A", report.Assignments[1].Rep)
	assert.InDelta(t, 17.5+300000, report.TotalRisk, 1e-6)
}

func TestTreeCommand(t *testing.T) {
	out, err := run(t, "tree", "{A|Loser}0{B|Loser}")
	require.NoError(t, err)

	var st model.HierarchyState
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	require.Len(t, st.Nodes, 2)
	assert.Equal(t, 0.01, st.Nodes[1].SuccessRate)
}

func TestTreeCommandUnknownVariant(t *testing.T) {
	_, err := run(t, "tree", "{A|Wizard}")
	assert.ErrorIs(t, err, hierarchy.ErrUnknownVariant)
}

func TestInventoryCommand(t *testing.T) {
	out, err := run(t, "inventory", "b, a, ab", "--freq")
	require.NoError(t, err)

	var res model.InventoryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"a", "ab", "b"}, res.List)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, res.Freq)
}

func TestParseLead(t *testing.T) {
	_, err := parseLead("novalue")
	assert.Error(t, err)
	_, err = parseLead("x=abc")
	assert.Error(t, err)
	_, err = parseLead("x=-3")
	assert.ErrorIs(t, err, hierarchy.ErrInvalidLead)

	l, err := parseLead(" deal = 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, "deal", l.Name())
	assert.Equal(t, 12.5, l.Value())
}
