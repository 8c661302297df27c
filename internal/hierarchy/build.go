package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyHierarchy = errors.New("hierarchy has no salespeople")

type record struct {
	code    string
	name    string
	variant string
}

// parseRecord splits "code{name|Variant". ok is false for empty or
// malformed records, which Build skips.
func parseRecord(s string) (record, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return record{}, false
	}
	code, rest, found := strings.Cut(s, "{")
	if !found {
		return record{}, false
	}
	name, variant, found := strings.Cut(rest, "|")
	if !found {
		return record{}, false
	}
	return record{
		code:    strings.TrimSpace(code),
		name:    strings.TrimSpace(name),
		variant: strings.TrimSpace(variant),
	}, true
}

func isLeftCode(code string) bool {
	return code == "0" || strings.EqualFold(code, "left")
}

// Build parses the legacy hierarchy notation, a sequence of
// "code{name|Variant}" records. The first record is the root. Code 0 (or
// "left") hangs the next node as left child of the previous one; any other
// code hangs it as right child of the closest ancestor of the previous node
// that has no right child yet.
//
// When no ancestor has a free right slot the build stops and the remaining
// records are ignored; Dropped reports how many. An unknown variant fails the
// whole build, ignored records included.
func Build(spec string) (*Hierarchy, error) {
	h := newHierarchy()
	cursor := NoNode

	records := strings.Split(spec, "}")
	for i, raw := range records {
		rec, ok := parseRecord(raw)
		if !ok {
			continue
		}
		v, err := ParseVariant(rec.variant)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.name, err)
		}

		if cursor == NoNode {
			cursor = h.add(rec.name, v)
			continue
		}

		if isLeftCode(rec.code) {
			id := h.add(rec.name, v)
			h.setLeft(cursor, id)
			cursor = id
			continue
		}

		slot := h.nodes[cursor].parent
		for slot != NoNode && h.nodes[slot].right != NoNode {
			slot = h.nodes[slot].parent
		}
		if slot == NoNode {
			dropped, err := countRecords(records[i+1:])
			if err != nil {
				return nil, err
			}
			h.dropped = dropped + 1
			break
		}
		id := h.add(rec.name, v)
		h.setRight(slot, id)
		cursor = id
	}

	if cursor == NoNode {
		return nil, ErrEmptyHierarchy
	}
	for h.nodes[cursor].parent != NoNode {
		cursor = h.nodes[cursor].parent
	}
	h.root = cursor
	return h, nil
}

// countRecords counts the well-formed records left over after the build
// stopped. Their variants are still checked.
func countRecords(raw []string) (int, error) {
	n := 0
	for _, r := range raw {
		rec, ok := parseRecord(r)
		if !ok {
			continue
		}
		if _, err := ParseVariant(rec.variant); err != nil {
			return 0, fmt.Errorf("ignored record %s: %w", rec.name, err)
		}
		n++
	}
	return n, nil
}
