package cmdutil

import (
	"bytes"
	"testing"

	"github.com/permdeck/permdeck/internal/cli/output"
)

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single item",
			input:    "alice",
			expected: []string{"alice"},
		},
		{
			name:     "multiple items",
			input:    "alice,bob,carol",
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name:     "items with spaces",
			input:    "alice, bob , carol",
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name:     "empty items filtered out",
			input:    "alice,,bob,",
			expected: []string{"alice", "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCommaSeparatedList(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("ParseCommaSeparatedList(%q) = %v, want %v", tt.input, result, tt.expected)
				return
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("ParseCommaSeparatedList(%q)[%d] = %q, want %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestBoolToYesNo(t *testing.T) {
	tests := []struct {
		input    bool
		expected string
	}{
		{true, "yes"},
		{false, "no"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := BoolToYesNo(tt.input)
			if result != tt.expected {
				t.Errorf("BoolToYesNo(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEmptyOr(t *testing.T) {
	if got := EmptyOr("", "-"); got != "-" {
		t.Errorf("EmptyOr(\"\", \"-\") = %q, want \"-\"", got)
	}
	if got := EmptyOr("value", "-"); got != "value" {
		t.Errorf("EmptyOr(\"value\", \"-\") = %q, want \"value\"", got)
	}
}

func TestPrintOutputEmptyTable(t *testing.T) {
	Flags.Output = "table"
	defer func() { Flags.Output = "" }()

	var buf bytes.Buffer
	err := PrintOutput(&buf, nil, true, "Nothing here.", nil)
	if err != nil {
		t.Fatalf("PrintOutput returned error: %v", err)
	}
	if buf.String() != "Nothing here.\n" {
		t.Errorf("PrintOutput wrote %q, want empty message", buf.String())
	}
}

func TestPrintOutputJSON(t *testing.T) {
	Flags.Output = "json"
	defer func() { Flags.Output = "" }()

	var buf bytes.Buffer
	err := PrintOutput(&buf, map[string]string{"path": "/docs"}, false, "", nil)
	if err != nil {
		t.Fatalf("PrintOutput returned error: %v", err)
	}
	if got := buf.String(); got != "{\n  \"path\": \"/docs\"\n}\n" {
		t.Errorf("PrintOutput wrote %q", got)
	}
}

func TestPrintOutputInvalidFormat(t *testing.T) {
	Flags.Output = "xml"
	defer func() { Flags.Output = "" }()

	var buf bytes.Buffer
	if err := PrintOutput(&buf, nil, true, "", nil); err == nil {
		t.Error("expected error for invalid output format")
	}
}

func TestPrintResourceTable(t *testing.T) {
	Flags.Output = "table"
	defer func() { Flags.Output = "" }()

	table := output.NewTableData("PATH", "USER")
	table.AddRow("/docs", "alice")

	var buf bytes.Buffer
	if err := PrintResource(&buf, nil, table); err != nil {
		t.Fatalf("PrintResource returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("PrintResource wrote nothing for table format")
	}
}
