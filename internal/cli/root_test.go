package cli

import (
	"bytes"
	"testing"

	"github.com/dreamware/ticklist/internal/client"
	"github.com/dreamware/ticklist/internal/todo"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"123456", 123456, false},
		{"-3", -3, false}, // Placeholders are addressable mid-flight
		{"abc", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		id, err := parseID(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseID(%q): expected error, got %d", tt.arg, id)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseID(%q): unexpected error: %v", tt.arg, err)
			continue
		}
		if id != tt.want {
			t.Errorf("parseID(%q): expected %d, got %d", tt.arg, tt.want, id)
		}
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		want    client.Filter
		wantErr bool
	}{
		{"all", client.FilterAll, false},
		{"", client.FilterAll, false},
		{"active", client.FilterActive, false},
		{"completed", client.FilterCompleted, false},
		{"done", 0, true},
		{"ALL", 0, true},
	}

	for _, tt := range tests {
		got, err := parseFilter(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseFilter(%q): expected error, got %v", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFilter(%q): unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFilter(%q): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestPrintTodos(t *testing.T) {
	var buf bytes.Buffer
	printTodos(&buf, []client.TodoView{
		{Item: todo.Item{ID: 3, Title: "apple"}},
		{Item: todo.Item{ID: 12, Title: "banana", Completed: true}},
	})

	want := "[ ]    3  apple\n[x]   12  banana\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected output:\n%q\ngot:\n%q", want, got)
	}
}
