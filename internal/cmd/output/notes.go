package output

import (
	"io"
	"strings"

	"github.com/agentstation/notekeeper/pkg/notes"
)

// maxCellWidth bounds note text in table output. Wide output is not truncated.
const maxCellWidth = 60

// NotesToTableData converts notes to table rows. Empty collections still
// render the header row.
func NotesToTableData(ns notes.Notes, wide bool) Data {
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		text := n.Text
		if !wide {
			text = truncate(singleLine(text), maxCellWidth)
		}
		rows = append(rows, []string{n.Name, text})
	}
	return Data{
		Headers: []string{"note_name", "note"},
		Rows:    rows,
	}
}

// NoteToTableData lists a single note as property/value rows. The text is
// never truncated.
func NoteToTableData(n notes.Note) Data {
	return Data{
		Headers: []string{"property", "value"},
		Rows: [][]string{
			{headerTitle("note_name"), n.Name},
			{headerTitle("note"), n.Text},
		},
	}
}

// FormatNotes writes ns to w in the given format.
func FormatNotes(w io.Writer, ns notes.Notes, format Format) error {
	if ns == nil {
		ns = notes.Notes{}
	}
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, ns)
	default:
		return TableFormatter{}.Format(w, NotesToTableData(ns, format == FormatWide))
	}
}

// FormatNote writes a single note to w.
func FormatNote(w io.Writer, n notes.Note, format Format) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, n)
	default:
		return TableFormatter{}.Format(w, NoteToTableData(n))
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
