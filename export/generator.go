package export

import (
	"github.com/Azhovan/halyard"
)

// Generator renders extracted settings into one artifact format.
type Generator interface {
	// Name returns a short identifier for the format (e.g., "dotenv").
	Name() string

	// Generate renders the settings.
	Generate(s *Settings) ([]byte, error)
}

// DotEnv generates a dotenv template: one "# <Group> settings" header per
// settings group, then KEY=value lines quoted only where needed.
type DotEnv struct {
	// Header is an optional banner comment placed at the top of the file.
	Header string
}

func (DotEnv) Name() string { return "dotenv" }

func (g DotEnv) Generate(s *Settings) ([]byte, error) {
	doc := halyard.NewDocument()
	if g.Header != "" {
		doc.AppendComment(g.Header)
	}

	group := ""
	for _, f := range s.Fields {
		if f.Group != group {
			if doc.Len() > 0 {
				doc.AppendBlank()
			}
			group = f.Group
			doc.AppendComment(group + " settings")
		}
		doc.Set(f.Name, f.Value, halyard.WithQuoteMode(halyard.QuoteAuto))
	}

	return []byte(doc.String()), nil
}

// Shell generates a sourceable shell script of "export KEY='value'" lines.
type Shell struct{}

func (Shell) Name() string { return "shell" }

func (Shell) Generate(s *Settings) ([]byte, error) {
	doc := halyard.NewDocument()
	for _, f := range s.Fields {
		doc.Set(f.Name, f.Value, halyard.WithExport())
	}
	return []byte(doc.String()), nil
}
