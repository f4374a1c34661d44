package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/intergeo/pkg/board"
	"github.com/matzehuels/intergeo/pkg/cache"
	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/intergeo"
	graphio "github.com/matzehuels/intergeo/pkg/io"
)

// Imported is the outcome of the import stage.
type Imported struct {
	Graph     *dag.DAG
	GraphHash string

	// Construction is nil when the graph came from the cache.
	Construction *intergeo.Construction
	Diagnostics  []intergeo.Diagnostic
}

// Import parses a document, replays it on a fresh board and builds the
// construction graph. When reading stops on a fatal error, the returned
// Imported still holds the partial construction and its diagnostics.
func Import(opts Options) (*Imported, error) {
	doc, err := intergeo.Parse(opts.Document)
	if err != nil {
		return nil, err
	}

	reader := intergeo.NewReader(board.New(), intergeo.Options{
		Dependent: opts.Dependent,
		Logger:    opts.Logger,
	})
	c, err := reader.Read(doc)
	im := &Imported{Construction: c, Diagnostics: c.Diagnostics.Entries()}
	if err != nil {
		return im, err
	}

	g, err := c.Graph()
	if err != nil {
		return im, err
	}
	im.Graph = g
	return im, nil
}

// graphEntry is the cached form of an import.
type graphEntry struct {
	Graph       json.RawMessage       `json:"graph"`
	Diagnostics []intergeo.Diagnostic `json:"diagnostics,omitempty"`
}

// encode serializes the import for the cache and sets GraphHash.
func (im *Imported) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(im.Graph, &buf); err != nil {
		return nil, err
	}
	im.GraphHash = cache.Hash(buf.Bytes())
	return json.Marshal(graphEntry{Graph: buf.Bytes(), Diagnostics: im.Diagnostics})
}

func decodeImported(data []byte) (*Imported, error) {
	var entry graphEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode cached graph: %w", err)
	}
	g, err := graphio.ReadJSON(bytes.NewReader(entry.Graph))
	if err != nil {
		return nil, fmt.Errorf("decode cached graph: %w", err)
	}
	return &Imported{
		Graph:       g,
		GraphHash:   cache.Hash(entry.Graph),
		Diagnostics: entry.Diagnostics,
	}, nil
}
