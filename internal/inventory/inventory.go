package inventory

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/docsentry/docsentry/internal/docs"
	"github.com/docsentry/docsentry/internal/markdown"
)

// Block summarizes one fenced code region for listing purposes.
type Block struct {
	Language string `json:"language"`
	Line     int    `json:"line"`
	Ordinal  int    `json:"ordinal"`
	Lines    int    `json:"lines"`
}

// Entry is one document with its extracted code blocks.
type Entry struct {
	Path   string  `json:"path"`
	Hash   string  `json:"hash"`
	Blocks []Block `json:"blocks,omitempty"`
}

// Inventory is the result of enumerating a documentation tree without
// running any checks.
type Inventory struct {
	Root       string  `json:"root"`
	Documents  int     `json:"documents"`
	CodeBlocks int     `json:"code_blocks"`
	Entries    []Entry `json:"entries"`
}

// Build walks the tree and extracts code blocks from every document.
// Entries come back in walk order, which is already sorted.
func Build(ctx context.Context, root string, extensions []string, logger hclog.Logger) (*Inventory, error) {
	loader := docs.NewLoader(root, extensions, logger)
	paths, _, err := loader.Walk()
	if err != nil {
		return nil, err
	}

	inv := &Inventory{Root: root, Entries: make([]Entry, 0, len(paths))}

	for res := range loader.Documents(ctx, paths) {
		if res.Err != nil {
			logger.Warn("skipping unreadable file", "path", res.Doc.Path, "error", res.Err)
			continue
		}

		blocks, _ := markdown.ExtractBlocks(res.Doc)
		entry := Entry{Path: res.Doc.Path, Hash: res.Doc.Hash, Blocks: make([]Block, 0, len(blocks))}
		for _, b := range blocks {
			entry.Blocks = append(entry.Blocks, Block{
				Language: b.Language,
				Line:     b.Line,
				Ordinal:  b.Ordinal,
				Lines:    countLines(b.Source),
			})
		}

		inv.Entries = append(inv.Entries, entry)
		inv.Documents++
		inv.CodeBlocks += len(entry.Blocks)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

// WriteText renders a human-readable listing.
func (inv *Inventory) WriteText(w io.Writer) error {
	for _, entry := range inv.Entries {
		if _, err := fmt.Fprintf(w, "%s (%d blocks)\n", entry.Path, len(entry.Blocks)); err != nil {
			return err
		}
		for _, b := range entry.Blocks {
			lang := b.Language
			if lang == "" {
				lang = "(untagged)"
			}
			if _, err := fmt.Fprintf(w, "  %-5d %-12s #%d (%d lines)\n", b.Line, lang, b.Ordinal, b.Lines); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%d code blocks across %d documents\n", inv.CodeBlocks, inv.Documents)
	return err
}

// WriteJSONFile saves the inventory as indented JSON.
func WriteJSONFile(inv *Inventory, outputFile string) error {
	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file %q: %w", outputFile, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	data, err := json.MarshalIndent(inv, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}

func countLines(source string) int {
	if source == "" {
		return 0
	}
	return strings.Count(source, "\n") + 1
}
