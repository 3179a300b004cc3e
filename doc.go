// Package nbdoc converts Jupyter notebooks into document trees and renders
// them as HTML pages or pseudo-XML dumps.
//
// # Quick Start
//
// Create a converter and convert the notebook bytes:
//
//	conv, err := nbdoc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, _ := os.ReadFile("analysis.ipynb")
//	result, err := conv.Convert(ctx, nbdoc.Input{
//	    Notebook:   data,
//	    SourcePath: "analysis.ipynb",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("analysis.html", result.Output, 0644)
//
// The result carries the document tree (result.Tree), the serialized
// output, the files written to the output folder and the number of warning
// nodes in the tree.
//
// # Conversion Pipeline
//
//  1. Notebook parsing (nbformat 4 JSON)
//  2. Notebook-level configuration overrides from the notebook metadata
//  3. Cell rendering: markdown via Goldmark, code source and outputs
//     through a MIME priority list per builder
//  4. Optional side files: images, processed.ipynb and stylesheets
//  5. Serialization to HTML (with Chroma highlighting) or pseudo-XML
//
// Problems local to one cell or output never abort a conversion: they are
// logged and left in the tree as system_message warning nodes.
//
// # Configuration
//
// Rendering options live in a Config, loaded from YAML or built in code:
//
//	cfg, err := nbdoc.LoadConfig("nbdoc")
//	conv, err := nbdoc.NewConverter(
//	    nbdoc.WithConfig(cfg),
//	    nbdoc.WithFormat(nbdoc.FormatPseudoXML),
//	)
//
// The same keys can be overridden per notebook (under metadata_key in the
// notebook metadata) and per cell (under cell_render_key in the cell
// metadata).
//
// # Concurrency
//
// A Converter is safe for concurrent use; each Convert call builds its own
// render state.
package nbdoc
