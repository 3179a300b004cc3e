package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2doc [flags] <notebook.ipynb|directory>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Jupyter notebooks to HTML pages or pseudo-XML document trees.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -t, --to <format>            Output format: html, pseudoxml (default html)")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "      --output-folder <dir>    Folder for images, stylesheets and processed.ipynb")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel conversions (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -b, --builder <name>         Builder selecting the mime priority list (html, latex, ...)")
	fmt.Fprintln(w, "  -m, --mime-priority <s>      builder:mime/type=weight, repeatable")
	fmt.Fprintln(w, "                               Lower weight wins; empty weight removes the type")
	fmt.Fprintln(w, "                               Builder * applies to every builder")
	fmt.Fprintln(w, "  -n, --number-lines           Number code source lines")
	fmt.Fprintln(w, "      --remove-source          Drop code cell sources")
	fmt.Fprintln(w, "      --remove-outputs         Drop code cell outputs")
	fmt.Fprintln(w, "      --embed-images           Embed images as data URIs")
	fmt.Fprintln(w, "      --style <name>           Page style (default, minimal)")
	fmt.Fprintln(w, "      --highlight-style <name> Chroma style for code (default github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show debug output")
	fmt.Fprintln(w, "      --version                Print version and exit")
	fmt.Fprintln(w, "  -h, --help                   Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 error, 2 usage or invalid input, 3 I/O error.")
}
