package nbdoc_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-nbdoc"
)

const exampleNotebook = `{
 "cells": [
  {"cell_type": "code", "execution_count": 1, "metadata": {}, "source": "1 + 1",
   "outputs": [{"output_type": "execute_result", "execution_count": 1, "metadata": {},
                "data": {"text/plain": "2"}}]}
 ],
 "metadata": {"language_info": {"name": "python"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

// Example demonstrates converting a notebook to an HTML page.
func Example() {
	conv, err := nbdoc.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), nbdoc.Input{
		Notebook:   []byte(exampleNotebook),
		SourcePath: "example.ipynb",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(string(result.Output), "cell_output") {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

// Example_pseudoXML demonstrates inspecting the document tree.
func Example_pseudoXML() {
	cfg := nbdoc.DefaultConfig()
	cfg.RemoveCodeSource = true

	conv, err := nbdoc.NewConverter(
		nbdoc.WithConfig(cfg),
		nbdoc.WithFormat(nbdoc.FormatPseudoXML),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), nbdoc.Input{Notebook: []byte(exampleNotebook)})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("warnings:", result.Warnings)
	fmt.Println("source removed:", !strings.Contains(string(result.Output), "1 + 1"))
	// Output:
	// warnings: 0
	// source removed: true
}
