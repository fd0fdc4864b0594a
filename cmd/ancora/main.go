// ancora is a command-line tool for turning PDFs into position-aware
// element streams and anchoring externally produced chunks back onto
// source coordinates.
//
// Usage:
//
//	ancora -in document.pdf [options]
//
// Required flags:
//
//	-in string       Path to the input PDF
//
// Processing options:
//
//	-mode string     Output mode: view, elements, or anchor (default "view")
//	-chunks string   Path to a JSON file of chunks (required for -mode anchor)
//	-config string   Path to a YAML file of pipeline tunables
//	-out string      Output path (default stdout)
//
// Examples:
//
// Render the textual view for a segmenter:
//
//	ancora -in report.pdf -mode view -out report.txt
//
// Emit the element stream as JSON:
//
//	ancora -in report.pdf -mode elements
//
// Anchor segmenter output back onto the document:
//
//	ancora -in report.pdf -mode anchor -chunks chunks.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/ancora"
	"github.com/tsawler/ancora/model"
)

// tunables mirrors the pipeline's configurable parameters. Pointer fields
// distinguish "unset" from an explicit zero, so a partial config file only
// overrides what it names.
type tunables struct {
	LineTolerance           *float64 `yaml:"line_tolerance"`
	WordToleranceMultiplier *float64 `yaml:"word_tolerance_multiplier"`
	GapMultiplier           *float64 `yaml:"gap_multiplier"`
	MatchScoreThreshold     *int     `yaml:"match_score_threshold"`
	CrossPageLineWindow     *int     `yaml:"cross_page_line_window"`
	TableMatchThreshold     *float64 `yaml:"table_match_threshold"`
	TableMargin             *float64 `yaml:"table_margin"`
}

func (t tunables) apply(p *ancora.Pipeline) *ancora.Pipeline {
	if t.LineTolerance != nil {
		p = p.LineTolerance(*t.LineTolerance)
	}
	if t.WordToleranceMultiplier != nil {
		p = p.WordToleranceMultiplier(*t.WordToleranceMultiplier)
	}
	if t.GapMultiplier != nil {
		p = p.GapMultiplier(*t.GapMultiplier)
	}
	if t.MatchScoreThreshold != nil {
		p = p.MatchScoreThreshold(*t.MatchScoreThreshold)
	}
	if t.CrossPageLineWindow != nil {
		p = p.CrossPageLineWindow(*t.CrossPageLineWindow)
	}
	if t.TableMatchThreshold != nil {
		p = p.TableMatchThreshold(*t.TableMatchThreshold)
	}
	if t.TableMargin != nil {
		p = p.TableMargin(*t.TableMargin)
	}
	return p
}

func main() {
	in := flag.String("in", "", "Path to the input PDF")
	mode := flag.String("mode", "view", "Output mode: view, elements, or anchor")
	chunksPath := flag.String("chunks", "", "Path to a JSON file of chunks (anchor mode)")
	configPath := flag.String("config", "", "Path to a YAML file of pipeline tunables")
	out := flag.String("out", "", "Output path (default stdout)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: must provide -in path")
		os.Exit(1)
	}

	p := ancora.Open(*in)
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
		var t tunables
		if err := yaml.Unmarshal(raw, &t); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
			os.Exit(1)
		}
		p = t.apply(p)
	}

	var (
		output   []byte
		warnings []ancora.Warning
		err      error
	)
	switch *mode {
	case "view":
		var v string
		v, warnings, err = p.View()
		output = []byte(v)

	case "elements":
		var elements []model.Element
		elements, warnings, err = p.Elements()
		if err == nil {
			output, err = model.StreamJSON(elements)
		}

	case "anchor":
		if *chunksPath == "" {
			fmt.Fprintln(os.Stderr, "Error: -mode anchor requires -chunks")
			os.Exit(1)
		}
		var chunks []model.Chunk
		raw, readErr := os.ReadFile(*chunksPath)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Error reading chunks: %v\n", readErr)
			os.Exit(1)
		}
		if err := json.Unmarshal(raw, &chunks); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing chunks: %v\n", err)
			os.Exit(1)
		}
		chunks, warnings, err = p.Anchor(chunks)
		if err == nil {
			output, err = json.MarshalIndent(chunks, "", "  ")
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, w := range warnings {
		slog.Warn(w.Message, "stage", w.Stage, "page", w.Page)
	}

	if *out == "" {
		os.Stdout.Write(output)
		if len(output) > 0 && output[len(output)-1] != '\n' {
			fmt.Println()
		}
		return
	}
	if err := os.WriteFile(*out, output, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}
