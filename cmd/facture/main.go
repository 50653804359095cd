// Command facture extracts structured data from a business document.
//
// It accepts either a JSON file of raw OCR records (the producer debug
// format) or, when built with -tags ocr, a document image recognized
// through Tesseract:
//
//	facture -in lines.json
//	facture -in invoice.png -lang fra+eng -enhance
//	facture -in lines.json -json > result.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"facture"
	"facture/model"
	"facture/ocr"
)

func main() {
	var (
		inPath  = flag.String("in", "", "input file: raw-records JSON, or an image when built with -tags ocr")
		asJSON  = flag.Bool("json", false, "print the raw extraction result as JSON")
		lang    = flag.String("lang", "fra+eng", "OCR language(s), '+'-separated")
		enhance = flag.Bool("enhance", false, "preprocess the image before recognition")
		rowOpen = flag.Float64("row-threshold", 0.7, "row clustering threshold (fraction of average line height)")
	)
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	records, err := loadRecords(*inPath, *lang, *enhance)
	if err != nil {
		log.Fatal(err)
	}

	engine := facture.New(facture.WithRowOpenThreshold(*rowOpen))
	result := engine.Extract(records)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal(err)
		}
		return
	}

	printFields(result.Fields)
	printTable(result.Table)
}

// loadRecords reads raw records from a JSON file, or runs OCR when the
// input is an image.
func loadRecords(path, lang string, enhance bool) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var records []model.RawRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse records: %w", err)
		}
		return records, nil
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetLanguage(lang); err != nil {
		return nil, err
	}
	if enhance {
		if enhanced, err := ocr.Enhance(data); err == nil {
			data = enhanced
		}
	}
	return client.Recognize(data)
}

func printFields(fields map[string]string) {
	if len(fields) == 0 {
		fmt.Println("No header fields found.")
		return
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Fields:")
	for _, name := range names {
		fmt.Printf("  %-16s %s\n", name, fields[name])
	}
}

func printTable(table model.Table) {
	if table.Error != "" {
		fmt.Printf("\nTable: %s\n", table.Error)
		return
	}
	if len(table.Rows) == 0 {
		fmt.Println("\nTable: no rows")
		return
	}

	// One output column per distinct column type, in schema order.
	var types []model.ColumnType
	var labels []string
	seen := make(map[model.ColumnType]bool)
	for _, col := range table.Headers {
		if seen[col.Type] {
			continue
		}
		seen[col.Type] = true
		types = append(types, col.Type)
		labels = append(labels, col.Label)
	}
	labels = append(labels, "Valid")

	fmt.Println()
	w := tablewriter.NewWriter(os.Stdout)
	w.Header(labels)
	for _, row := range table.Rows {
		cells := make([]string, 0, len(types)+1)
		for _, t := range types {
			cells = append(cells, row.Get(t))
		}
		mark := ""
		if row.Validation.IsValid {
			mark = "ok"
		}
		cells = append(cells, mark)
		if err := w.Append(cells); err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Render(); err != nil {
		log.Fatal(err)
	}
}
