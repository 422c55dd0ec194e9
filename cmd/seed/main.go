// seed genera un script SQL para poblar el catálogo (productos y variantes)
// a partir del export CSV del ERP anterior (Windows-1252, separado por ';').
//
// Columnas esperadas: base_sku;product_name;description;size;color;unique_sku
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	name        string
	description string
}

type variantRow struct {
	baseSKU   string
	size      string
	color     string
	uniqueSKU string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El ERP exporta en Windows-1252 (tildes y eñes fuera de UTF-8)
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) > 0 && strings.EqualFold(records[0][0], "base_sku") {
		records = records[1:]
	}

	// Productos únicos por base_sku; las variantes conservan el orden del export
	products := make(map[string]productRow)
	var variants []variantRow
	for _, rec := range records {
		baseSKU := strings.TrimSpace(rec[0])
		uniqueSKU := strings.TrimSpace(rec[5])
		if baseSKU == "" || uniqueSKU == "" {
			continue
		}
		if _, ok := products[baseSKU]; !ok {
			products[baseSKU] = productRow{
				name:        strings.TrimSpace(rec[1]),
				description: strings.TrimSpace(rec[2]),
			}
		}
		variants = append(variants, variantRow{
			baseSKU:   baseSKU,
			size:      strings.TrimSpace(rec[3]),
			color:     strings.TrimSpace(rec[4]),
			uniqueSKU: uniqueSKU,
		})
	}

	var skus []string
	for s := range products {
		skus = append(skus, s)
	}
	sort.Strings(skus)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos y variantes\n")
	out.WriteString("-- Generado desde el export CSV del ERP anterior\n\n")

	out.WriteString("-- 1. Productos\n")
	for _, sku := range skus {
		p := products[sku]
		fmt.Fprintf(out, "INSERT INTO products (id, name, description, base_sku)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s')\n",
			escapeSQL(p.name), escapeSQL(p.description), escapeSQL(sku))
		out.WriteString("ON CONFLICT (base_sku) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description;\n")
	}

	out.WriteString("\n-- 2. Variantes (resuelven el producto por base_sku)\n")
	for _, v := range variants {
		fmt.Fprintf(out, "INSERT INTO product_variants (id, product_id, size, color, unique_sku)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), id, '%s', '%s', '%s' FROM products WHERE base_sku = '%s'\n",
			escapeSQL(v.size), escapeSQL(v.color), escapeSQL(v.uniqueSKU), escapeSQL(v.baseSKU))
		out.WriteString("ON CONFLICT (unique_sku) DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: %d productos, %d variantes\n", outPath, len(skus), len(variants))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
