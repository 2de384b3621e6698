// Package main seeds the product catalog from a YAML definition into the
// data directory, replacing whatever catalog is there.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/internal/app/storage/jsonfile"
	"github.com/shoplite/shoplite/pkg/logger"
)

type seedProduct struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Image string `yaml:"image"`
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

func main() {
	file := flag.String("file", "config/products.yaml", "Path to the catalog seed file")
	dataDir := flag.String("data", "data", "Data directory to write the catalog into")
	flag.Parse()

	if v := os.Getenv("DATA_DIR"); v != "" {
		*dataDir = v
	}

	products, err := loadSeed(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}

	store, err := jsonfile.New(*dataDir, logger.NewDefault("seed"))
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	if err := store.ReplaceProducts(context.Background(), products); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	log.Printf("Seeded %d products into %s", len(products), *dataDir)
}

func loadSeed(path string) ([]product.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(seed.Products) == 0 {
		return nil, fmt.Errorf("%s defines no products", path)
	}

	var ids storage.IDSource
	products := make([]product.Product, 0, len(seed.Products))
	for i, sp := range seed.Products {
		if sp.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return nil, fmt.Errorf("product %q: invalid price %q", sp.Name, sp.Price)
		}

		id := sp.ID
		if id == 0 {
			id = ids.Next()
		}
		products = append(products, product.Product{
			ID:    id,
			Name:  sp.Name,
			Price: price,
			Image: sp.Image,
		})
	}
	return products, nil
}
