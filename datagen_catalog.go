//go:build datagen_catalog
// +build datagen_catalog

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/helper/env"
	"ontologycatalog/src/infra/postgres"
	"ontologycatalog/src/repositories"
	"ontologycatalog/src/services/intake"

	"github.com/go-faker/faker/v4"
)

// CatalogBundle é uma categoria com seus datasets e solutions, inserida por um único worker.
type CatalogBundle struct {
	Category  domain.CreateCategoryRequest
	Datasets  []domain.CreateDatasetRequest
	Solutions []domain.CreateSolutionRequest
}

var (
	icons     = []string{"fas fa-desktop", "fas fa-robot", "fas fa-folder", "fas fa-globe", "fas fa-flask"}
	languages = []string{"sparql", "python", "javascript", "ros"}
	types     = []entities.SolutionType{entities.SolutionTypeQuery, entities.SolutionTypeImplementation, entities.SolutionTypeDocumentation}
)

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbHost, dbHost, dbPort, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	numCategories := flag.Int("categories", 100, "Número de categorias a serem criadas")
	datasetsPerCategory := flag.Int("datasets", 5, "Datasets por categoria")
	solutionsPerCategory := flag.Int("solutions", 3, "Solutions por categoria")
	numWorkers := flag.Int("workers", 8, "Workers inserindo em paralelo")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	readWriteClient, err := newReadWriteClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer readWriteClient.Close()

	if err := postgres.EnsureSchema(ctx, readWriteClient.GetWritePool()); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	catalogRepository := repositories.NewPostgresCatalogRepository(readWriteClient)

	dataChan := make(chan CatalogBundle, (*numWorkers)*4)

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(ctx, &wg, catalogRepository, dataChan, i+1, &totalProcessed, &totalErrors)
	}

	go func() {
		defer close(dataChan)
		for i := 0; i < *numCategories; i++ {
			select {
			case <-ctx.Done():
				return
			case dataChan <- generateBundle(*datasetsPerCategory, *solutionsPerCategory):
			}
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Interrupted, finishing in-flight bundles...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)
	fmt.Printf("Done: %d categories | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
		processed, atomic.LoadInt64(&totalErrors), float64(processed)/elapsed.Seconds(), elapsed.Round(time.Millisecond))
}

func worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	catalogRepository *repositories.PostgresCatalogRepository,
	dataChan <-chan CatalogBundle,
	workerID int,
	totalProcessed *int64,
	totalErrors *int64,
) {
	defer wg.Done()

	for bundle := range dataChan {
		if err := insertBundle(ctx, catalogRepository, bundle); err != nil {
			log.Printf("Worker %d: %v", workerID, err)
			atomic.AddInt64(totalErrors, 1)
			continue
		}
		atomic.AddInt64(totalProcessed, 1)
	}
}

func insertBundle(ctx context.Context, catalogRepository *repositories.PostgresCatalogRepository, bundle CatalogBundle) error {
	category, err := catalogRepository.CreateCategory(ctx, bundle.Category)
	if err != nil {
		return fmt.Errorf("category %q: %w", bundle.Category.Name, err)
	}

	for _, dataset := range bundle.Datasets {
		dataset.CategoryID = category.ID
		if _, err := catalogRepository.CreateDataset(ctx, dataset); err != nil {
			return fmt.Errorf("dataset %s: %w", dataset.Filename, err)
		}
	}

	for _, solution := range bundle.Solutions {
		solution.CategoryID = category.ID
		if _, err := catalogRepository.CreateSolution(ctx, solution); err != nil {
			return fmt.Errorf("solution %q: %w", solution.Title, err)
		}
	}

	return nil
}

func generateBundle(datasets int, solutions int) CatalogBundle {
	name := strings.Title(faker.Word()) + " " + strings.Title(faker.Word()) + " " + faker.UUIDDigit()[:8]

	bundle := CatalogBundle{
		Category: domain.CreateCategoryRequest{
			Name:        name,
			Description: faker.Sentence(),
			Icon:        icons[rand.Intn(len(icons))],
			Specification: entities.Specification{
				Definition:   faker.Paragraph(),
				CoreConcepts: randomWords(2+rand.Intn(4), strings.Title),
				Properties:   randomWords(2+rand.Intn(4), func(w string) string { return "has" + strings.Title(w) }),
			},
		},
	}

	extensions := intake.AllowedExtensions
	for i := 0; i < datasets; i++ {
		filename := faker.Word() + "_" + faker.Word() + extensions[rand.Intn(len(extensions))]
		bundle.Datasets = append(bundle.Datasets, domain.CreateDatasetRequest{
			Name:       filename,
			Filename:   filename,
			Size:       intake.FormatSize(rand.Int63n(intake.MaxFileSize)),
			UploadedAt: time.Now().Add(-time.Duration(rand.Intn(24*30)) * time.Hour),
		})
	}

	for i := 0; i < solutions; i++ {
		bundle.Solutions = append(bundle.Solutions, domain.CreateSolutionRequest{
			Title:    faker.Sentence(),
			Language: languages[rand.Intn(len(languages))],
			Code:     "# " + faker.Sentence() + "\nSELECT ?s WHERE { ?s ?p ?o . }",
			Type:     types[rand.Intn(len(types))],
		})
	}

	return bundle
}

func randomWords(n int, transform func(string) string) []string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, transform(faker.Word()))
	}
	return words
}
