package repositories_test

import (
	"context"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/helper/env"
	"ontologycatalog/src/infra/redis"
	"ontologycatalog/src/repositories"
	"ontologycatalog/src/test_artefacts/stubs"
)

var _ = Describe("CachedCatalogRepository", func() {
	var (
		redisClient *redis.RedisClient
		origin      *repositories.MemoryCatalogRepository
		repository  *repositories.CachedCatalogRepository
		ctx         context.Context
	)

	redisHosts := env.GetString("TEST_REDIS_HOSTS")
	logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))

	BeforeEach(func() {
		if redisHosts == "" {
			Skip("TEST_REDIS_HOSTS not set")
		}

		ctx = context.Background()
		redisClient = redis.NewRedisClient(redisHosts, 5, time.Minute).WithPrefix("test:" + GinkgoT().Name() + ":")
		Expect(redisClient.FlushByPrefix(ctx)).To(Succeed())

		origin = repositories.NewMemoryCatalogRepository()
		repository = repositories.NewCachedCatalogRepository(origin, redisClient, logger)
	})

	AfterEach(func() {
		if redisClient != nil {
			Expect(redisClient.FlushByPrefix(ctx)).To(Succeed())
			Expect(redisClient.Close()).To(Succeed())
			redisClient = nil
		}
	})

	describeCatalogRepositoryContract(func() repositories.CatalogRepository {
		return repositories.NewCachedCatalogRepository(repositories.NewMemoryCatalogRepository(), redisClient, logger)
	})

	When("the origin changes behind the cache", func() {
		It("should keep serving the cached category list until invalidated", func() {
			// ARRANGE
			_, err := repository.CreateCategory(ctx, stubs.NewCategoryStub().Get())
			Expect(err).NotTo(HaveOccurred())
			warm, err := repository.ListCategories(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(warm).To(HaveLen(1))

			_, err = origin.CreateCategory(ctx, stubs.NewCategoryStub().Get())
			Expect(err).NotTo(HaveOccurred())

			// ACT
			stale, err := repository.ListCategories(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(repository.InvalidateByCategoryIDs(ctx, nil)).To(Succeed())
			fresh, err := repository.ListCategories(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(stale).To(HaveLen(1))
			Expect(fresh).To(HaveLen(2))
		})

		It("should drop the datasets of a category once that category is invalidated", func() {
			// ARRANGE
			category, err := repository.CreateCategory(ctx, stubs.NewCategoryStub().Get())
			Expect(err).NotTo(HaveOccurred())
			_, err = repository.ListDatasets(ctx, category.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = origin.CreateDataset(ctx, stubs.NewDatasetStub(category.ID).Get())
			Expect(err).NotTo(HaveOccurred())

			// ACT
			Expect(repository.InvalidateByCategoryIDs(ctx, []string{category.ID})).To(Succeed())
			datasets, err := repository.ListDatasets(ctx, category.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(datasets).To(HaveLen(1))
		})
	})

	When("writing through the cache", func() {
		It("should invalidate the category after a dataset delete", func() {
			// ARRANGE
			category, err := repository.CreateCategory(ctx, stubs.NewCategoryStub().Get())
			Expect(err).NotTo(HaveOccurred())
			dataset, err := repository.CreateDataset(ctx, stubs.NewDatasetStub(category.ID).Get())
			Expect(err).NotTo(HaveOccurred())
			warm, err := repository.ListDatasets(ctx, category.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(warm).To(HaveLen(1))

			// ACT
			deleted, err := repository.DeleteDataset(ctx, dataset.ID)
			Expect(err).NotTo(HaveOccurred())
			datasets, err := repository.ListDatasets(ctx, category.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())
			Expect(datasets).To(BeEmpty())
		})

		It("should not cache not found lookups", func() {
			// ARRANGE
			_, err := repository.GetCategory(ctx, "missing")
			Expect(err).To(MatchError(domain.ErrCategoryNotFound))

			// ACT
			_, err = repository.GetCategory(ctx, "missing")

			// ASSERT
			Expect(err).To(MatchError(domain.ErrCategoryNotFound))
		})
	})
})
