package consumers_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ontologycatalog/src/adapters/kafka/consumers"
	"ontologycatalog/src/domain"
	"ontologycatalog/src/infra/kafka"
)

type recordingInvalidator struct {
	calls [][]string
	err   error
}

func (i *recordingInvalidator) InvalidateByCategoryIDs(ctx context.Context, categoryIDs []string) error {
	i.calls = append(i.calls, categoryIDs)
	return i.err
}

type fakeKafkaClient struct {
	topic    string
	messages []kafka.Message
}

func (c *fakeKafkaClient) Consumer(ctx context.Context, handler kafka.Handler, topic string) error {
	c.topic = topic
	return handler(c.messages)
}

func eventMessage(event domain.CatalogEvent) kafka.Message {
	value, err := json.Marshal(event)
	Expect(err).NotTo(HaveOccurred())
	return kafka.Message{Key: event.CategoryID, Value: value}
}

var _ = Describe("CatalogEventsConsumer", func() {
	var (
		invalidator *recordingInvalidator
		consumer    *consumers.CatalogEventsConsumer
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		invalidator = &recordingInvalidator{}
		consumer = consumers.NewCatalogEventsConsumer(slog.New(slog.NewTextHandler(GinkgoWriter, nil)), invalidator)
	})

	It("should invalidate each affected category once per batch", func() {
		// ARRANGE
		moved := domain.NewCatalogEvent(domain.EventSolutionUpdated, "robot", "solution-1")
		moved.PreviousCategoryID = "screen"

		messages := []kafka.Message{
			eventMessage(domain.NewCatalogEvent(domain.EventDatasetCreated, "screen", "dataset-1")),
			eventMessage(domain.NewCatalogEvent(domain.EventDatasetDeleted, "screen", "dataset-1")),
			eventMessage(moved),
		}

		// ACT
		err := consumer.HandleMessages(ctx, messages)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(invalidator.calls).To(HaveLen(1))
		Expect(invalidator.calls[0]).To(Equal([]string{"screen", "robot"}))
	})

	It("should skip malformed messages and events without category", func() {
		// ARRANGE
		messages := []kafka.Message{
			{Key: "x", Value: []byte("not json")},
			eventMessage(domain.CatalogEvent{EventType: domain.EventCategoryCreated}),
			eventMessage(domain.NewCatalogEvent(domain.EventCategoryDeleted, "gone", "gone")),
		}

		// ACT
		err := consumer.HandleMessages(ctx, messages)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(invalidator.calls).To(Equal([][]string{{"gone"}}))
	})

	It("should not touch the cache when nothing is usable", func() {
		err := consumer.HandleMessages(ctx, []kafka.Message{{Value: []byte("{")}})

		Expect(err).NotTo(HaveOccurred())
		Expect(invalidator.calls).To(BeEmpty())
	})

	It("should hand the batch back for retry when invalidation fails", func() {
		// ARRANGE
		redisDown := errors.New("redis down")
		invalidator.err = redisDown

		// ACT
		err := consumer.HandleMessages(ctx, []kafka.Message{
			eventMessage(domain.NewCatalogEvent(domain.EventCategoryUpdated, "a", "a")),
		})

		// ASSERT
		Expect(err).To(MatchError(redisDown))
	})

	It("should consume from the given topic", func() {
		// ARRANGE
		client := &fakeKafkaClient{messages: []kafka.Message{
			eventMessage(domain.NewCatalogEvent(domain.EventCategoryCreated, "a", "a")),
		}}

		// ACT
		err := consumer.Start(ctx, client, "catalog.events")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(client.topic).To(Equal("catalog.events"))
		Expect(invalidator.calls).To(HaveLen(1))
	})
})
