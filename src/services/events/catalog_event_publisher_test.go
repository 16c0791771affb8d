package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/infra/kafka"
	"ontologycatalog/src/services/events"
	"ontologycatalog/src/test_artefacts/comparer"
)

type recordingProducer struct {
	topic    string
	messages []kafka.Message
	calls    int
	err      error
}

func (p *recordingProducer) Producer(messages []kafka.Message, topic string) error {
	p.calls++
	p.topic = topic
	p.messages = append(p.messages, messages...)
	return p.err
}

var _ = Describe("CatalogEventPublisher", func() {
	var (
		producer  *recordingProducer
		publisher *events.CatalogEventPublisher
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		producer = &recordingProducer{}
		publisher = events.NewCatalogEventPublisher(slog.New(slog.NewTextHandler(GinkgoWriter, nil)), producer, "catalog.events")
	})

	It("should key messages by category and stamp the headers", func() {
		// ARRANGE
		event := domain.NewCatalogEvent(domain.EventDatasetCreated, "category-1", "dataset-1")

		// ACT
		err := publisher.Publish(ctx, event)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(producer.topic).To(Equal("catalog.events"))
		Expect(producer.messages).To(HaveLen(1))

		message := producer.messages[0]
		Expect(message.Key).To(Equal("category-1"))
		Expect(message.Headers).To(HaveKeyWithValue("event_type", "dataset.created"))
		Expect(message.Headers).To(HaveKeyWithValue("source_service", "ontology-catalog-api"))
		Expect(message.Headers).To(HaveKeyWithValue("schema_version", "v1"))
		Expect(message.Headers["event_id"]).NotTo(BeEmpty())

		var decoded domain.CatalogEvent
		Expect(json.Unmarshal(message.Value, &decoded)).To(Succeed())
		Expect(decoded.EventID).To(Equal(message.Headers["event_id"]))
		Expect(decoded).To(BeComparableTo(event,
			comparer.TimeWithinTolerance(1),
			comparer.IgnoreFieldsFor[domain.CatalogEvent]("EventID"),
		))
	})

	It("should keep a caller supplied event id and timestamp", func() {
		// ARRANGE
		occurredAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		event := domain.CatalogEvent{
			EventID:    "fixed-id",
			EventType:  domain.EventSolutionUpdated,
			CategoryID: "category-2",
			EntityID:   "solution-1",
			OccurredAt: occurredAt,
		}

		// ACT
		Expect(publisher.Publish(ctx, event)).To(Succeed())

		// ASSERT
		var decoded domain.CatalogEvent
		Expect(json.Unmarshal(producer.messages[0].Value, &decoded)).To(Succeed())
		Expect(decoded.EventID).To(Equal("fixed-id"))
		Expect(decoded.OccurredAt.Equal(occurredAt)).To(BeTrue())
	})

	It("should send several events in a single batch", func() {
		err := publisher.Publish(ctx,
			domain.NewCatalogEvent(domain.EventCategoryCreated, "a", "a"),
			domain.NewCatalogEvent(domain.EventCategoryCreated, "b", "b"),
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(producer.calls).To(Equal(1))
		Expect(producer.messages).To(HaveLen(2))
	})

	It("should not call the producer without events", func() {
		Expect(publisher.Publish(ctx)).To(Succeed())

		Expect(producer.calls).To(BeZero())
	})

	It("should wrap producer failures", func() {
		// ARRANGE
		brokerDown := errors.New("broker down")
		producer.err = brokerDown

		// ACT
		err := publisher.Publish(ctx, domain.NewCatalogEvent(domain.EventCategoryDeleted, "a", "a"))

		// ASSERT
		Expect(err).To(MatchError(brokerDown))
		Expect(err.Error()).To(ContainSubstring("catalog.events"))
	})

	It("should accept anything as a no-op publisher", func() {
		var publisher events.NoopEventPublisher

		Expect(publisher.Publish(ctx, domain.NewCatalogEvent(domain.EventCategoryDeleted, "a", "a"))).To(Succeed())
	})
})
