package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"ticketly/internal/shared/config"
)

// Service owns the lifecycle of the notification pipeline: the Kafka
// producer the API publishes to and the consumer workers that drain it
type Service struct {
	cfg      *config.Config
	producer NotificationProducer
	consumer NotificationConsumer

	isRunning bool
	mu        sync.Mutex
}

func NewService(cfg *config.Config) (*Service, error) {
	emailService := NewEmailService(cfg.Email)

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	return &Service{
		cfg:      cfg,
		producer: producer,
		consumer: consumer,
	}, nil
}

// Producer exposes the Kafka producer for the booking notifier
func (s *Service) Producer() NotificationProducer {
	return s.producer
}

// Start launches the consumer worker pool
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if err := s.consumer.StartConsumers(ctx, s.cfg.Kafka.ConsumerWorkers); err != nil {
		return fmt.Errorf("failed to start notification consumers: %w", err)
	}
	s.isRunning = true
	log.Println("📬 Notification service started")
	return nil
}

// Stop drains the consumers and closes the producer
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return s.producer.Close()
	}
	s.isRunning = false

	if err := s.consumer.Stop(); err != nil {
		log.Printf("📬 Error stopping notification consumer: %v", err)
	}
	return s.producer.Close()
}
