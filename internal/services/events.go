package services

// EventPublisher publishes order lifecycle events to the message broker.
// Satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
