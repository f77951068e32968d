package messaging

import (
	"log"
	"mediscan-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ opens the connection carrying the slot release queues.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	cfg := driverConfig.RabbitMQ
	uri := amqp091.URI{
		Scheme:   "amqp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Vhost:    cfg.VHost,
	}

	conn, err := amqp091.DialConfig(uri.String(), amqp091.Config{
		Heartbeat: cfg.Heartbeat,
		Vhost:     cfg.VHost,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "mediscan-service",
		},
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ at %s:%d: %s", cfg.Host, cfg.Port, err.Error())
	}
	log.Printf("Successfully connected to rabbitMQ vhost %s", cfg.VHost)
	return conn
}
