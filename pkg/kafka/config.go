package kafka

import (
	"time"
)

// Config holds Kafka producer configuration
type Config struct {
	Brokers  []string
	ClientID string

	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:      []string{"localhost:9092"},
		ClientID:     "wms-client",
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: -1,
	}
}

// Topics contains the Kafka topics this service writes to
var Topics = struct {
	StockEvents         string
	ReplenishmentEvents string
	PickingEvents       string
}{
	StockEvents:         "wms.stock.events",
	ReplenishmentEvents: "wms.replenishment.events",
	PickingEvents:       "wms.picking.events",
}
