package databus

import (
	"fmt"
	"strings"

	"gopkg.in/Shopify/sarama.v1"

	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
)

type Event interface {
	Serialize() []byte
	Topic() string
}

type DataBus struct {
	producer sarama.SyncProducer
}

var producer *DataBus

// InitDataBus connects the engine's event producer. Kafka is optional in
// local development: with an empty host list the bus stays nil and publishes
// are skipped by callers.
func InitDataBus(host string) {
	if host == "" {
		log.Warn("Kafka server not configured, event publishing disabled.")
		return
	}
	hosts := strings.Split(host, ",")
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = true
	if p, err := sarama.NewSyncProducer(hosts, conf); err != nil {
		log.Fatalf("Failed to create producer: %s", err)
	} else {
		producer = &DataBus{producer: p}
	}
	log.Info("Kafka producer initialized...")
}

func GetDataBus() *DataBus {
	return producer
}

func (db *DataBus) PublishRaw(topic string, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	_, _, err := db.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.StringEncoder(raw)})
	if err != nil {
		return errors.WrapAndReport(err, "produce message")
	}
	return nil
}

func (db *DataBus) Publish(e Event) (err error) {
	return db.PublishRaw(e.Topic(), e.Serialize())
}

func (db *DataBus) PublishLocal(e Event) (err error) {
	fmt.Printf(" topic: %s\n message: %s\n", e.Topic(), string(e.Serialize()))
	return
}
