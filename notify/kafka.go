package notify

import (
	"fmt"

	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/avro/schema"
	"github.com/companieshouse/chs.go/kafka/producer"
	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/config"
)

// ProducerTopic is the topic to which checkout results are sent
const ProducerTopic = "checkout-result"

// ProducerSchemaName is the schema which will be used to send the checkout result message with
const ProducerSchemaName = "checkout-result"

// checkoutResult represents the avro schema of the checkout result message
type checkoutResult struct {
	CheckoutID        string `avro:"checkout_id"`
	ListURL           string `avro:"list_url"`
	ResultCode        string `avro:"result_code"`
	ResultInfo        string `avro:"result_info"`
	InteractionCode   string `avro:"interaction_code"`
	InteractionReason string `avro:"interaction_reason"`
}

type sender interface {
	Send(msg *producer.Message) (int32, int64, error)
}

// KafkaPublisher sends checkout results to ProducerTopic
type KafkaPublisher struct {
	producer sender
	schema   avro.Schema
}

// NewKafkaPublisher creates a producer for the configured brokers and fetches the result schema
func NewKafkaPublisher(cfg *config.Config) (*KafkaPublisher, error) {
	kafkaProducer, err := producer.New(&producer.Config{Acks: &producer.WaitForAll, BrokerAddrs: cfg.BrokerAddr})
	if err != nil {
		return nil, fmt.Errorf("error creating kafka producer: [%v]", err)
	}
	checkoutResultSchema, err := schema.Get(cfg.SchemaRegistryURL, ProducerSchemaName)
	if err != nil {
		return nil, fmt.Errorf("error getting schema from schema registry: [%v]", err)
	}
	return &KafkaPublisher{
		producer: kafkaProducer,
		schema:   avro.Schema{Definition: checkoutResultSchema},
	}, nil
}

// Publish marshals result into the avro schema and sends it
func (k *KafkaPublisher) Publish(result Result) error {
	message, err := prepareKafkaMessage(result, k.schema)
	if err != nil {
		return fmt.Errorf("error preparing kafka message with schema: [%v]", err)
	}

	partition, offset, err := k.producer.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send message in partition: %d at offset %d: [%v]", partition, offset, err)
	}
	log.Info("checkout result published", log.Data{"checkout_id": result.CheckoutID, "result_code": result.Code, "partition": partition, "offset": offset})
	return nil
}

// prepareKafkaMessage is pulled out of Publish() to allow unit testing of non-kafka portion of code
func prepareKafkaMessage(result Result, resultSchema avro.Schema) (*producer.Message, error) {
	message := checkoutResult{
		CheckoutID:        result.CheckoutID,
		ListURL:           result.ListURL,
		ResultCode:        result.Code,
		ResultInfo:        result.ResultInfo,
		InteractionCode:   result.InteractionCode,
		InteractionReason: result.InteractionReason,
	}

	messageBytes, err := resultSchema.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("error marshalling checkout result message: [%v]", err)
	}

	return &producer.Message{
		Value: messageBytes,
		Topic: ProducerTopic,
	}, nil
}
