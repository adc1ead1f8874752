package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	Events *EventService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	eventService := InitEventService(channel)
	if eventService == nil {
		panic("Failed to initialize Event service")
	}

	produceInstance = &Produce{
		Events: eventService,
	}

	return produceInstance
}

func GetProduce() *Produce {
	if produceInstance == nil {
		panic("Produce not initialized. Call InitProduce() first.")
	}
	return produceInstance
}
